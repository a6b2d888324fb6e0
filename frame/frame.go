// Package frame holds the tabular representations a table can be
// registered from: host resident frames, device resident columnar
// tables, and conversion from the arrow interchange format.
package frame

import (
	"errors"
	"fmt"

	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/value"
)

var (
	_ = u.EMPTY

	// ErrColumnLength is returned when the columns of a frame are not all the same length
	ErrColumnLength = errors.New("columns must all be the same length")
	// ErrUnsupportedColumn is returned for column data we cannot represent
	ErrUnsupportedColumn = errors.New("unsupported column type")
)

// Series is a single named host column.  Data is a native go slice,
// ie []int64, []string.  Valid is nil when the column has no nulls,
// else Valid[i] is false for a null row.
type Series struct {
	Name  string
	Type  value.ValueType
	Data  interface{}
	Valid []bool
}

// NewSeries creates a series and infers its type from the go slice.
func NewSeries(name string, data interface{}) *Series {
	return &Series{Name: name, Type: value.ValueTypeOf(data), Data: data}
}

// Len is the row count of this series
func (m *Series) Len() int { return value.Len(m.Data) }

// Frame is a CPU (host memory) resident table, an ordered list of
// equal length named columns.
type Frame struct {
	series []*Series
	rows   int
}

// NewFrame builds a frame from series, in order.
func NewFrame(cols ...*Series) (*Frame, error) {
	m := &Frame{series: make([]*Series, 0, len(cols))}
	for i, s := range cols {
		if s == nil || s.Type == value.UnknownType || s.Len() < 0 {
			return nil, fmt.Errorf("%w: column %d %T", ErrUnsupportedColumn, i, dataOf(s))
		}
		if i == 0 {
			m.rows = s.Len()
		} else if s.Len() != m.rows {
			return nil, fmt.Errorf("%w: %q has %d rows expected %d", ErrColumnLength, s.Name, s.Len(), m.rows)
		}
		if s.Valid != nil && len(s.Valid) != m.rows {
			return nil, fmt.Errorf("%w: validity of %q", ErrColumnLength, s.Name)
		}
		m.series = append(m.series, s)
	}
	return m, nil
}

func dataOf(s *Series) interface{} {
	if s == nil {
		return nil
	}
	return s.Data
}

// Columns names in order
func (m *Frame) Columns() []string {
	cols := make([]string, len(m.series))
	for i, s := range m.series {
		cols[i] = s.Name
	}
	return cols
}

// Types of each column in order
func (m *Frame) Types() []value.ValueType {
	types := make([]value.ValueType, len(m.series))
	for i, s := range m.series {
		types[i] = s.Type
	}
	return types
}

func (m *Frame) NumRows() int         { return m.rows }
func (m *Frame) NumCols() int         { return len(m.series) }
func (m *Frame) Series(i int) *Series { return m.series[i] }

// Column finds a series by name
func (m *Frame) Column(name string) (*Series, bool) {
	for _, s := range m.series {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
