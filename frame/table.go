package frame

import (
	"fmt"

	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/value"
)

var (
	// DefaultAllocator is used to move host frames onto the device
	// when the caller does not supply one.
	DefaultAllocator Allocator = HostAllocator{}

	_ Buffer = (*hostBuffer)(nil)
)

// Buffer is a handle to column memory owned by the device runtime.
type Buffer interface {
	Len() int
}

// Allocator copies a host series into device memory.
type Allocator interface {
	Upload(s *Series) (Buffer, error)
}

// HostAllocator keeps "device" buffers in host memory.  Used where no
// accelerator runtime is linked, ie tests and the example client.
type HostAllocator struct{}

type hostBuffer struct {
	s *Series
}

func (m *hostBuffer) Len() int { return m.s.Len() }

// Upload implements Allocator
func (HostAllocator) Upload(s *Series) (Buffer, error) {
	return &hostBuffer{s: s}, nil
}

// Column is one device resident column
type Column struct {
	Name   string
	Type   value.ValueType
	Buffer Buffer
}

// Table is a GPU resident columnar table; this is the canonical form
// an in-memory table is registered with the engine in.
type Table struct {
	cols []*Column
	rows int
}

// NewTable wraps columns already resident on the device.
func NewTable(cols ...*Column) (*Table, error) {
	m := &Table{cols: cols}
	for i, c := range cols {
		n := 0
		if c.Buffer != nil {
			n = c.Buffer.Len()
		}
		if i == 0 {
			m.rows = n
		} else if n != m.rows {
			return nil, fmt.Errorf("%w: %q has %d rows expected %d", ErrColumnLength, c.Name, n, m.rows)
		}
	}
	return m, nil
}

// FromFrame copies a host frame onto the device, column by column.
func FromFrame(f *Frame, alloc Allocator) (*Table, error) {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	cols := make([]*Column, 0, f.NumCols())
	for i := 0; i < f.NumCols(); i++ {
		s := f.Series(i)
		buf, err := alloc.Upload(s)
		if err != nil {
			u.Warnf("could not upload column %q: %v", s.Name, err)
			return nil, fmt.Errorf("upload column %q: %w", s.Name, err)
		}
		cols = append(cols, &Column{Name: s.Name, Type: s.Type, Buffer: buf})
	}
	return NewTable(cols...)
}

// Columns names in order
func (m *Table) Columns() []string {
	cols := make([]string, len(m.cols))
	for i, c := range m.cols {
		cols[i] = c.Name
	}
	return cols
}

// Types element types in column order
func (m *Table) Types() []value.ValueType {
	types := make([]value.ValueType, len(m.cols))
	for i, c := range m.cols {
		types[i] = c.Type
	}
	return types
}

func (m *Table) NumRows() int         { return m.rows }
func (m *Table) NumCols() int         { return len(m.cols) }
func (m *Table) Column(i int) *Column { return m.cols[i] }
