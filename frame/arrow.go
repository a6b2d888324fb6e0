package frame

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/blazingdb/blazingsql/value"
)

type valuer[T any] interface {
	arrow.Array
	Value(i int) T
}

// FromArrow converts an arrow interchange table into a host frame.
// Chunks are concatenated, nulls are carried in Series.Valid.
func FromArrow(tbl arrow.Table) (*Frame, error) {
	series := make([]*Series, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		col := tbl.Column(i)
		s, err := arrowSeries(col.Name(), col.DataType(), col.Data().Chunks())
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return NewFrame(series...)
}

func arrowSeries(name string, dt arrow.DataType, chunks []arrow.Array) (*Series, error) {
	s := &Series{Name: name}
	var err error
	switch dt.ID() {
	case arrow.BOOL:
		s.Type = value.BoolType
		s.Data, s.Valid, err = collect[bool](chunks)
	case arrow.INT8:
		s.Type = value.Int8Type
		s.Data, s.Valid, err = collect[int8](chunks)
	case arrow.INT16:
		s.Type = value.Int16Type
		s.Data, s.Valid, err = collect[int16](chunks)
	case arrow.INT32:
		s.Type = value.Int32Type
		s.Data, s.Valid, err = collect[int32](chunks)
	case arrow.INT64:
		s.Type = value.Int64Type
		s.Data, s.Valid, err = collect[int64](chunks)
	case arrow.FLOAT32:
		s.Type = value.Float32Type
		s.Data, s.Valid, err = collect[float32](chunks)
	case arrow.FLOAT64:
		s.Type = value.Float64Type
		s.Data, s.Valid, err = collect[float64](chunks)
	case arrow.STRING, arrow.LARGE_STRING:
		s.Type = value.StringType
		s.Data, s.Valid, err = collect[string](chunks)
	case arrow.DATE32:
		var days []arrow.Date32
		s.Type = value.Date32Type
		days, s.Valid, err = collect[arrow.Date32](chunks)
		vals := make([]int32, len(days))
		for i, d := range days {
			vals[i] = int32(d)
		}
		s.Data = vals
	case arrow.DATE64:
		var ms []arrow.Date64
		s.Type = value.Date64Type
		ms, s.Valid, err = collect[arrow.Date64](chunks)
		vals := make([]int64, len(ms))
		for i, d := range ms {
			vals[i] = int64(d)
		}
		s.Data = vals
	case arrow.TIMESTAMP:
		var ts []arrow.Timestamp
		unit := dt.(*arrow.TimestampType).Unit
		s.Type = value.TimestampType
		ts, s.Valid, err = collect[arrow.Timestamp](chunks)
		vals := make([]time.Time, len(ts))
		for i, t := range ts {
			vals[i] = t.ToTime(unit)
		}
		s.Data = vals
	default:
		return nil, fmt.Errorf("%w: arrow column %q of type %v", ErrUnsupportedColumn, name, dt)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// collect concatenates chunks of one arrow column into a go slice.
// The validity slice is nil when there were no nulls.
func collect[T any](chunks []arrow.Array) ([]T, []bool, error) {
	n, nulls := 0, 0
	for _, c := range chunks {
		n += c.Len()
		nulls += c.NullN()
	}
	vals := make([]T, 0, n)
	var valid []bool
	if nulls > 0 {
		valid = make([]bool, 0, n)
	}
	for _, c := range chunks {
		arr, ok := c.(valuer[T])
		if !ok {
			return nil, nil, fmt.Errorf("%w: arrow chunk %T", ErrUnsupportedColumn, c)
		}
		for i := 0; i < arr.Len(); i++ {
			vals = append(vals, arr.Value(i))
			if valid != nil {
				valid = append(valid, arr.IsValid(i))
			}
		}
	}
	return vals, valid, nil
}
