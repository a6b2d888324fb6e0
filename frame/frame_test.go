package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazingdb/blazingsql/testutil"
	"github.com/blazingdb/blazingsql/value"
)

func init() {
	testutil.Setup()
}

func TestFrame(t *testing.T) {
	f, err := NewFrame(
		NewSeries("a", []int64{1, 2, 3}),
		NewSeries("b", []string{"x", "y", "z"}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Columns())
	assert.Equal(t, []value.ValueType{value.Int64Type, value.StringType}, f.Types())
	assert.Equal(t, 3, f.NumRows())
	s, ok := f.Column("b")
	assert.True(t, ok)
	assert.Equal(t, "b", s.Name)
	_, ok = f.Column("c")
	assert.False(t, ok)

	_, err = NewFrame(NewSeries("a", []int64{1}), NewSeries("b", []string{"x", "y"}))
	assert.True(t, errors.Is(err, ErrColumnLength), "wanted length err got %v", err)

	_, err = NewFrame(NewSeries("a", []struct{}{{}}))
	assert.True(t, errors.Is(err, ErrUnsupportedColumn), "wanted unsupported err got %v", err)
}

func TestFromFrame(t *testing.T) {
	f, err := NewFrame(
		NewSeries("a", []int64{1, 2}),
		NewSeries("b", []float64{1.5, 2.5}),
	)
	require.NoError(t, err)

	tbl, err := FromFrame(f, nil)
	require.NoError(t, err)
	assert.Equal(t, f.Columns(), tbl.Columns())
	assert.Equal(t, f.Types(), tbl.Types())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, 2, tbl.Column(1).Buffer.Len())
}

func TestFromArrow(t *testing.T) {
	pool := memory.NewGoAllocator()
	sc := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "ts", Type: &arrow.TimestampType{Unit: arrow.Second}},
	}, nil)

	b := array.NewRecordBuilder(pool, sc)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"a", "", "c"}, []bool{true, false, true})
	b.Field(2).(*array.TimestampBuilder).AppendValues([]arrow.Timestamp{0, 60, 120}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	tbl := array.NewTableFromRecords(sc, []arrow.Record{rec})
	defer tbl.Release()

	f, err := FromArrow(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "ts"}, f.Columns())
	assert.Equal(t, []value.ValueType{value.Int64Type, value.StringType, value.TimestampType}, f.Types())
	assert.Equal(t, 3, f.NumRows())

	ids := f.Series(0)
	assert.Equal(t, []int64{1, 2, 3}, ids.Data)
	assert.Nil(t, ids.Valid)

	names := f.Series(1)
	assert.Equal(t, []bool{true, false, true}, names.Valid)

	ts := f.Series(2).Data.([]time.Time)
	assert.Equal(t, int64(60), ts[1].Unix())
}

func TestFromArrowUnsupported(t *testing.T) {
	pool := memory.NewGoAllocator()
	sc := arrow.NewSchema([]arrow.Field{
		{Name: "raw", Type: arrow.BinaryTypes.Binary},
	}, nil)
	b := array.NewRecordBuilder(pool, sc)
	defer b.Release()
	b.Field(0).(*array.BinaryBuilder).AppendValues([][]byte{[]byte("x")}, nil)
	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(sc, []arrow.Record{rec})
	defer tbl.Release()

	_, err := FromArrow(tbl)
	assert.True(t, errors.Is(err, ErrUnsupportedColumn), "wanted unsupported err got %v", err)
}
