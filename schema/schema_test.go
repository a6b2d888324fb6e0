package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazingdb/blazingsql/frame"
	"github.com/blazingdb/blazingsql/testutil"
	"github.com/blazingdb/blazingsql/value"
)

func init() {
	testutil.Setup()
}

func TestGdfRegistration(t *testing.T) {
	f, err := frame.NewFrame(
		frame.NewSeries("a", []int64{1, 2}),
		frame.NewSeries("b", []string{"x", "y"}),
	)
	require.NoError(t, err)
	tbl, err := frame.FromFrame(f, nil)
	require.NoError(t, err)

	reg := NewGdfRegistration("users", tbl)
	assert.Equal(t, SchemaFromGdf, reg.Kind)
	assert.Equal(t, []string{"a", "b"}, reg.ColumnNames())
	assert.Equal(t, []value.DType{value.DTypeInt64, value.DTypeStringCategory}, reg.DTypes())
	assert.Equal(t, tbl, reg.Handle)
	assert.Nil(t, reg.Paths)
	assert.Equal(t, TableID("USERS"), reg.ID)
	assert.NotEqual(t, TableID("orders"), reg.ID)
	assert.Contains(t, reg.String(), "users")
}

func TestFileRegistrationOwnsPaths(t *testing.T) {
	paths := []string{"/data/a.orc"}
	reg := NewFileRegistration("t", SchemaFromOrcFile, paths)
	paths[0] = "/data/b.orc"
	assert.Equal(t, []string{"/data/a.orc"}, reg.Paths)
}

func TestSchemaFrom(t *testing.T) {
	assert.True(t, SchemaFromCsvFile.IsFile())
	assert.True(t, SchemaFromOrcFile.IsFile())
	assert.False(t, SchemaFromGdf.IsFile())
	assert.False(t, SchemaFromDistributed.IsFile())
	assert.Equal(t, "parquet", SchemaFromParquetFile.String())
	assert.Equal(t, "invalid", SchemaFrom(42).String())
}

func TestCatalog(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{}, c.Names())

	require.NoError(t, c.Put(NewFileRegistration("orders", SchemaFromParquetFile, []string{"/data/orders.parquet"})))
	require.NoError(t, c.Put(NewDistributedRegistration("Customer", 7)))
	require.NoError(t, c.Put(NewFileRegistration("nation", SchemaFromCsvFile, []string{"/data/nation.psv"})))

	assert.Equal(t, []string{"Customer", "nation", "orders"}, c.Names())
	assert.Equal(t, []string{"nation"}, c.NamesOfKind(SchemaFromCsvFile))

	reg, err := c.Get("customer")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reg.ResultToken)

	// replace
	require.NoError(t, c.Put(NewFileRegistration("orders", SchemaFromOrcFile, []string{"/data/orders.orc"})))
	reg, err = c.Get("orders")
	require.NoError(t, err)
	assert.Equal(t, SchemaFromOrcFile, reg.Kind)
	assert.Len(t, c.Names(), 3)

	require.NoError(t, c.Delete("ORDERS"))
	_, err = c.Get("orders")
	assert.True(t, errors.Is(err, ErrNotFound), "wanted not found got %v", err)
	err = c.Delete("orders")
	assert.True(t, errors.Is(err, ErrNotFound), "wanted not found got %v", err)
}
