// Package schema describes tables the way they are registered with the
// engine: the TableRegistration descriptor sent over the control
// connection, and a catalog of what a session has registered.
package schema

import (
	"fmt"
	"strings"

	u "github.com/araddon/gou"
	"github.com/dchest/siphash"

	"github.com/blazingdb/blazingsql/datasource/files"
	"github.com/blazingdb/blazingsql/frame"
	"github.com/blazingdb/blazingsql/value"
)

var _ = u.EMPTY

// SchemaFrom tells the engine where a table's schema and data come from.
type SchemaFrom uint8

const (
	// DO NOT CHANGE the numbers, they are shared with the engine
	SchemaFromGdf         SchemaFrom = 0
	SchemaFromCsvFile     SchemaFrom = 1
	SchemaFromParquetFile SchemaFrom = 2
	SchemaFromDistributed SchemaFrom = 3
	SchemaFromJsonFile    SchemaFrom = 4
	SchemaFromOrcFile     SchemaFrom = 5
)

func (m SchemaFrom) String() string {
	switch m {
	case SchemaFromGdf:
		return "gdf"
	case SchemaFromCsvFile:
		return "csv"
	case SchemaFromParquetFile:
		return "parquet"
	case SchemaFromDistributed:
		return "distributed"
	case SchemaFromJsonFile:
		return "json"
	case SchemaFromOrcFile:
		return "orc"
	}
	return "invalid"
}

// IsFile is true for kinds whose data the engine reads from paths
func (m SchemaFrom) IsFile() bool {
	switch m {
	case SchemaFromCsvFile, SchemaFromParquetFile, SchemaFromJsonFile, SchemaFromOrcFile:
		return true
	}
	return false
}

// Column name and engine type code
type Column struct {
	Name string      `json:"name"`
	Type value.DType `json:"type"`
}

// TableRegistration is the descriptor the engine's create table call
// consumes.  In-memory tables carry Columns + Handle, distributed results
// carry ResultToken, file tables carry Paths and their format args.
type TableRegistration struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Kind        SchemaFrom     `json:"kind"`
	Columns     []Column       `json:"columns,omitempty"`
	Handle      *frame.Table   `json:"-"`
	ResultToken int64          `json:"result_token,omitempty"`
	Paths       []string       `json:"paths,omitempty"`
	Csv         *files.CsvArgs `json:"csv_args,omitempty"`
	Orc         *files.OrcArgs `json:"orc_args,omitempty"`
	JSONLines   bool           `json:"lines,omitempty"`
}

// TableID a stable id for a table name, case insensitive
func TableID(name string) uint64 {
	return siphash.Hash(0, 1, []byte(strings.ToLower(name)))
}

// NewGdfRegistration describes a device resident table, column names in
// order with each element type coerced to the engine type code.
func NewGdfRegistration(name string, tbl *frame.Table) *TableRegistration {
	m := &TableRegistration{
		ID:      TableID(name),
		Name:    name,
		Kind:    SchemaFromGdf,
		Handle:  tbl,
		Columns: make([]Column, 0, tbl.NumCols()),
	}
	for i := 0; i < tbl.NumCols(); i++ {
		col := tbl.Column(i)
		dt := value.ToDType(col.Type)
		if dt == value.DTypeInvalid {
			u.Warnf("table %q column %q has no engine type for %v", name, col.Name, col.Type)
		}
		m.Columns = append(m.Columns, Column{Name: col.Name, Type: dt})
	}
	return m
}

// NewDistributedRegistration describes a result spread across workers.
func NewDistributedRegistration(name string, token int64) *TableRegistration {
	return &TableRegistration{ID: TableID(name), Name: name, Kind: SchemaFromDistributed, ResultToken: token}
}

// NewFileRegistration describes a file backed table; the caller attaches
// the format specific args.
func NewFileRegistration(name string, kind SchemaFrom, paths []string) *TableRegistration {
	return &TableRegistration{ID: TableID(name), Name: name, Kind: kind, Paths: append([]string(nil), paths...)}
}

// ColumnNames in order
func (m *TableRegistration) ColumnNames() []string {
	cols := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		cols[i] = c.Name
	}
	return cols
}

// DTypes engine type codes in column order
func (m *TableRegistration) DTypes() []value.DType {
	types := make([]value.DType, len(m.Columns))
	for i, c := range m.Columns {
		types[i] = c.Type
	}
	return types
}

func (m *TableRegistration) String() string {
	if m.Kind.IsFile() {
		return fmt.Sprintf("<Table name=%q kind=%v paths=%v>", m.Name, m.Kind, m.Paths)
	}
	return fmt.Sprintf("<Table name=%q kind=%v cols=%v>", m.Name, m.Kind, m.ColumnNames())
}
