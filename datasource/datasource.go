// Package datasource turns whatever a user hands to create table (an
// in-memory table, a query result, one or more file paths) into a
// DataSource holding the registration the engine needs.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/bridge"
	"github.com/blazingdb/blazingsql/frame"
	"github.com/blazingdb/blazingsql/schema"
)

var (
	_ = u.EMPTY

	// ErrResolution the input could not be turned into a DataSource
	ErrResolution = errors.New("could not resolve datasource")
	// ErrRegister the engine did not accept the table
	ErrRegister = errors.New("could not register table")
)

// Kind of input a DataSource was made from.
// DO NOT CHANGE the numbers, do not use iota
type Kind uint8

const (
	KindGpuTable             Kind = 0
	KindFrame                Kind = 1
	KindArrow                Kind = 2
	KindCsv                  Kind = 3
	KindParquet              Kind = 4
	KindResultSet            Kind = 5
	KindDistributedResultSet Kind = 6
	KindJSON                 Kind = 7
	KindOrc                  Kind = 8
)

func (m Kind) String() string {
	switch m {
	case KindGpuTable:
		return "cudf"
	case KindFrame:
		return "pandas"
	case KindArrow:
		return "arrow"
	case KindCsv:
		return "csv"
	case KindParquet:
		return "parquet"
	case KindResultSet:
		return "result_set"
	case KindDistributedResultSet:
		return "distributed_result_set"
	case KindJSON:
		return "json"
	case KindOrc:
		return "orc"
	}
	return fmt.Sprintf("kind(%d)", uint8(m))
}

// IsFile is true for kinds the engine reads from paths
func (m Kind) IsFile() bool {
	switch m {
	case KindCsv, KindParquet, KindJSON, KindOrc:
		return true
	}
	return false
}

// DataSource is a resolved create table input.  It holds either an
// in-memory table or a set of paths, never both, and the registration
// built from it.  Only the valid flag changes after construction, when
// Register runs.
type DataSource struct {
	kind  Kind
	name  string
	table *frame.Table
	paths []string
	reg   *schema.TableRegistration

	mu    sync.Mutex
	valid bool
}

func newTableSource(kind Kind, name string, tbl *frame.Table) *DataSource {
	return &DataSource{kind: kind, name: name, table: tbl, reg: schema.NewGdfRegistration(name, tbl)}
}

func newFileSource(kind Kind, name string, paths []string, reg *schema.TableRegistration) *DataSource {
	return &DataSource{kind: kind, name: name, paths: paths, reg: reg}
}

func (m *DataSource) Kind() Kind   { return m.kind }
func (m *DataSource) Name() string { return m.name }

// Table the device resident table, nil for file and distributed kinds
func (m *DataSource) Table() *frame.Table { return m.table }

// Paths a copy of the files of a file kind, nil otherwise
func (m *DataSource) Paths() []string {
	if m.paths == nil {
		return nil
	}
	return append([]string(nil), m.paths...)
}

// Registration the descriptor sent to the engine
func (m *DataSource) Registration() *schema.TableRegistration { return m.reg }

// IsFromFile is true when the engine reads the data from Paths
func (m *DataSource) IsFromFile() bool { return m.kind.IsFile() }

// Valid is true once the engine accepted the registration
func (m *DataSource) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.valid
}

func (m *DataSource) String() string {
	if !m.Valid() {
		return "Invalid datasource"
	}
	return m.kind.String()
}

// Register sends the registration over the control connection.  Any
// failure is returned and leaves the DataSource invalid.
func (m *DataSource) Register(ctx context.Context, client bridge.Client) error {
	if client == nil {
		return fmt.Errorf("%w %q: no connection", ErrRegister, m.name)
	}
	err := client.CreateTable(ctx, m.reg)
	m.mu.Lock()
	m.valid = err == nil
	m.mu.Unlock()
	if err != nil {
		u.Warnf("register %v failed: %v", m.reg, err)
		return fmt.Errorf("%w %q: %w", ErrRegister, m.name, err)
	}
	u.Debugf("registered %v", m.reg)
	return nil
}
