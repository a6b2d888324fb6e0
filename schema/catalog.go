package schema

import (
	"errors"
	"fmt"

	u "github.com/araddon/gou"
	"github.com/hashicorp/go-memdb"
)

const catalogTable = "tables"

var (
	// ErrNotFound no table registered under that name
	ErrNotFound = errors.New("table not found")
)

func makeCatalogSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			catalogTable: &memdb.TableSchema{
				Name: catalogTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": &memdb.IndexSchema{
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Name", Lowercase: true},
					},
					"kind": &memdb.IndexSchema{
						Name:    "kind",
						Indexer: &memdb.UintFieldIndex{Field: "Kind"},
					},
				},
			},
		},
	}
}

// Catalog is the set of tables registered through one session, keyed by
// case insensitive name.
type Catalog struct {
	db *memdb.MemDB
}

// NewCatalog creates an empty catalog
func NewCatalog() (*Catalog, error) {
	db, err := memdb.NewMemDB(makeCatalogSchema())
	if err != nil {
		u.Warnf("could not create catalog db %v", err)
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Put adds or replaces the registration with the same name
func (m *Catalog) Put(reg *TableRegistration) error {
	txn := m.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(catalogTable, reg); err != nil {
		return fmt.Errorf("catalog put %q: %w", reg.Name, err)
	}
	txn.Commit()
	return nil
}

// Get a registration by name
func (m *Catalog) Get(name string) (*TableRegistration, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(catalogTable, "id", name)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return raw.(*TableRegistration), nil
}

// Delete a registration, ErrNotFound if there was none
func (m *Catalog) Delete(name string) error {
	txn := m.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(catalogTable, "id", name)
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := txn.Delete(catalogTable, raw); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Names of registered tables, sorted
func (m *Catalog) Names() []string {
	return m.names("id")
}

// NamesOfKind lists the registered tables with a given source kind, sorted
func (m *Catalog) NamesOfKind(kind SchemaFrom) []string {
	return m.names("kind", uint8(kind))
}

func (m *Catalog) names(index string, args ...interface{}) []string {
	txn := m.db.Txn(false)
	defer txn.Abort()
	names := make([]string, 0)
	iter, err := txn.Get(catalogTable, index, args...)
	if err != nil {
		u.Errorf("catalog scan %v", err)
		return names
	}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		names = append(names, raw.(*TableRegistration).Name)
	}
	return names
}
