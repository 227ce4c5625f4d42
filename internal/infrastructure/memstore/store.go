// Package memstore is an in-process item store backed by go-memdb. It serves
// local runs without AWS and the round-trip tests of the service layer.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/pkg/record"
)

const (
	itemsTable = "items"
	idxID      = "id"
	idxTable   = "table"
)

type entry struct {
	Table string
	Key   string
	Item  domain.Item
}

// Store keeps items of every configured table in a single memdb table,
// indexed by (table, hash key).
type Store struct {
	db   *memdb.MemDB
	keys map[string]string // table -> hash key attribute
}

// New creates a store for the given table -> hash key schema.
func New(keys map[string]string) (*Store, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			itemsTable: {
				Name: itemsTable,
				Indexes: map[string]*memdb.IndexSchema{
					idxID: {
						Name:   idxID,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "Table"},
								&memdb.StringFieldIndex{Field: "Key"},
							},
						},
					},
					idxTable: {
						Name:    idxTable,
						Indexer: &memdb.StringFieldIndex{Field: "Table"},
					},
				},
			},
		},
	}
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	return &Store{db: db, keys: keys}, nil
}

func (s *Store) PutItem(_ context.Context, table string, item domain.Item) error {
	keyAttr, err := s.keyAttr(table)
	if err != nil {
		return err
	}
	norm, err := record.NormalizeMap(item)
	if err != nil {
		return err
	}
	kv, ok := norm[keyAttr]
	if !ok || kv == nil || kv == "" {
		return fmt.Errorf("item missing key attribute %s: %w", keyAttr, domain.ErrBadRequest)
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(itemsTable, &entry{Table: table, Key: fmt.Sprint(kv), Item: norm}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (s *Store) GetItem(_ context.Context, table string, key domain.Item) (domain.Item, error) {
	k, err := s.keyString(table, key)
	if err != nil {
		return nil, err
	}
	txn := s.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(itemsTable, idxID, table, k)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
	}
	return copyItem(raw.(*entry).Item)
}

func (s *Store) UpdateItem(_ context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error) {
	k, err := s.keyString(table, key)
	if err != nil {
		return nil, err
	}
	norm, err := record.NormalizeMap(updates)
	if err != nil {
		return nil, err
	}
	keyAttr := s.keys[table]
	delete(norm, keyAttr)
	if len(norm) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	txn := s.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(itemsTable, idxID, table, k)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
	}
	merged, err := copyItem(raw.(*entry).Item)
	if err != nil {
		return nil, err
	}
	for f, v := range norm {
		if v == nil {
			delete(merged, f)
			continue
		}
		merged[f] = v
	}
	if err := txn.Insert(itemsTable, &entry{Table: table, Key: k, Item: merged}); err != nil {
		return nil, err
	}
	txn.Commit()
	return copyItem(merged)
}

func (s *Store) DeleteItem(_ context.Context, table string, key domain.Item) error {
	k, err := s.keyString(table, key)
	if err != nil {
		return err
	}
	txn := s.db.Txn(true)
	defer txn.Abort()
	raw, err := txn.First(itemsTable, idxID, table, k)
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
	}
	if err := txn.Delete(itemsTable, raw); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (s *Store) Scan(_ context.Context, table string, filter domain.Filter) ([]domain.Item, error) {
	if _, err := s.keyAttr(table); err != nil {
		return nil, err
	}
	want, err := record.NormalizeMap(filter)
	if err != nil {
		return nil, err
	}
	return s.collect(table, want)
}

// Query matches on the key attribute; the index name is not needed in memory.
func (s *Store) Query(_ context.Context, table string, q domain.Query) ([]domain.Item, error) {
	if _, err := s.keyAttr(table); err != nil {
		return nil, err
	}
	if q.KeyName == "" {
		return nil, fmt.Errorf("query key name required: %w", domain.ErrBadRequest)
	}
	want, err := record.NormalizeMap(map[string]interface{}{q.KeyName: q.KeyValue})
	if err != nil {
		return nil, err
	}
	return s.collect(table, want)
}

func (s *Store) collect(table string, want map[string]interface{}) ([]domain.Item, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(itemsTable, idxTable, table)
	if err != nil {
		return nil, err
	}
	var entries []*entry
	for raw := it.Next(); raw != nil; raw = it.Next() {
		e := raw.(*entry)
		if matches(e.Item, want) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		item, err := copyItem(e.Item)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func matches(item domain.Item, want map[string]interface{}) bool {
	for k, v := range want {
		if !reflect.DeepEqual(item[k], v) {
			return false
		}
	}
	return true
}

func (s *Store) keyAttr(table string) (string, error) {
	attr, ok := s.keys[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q: %w", table, domain.ErrBadRequest)
	}
	return attr, nil
}

func (s *Store) keyString(table string, key domain.Item) (string, error) {
	attr, err := s.keyAttr(table)
	if err != nil {
		return "", err
	}
	v, ok := key[attr]
	if !ok {
		return "", fmt.Errorf("key must contain %s: %w", attr, domain.ErrBadRequest)
	}
	n, err := record.Normalize(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(n), nil
}

// copyItem hands out a private copy so callers cannot mutate stored state.
func copyItem(item domain.Item) (domain.Item, error) {
	m, err := record.NormalizeMap(item)
	if err != nil {
		return nil, err
	}
	return domain.Item(m), nil
}
