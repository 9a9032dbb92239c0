package catalog

import (
	"context"
	"sync"

	"github.com/tidwall/btree"
)

type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[Entry]
}

func NewMemStore(entries ...Entry) *MemStore {
	s := &MemStore{
		tree: btree.NewBTreeGOptions(func(a, b Entry) bool {
			return a.Name < b.Name
		}, btree.Options{NoLocks: true}),
	}
	for _, e := range entries {
		s.tree.Set(e)
	}
	return s
}

// NewStore returns a MemStore seeded with DefaultEntries.
func NewStore() *MemStore {
	return NewMemStore(DefaultEntries()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListSortedByName(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Items(), nil
}

func (s *MemStore) Get(ctx context.Context, name string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tree.Get(Entry{Name: name})
	return e, ok, nil
}
