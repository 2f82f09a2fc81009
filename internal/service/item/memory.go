package item

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryRepository implements Repository with in-memory storage. It backs
// the "memory" store driver and the handler tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	items   map[int64]Item
	nextID  int64
	saveErr error
	listErr error
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]Item)}
}

// FailSaves makes every following Save return err. A nil err restores
// normal behaviour.
func (m *MemoryRepository) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// FailLists makes every following List return err.
func (m *MemoryRepository) FailLists(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

func (m *MemoryRepository) FindByID(_ context.Context, id int64) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *MemoryRepository) Save(_ context.Context, it *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}

	if it.ID == 0 {
		m.nextID++
		it.ID = m.nextID
	} else if _, ok := m.items[it.ID]; !ok {
		return ErrNotFound
	}
	m.items[it.ID] = *it

	return nil
}

func (m *MemoryRepository) List(_ context.Context) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sortItems(out)

	return out, nil
}

// Ping always succeeds.
func (m *MemoryRepository) Ping(context.Context) error {
	return nil
}

// Close is a no-op; it lets MemoryRepository stand in for closable stores.
func (m *MemoryRepository) Close() error {
	return nil
}

// sortItems orders items by position, then id.
func sortItems(items []Item) {
	slices.SortFunc(items, func(a, b Item) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

var _ Repository = (*MemoryRepository)(nil)
