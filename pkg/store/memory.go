package store

import "sync"

// MemoryStore is an in-memory Store used by tests and by anything that wants
// the repository layer without a filesystem underneath.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[Entity]*Table
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[Entity]*Table)}
}

// Load returns a copy of the entity table, empty with declared columns when
// nothing has been saved yet
func (s *MemoryStore) Load(entity Entity) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if table, ok := s.tables[entity]; ok {
		return table.Clone(), nil
	}

	columns, err := Schema(entity)
	if err != nil {
		return nil, err
	}
	return NewTable(columns), nil
}

// Save replaces the entity table
func (s *MemoryStore) Save(entity Entity, table *Table) error {
	if _, err := Schema(entity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[entity] = table.Clone()
	return nil
}
