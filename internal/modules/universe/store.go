// Package universe holds the working set of stock records the screener
// filters against, plus the generators and normalizers that fill it.
package universe

import (
	"sync"
	"time"

	"github.com/stockai/screener/internal/domain"
)

// Store is the in-memory universe. Reads take a snapshot copy so the
// screening pipeline can sort and slice without holding the lock, and
// refreshes replace the set wholesale.
type Store struct {
	mu        sync.RWMutex
	records   []domain.StockRecord
	updatedAt time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new universe.
func (s *Store) Replace(records []domain.StockRecord) {
	copied := make([]domain.StockRecord, len(records))
	copy(copied, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copied
	s.updatedAt = time.Now()
}

// Snapshot returns a copy of the current universe.
func (s *Store) Snapshot() []domain.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StockRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the current universe size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// UpdatedAt returns when the universe was last replaced, zero if never.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
