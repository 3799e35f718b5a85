package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/ReddyVikranth/Contract-Intelligence-Parser/model"
)

// record pairs a contract with the uploaded file bytes backing it.
type record struct {
	contract model.Contract
	data     []byte
}

// Store is the in-memory contract store backing the mock service.
type Store struct {
	mu        sync.RWMutex
	contracts map[string]*record
}

func NewStore() *Store {
	return &Store{
		contracts: make(map[string]*record),
	}
}

func (s *Store) Save(c model.Contract, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.UpdatedAt = time.Now()
	s.contracts[c.ID] = &record{contract: c, data: data}
}

// Get returns a copy of the contract, or false when unknown.
func (s *Store) Get(id string) (model.Contract, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.contracts[id]
	if !ok {
		return model.Contract{}, false
	}
	return rec.contract, true
}

// File returns the stored upload bytes for a contract.
func (s *Store) File(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.contracts[id]
	if !ok {
		return nil, false
	}
	return rec.data, true
}

// Update applies fn to the stored contract under the write lock and
// returns the updated copy.
func (s *Store) Update(id string, fn func(*model.Contract)) (model.Contract, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.contracts[id]
	if !ok {
		return model.Contract{}, false
	}
	fn(&rec.contract)
	rec.contract.UpdatedAt = time.Now()
	return rec.contract, true
}

// List returns one page of contracts, newest first, optionally filtered
// by status, along with the filtered total.
func (s *Store) List(page, pageSize int, status model.Status) ([]model.Contract, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Contract, 0, len(s.contracts))
	for _, rec := range s.contracts {
		if status != "" && rec.contract.Status != status {
			continue
		}
		all = append(all, rec.contract)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total
}

// Count returns the number of contracts in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}
