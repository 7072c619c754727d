package services

import (
	"context"
	"sort"
	"sync"

	"studybuddy_server/models"
)

// MemoryMatchStore is an in-process MatchStore guarded by a single mutex, so
// every operation, ClaimPair in particular, is atomic with respect to the
// others. It backs the matcher tests and local runs without AWS credentials.
type MemoryMatchStore struct {
	mu       sync.Mutex
	pool     map[string]models.WaitingEntry
	pairings map[string]models.Pairing
}

func NewMemoryMatchStore() *MemoryMatchStore {
	return &MemoryMatchStore{
		pool:     make(map[string]models.WaitingEntry),
		pairings: make(map[string]models.Pairing),
	}
}

func (s *MemoryMatchStore) PutEntry(_ context.Context, entry models.WaitingEntry) error {
	s.mu.Lock()
	s.pool[entry.UserID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryMatchStore) DeleteEntry(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.pool, userID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryMatchStore) ListEntries(_ context.Context) ([]models.WaitingEntry, error) {
	s.mu.Lock()
	entries := make([]models.WaitingEntry, 0, len(s.pool))
	for _, entry := range s.pool {
		entries = append(entries, entry)
	}
	s.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EnqueuedAt != entries[j].EnqueuedAt {
			return entries[i].EnqueuedAt < entries[j].EnqueuedAt
		}
		return entries[i].Seq < entries[j].Seq
	})
	return entries, nil
}

func (s *MemoryMatchStore) ClaimPair(_ context.Context, self, candidate models.WaitingEntry, pairing models.Pairing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.holds(self) {
		return ErrNotSearching
	}
	if !s.holds(candidate) {
		return ErrCandidateClaimed
	}

	delete(s.pool, self.UserID)
	delete(s.pool, candidate.UserID)
	s.pairings[pairing.PairingID] = pairing
	s.pairings[self.UserID] = pairing
	s.pairings[candidate.UserID] = pairing
	return nil
}

func (s *MemoryMatchStore) GetPairing(_ context.Context, key string) (*models.Pairing, error) {
	s.mu.Lock()
	pairing, ok := s.pairings[key]
	s.mu.Unlock()
	if !ok {
		return nil, ErrPairingNotFound
	}
	return &pairing, nil
}

// holds reports whether the pool still contains exactly the observed entry.
func (s *MemoryMatchStore) holds(entry models.WaitingEntry) bool {
	current, ok := s.pool[entry.UserID]
	return ok && current.EnqueuedAt == entry.EnqueuedAt && current.Seq == entry.Seq
}
