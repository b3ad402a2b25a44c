package state

import "sync"

// StoreImpl is a thread-safe in-memory status store. The scheduler tick is
// its only writer; metrics and other observers read snapshots.
type StoreImpl struct {
	mu     sync.RWMutex
	status MonitorStatus
}

// NewStore creates an empty status store.
func NewStore() *StoreImpl {
	return &StoreImpl{}
}

// Update replaces the published status.
func (s *StoreImpl) Update(status MonitorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// GetSnapshot returns a copy of the published status.
func (s *StoreImpl) GetSnapshot() MonitorStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
