package settingsstore

import (
	"context"
	"sync"

	"turnos-service/internal/domain/booking"
)

// Memory keeps the policy in process. It is lost on restart.
type Memory struct {
	mu     sync.RWMutex
	policy booking.Policy
}

func NewMemory(initial booking.Policy) *Memory {
	return &Memory{policy: initial.Clone()}
}

func (m *Memory) Get(_ context.Context) (booking.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.policy.Clone(), nil
}

func (m *Memory) Set(_ context.Context, patch booking.PolicyPatch) (booking.Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged, err := m.policy.Merge(patch)
	if err != nil {
		return booking.Policy{}, err
	}
	m.policy = merged
	return merged.Clone(), nil
}
