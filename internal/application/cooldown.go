package application

import (
	"context"
	"sync"
	"time"
)

// MemoryCooldowns is the in-process CooldownStore.
type MemoryCooldowns struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryCooldowns() *MemoryCooldowns {
	return &MemoryCooldowns{last: map[string]time.Time{}}
}

func (m *MemoryCooldowns) Reserve(_ context.Context, key string, now time.Time, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.last[key]; ok && now.Sub(prev) < window {
		return false, nil
	}
	m.last[key] = now
	return true, nil
}
