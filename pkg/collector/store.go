package collector

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/beacon/pkg/fingerprint"
)

// Submission is a verified fingerprint as stored by the collector.
type Submission struct {
	ID         string             `json:"id"`
	DeviceID   string             `json:"deviceId"`
	Record     fingerprint.Record `json:"record"`
	ClientIP   string             `json:"clientIp,omitempty"`
	ReceivedAt time.Time          `json:"receivedAt"`
}

// Store persists submissions, keeping at least the latest one per device.
type Store interface {
	Save(ctx context.Context, s Submission) error
	Latest(ctx context.Context, deviceID string) (Submission, error)
}

// MemoryStore keeps the latest submission per device in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	devices map[string]Submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{devices: make(map[string]Submission)}
}

func (m *MemoryStore) Save(_ context.Context, s Submission) error {
	if s.DeviceID == "" {
		return ErrInvalidDeviceID
	}
	m.mu.Lock()
	m.devices[s.DeviceID] = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Latest(_ context.Context, deviceID string) (Submission, error) {
	m.mu.RLock()
	s, ok := m.devices[deviceID]
	m.mu.RUnlock()
	if !ok {
		return Submission{}, ErrNotFound
	}
	return s, nil
}

// Len returns the number of known devices.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.devices)
}
