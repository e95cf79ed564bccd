package database

import (
	"context"
	"sync"
	"time"

	"mangaart/internal/domain"
)

// MemoryStore keeps inquiries in process memory. It exists so the service
// can run locally without a database and is never selected in production.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    uint
	inquiries []domain.Inquiry
	now       func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store whose IDs start at 1
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create assigns the next ID and the current time, then appends a copy
func (m *MemoryStore) Create(ctx context.Context, inquiry *domain.Inquiry) (*domain.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := *inquiry
	record.ID = m.nextID
	record.CreatedAt = m.now()
	m.nextID++
	m.inquiries = append(m.inquiries, record)

	result := record
	return &result, nil
}

// Inquiries returns the stored inquiries in insertion order
func (m *MemoryStore) Inquiries() []domain.Inquiry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Inquiry, len(m.inquiries))
	copy(out, m.inquiries)
	return out
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Kind() string {
	return KindMemory
}

func (m *MemoryStore) Close() error {
	return nil
}
