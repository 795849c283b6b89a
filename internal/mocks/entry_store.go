package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/store"
)

// MockEntryStore implements store.EntryStore for testing. The default
// implementation keeps entries in insertion order, which tests treat as
// ascending creation order.
type MockEntryStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, entry *domain.JournalEntry) error
	GetByIDFn     func(ctx context.Context, ownerID, id uuid.UUID) (*domain.JournalEntry, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error)

	// Data for default implementation
	Entries     []*domain.JournalEntry
	CreateError error
	ListError   error

	// CreateCallCount tracks how many times Create was called
	CreateCallCount int
}

var _ store.EntryStore = (*MockEntryStore)(nil)

// NewMockEntryStore creates a new mock store with initialized defaults
func NewMockEntryStore() *MockEntryStore {
	return &MockEntryStore{}
}

// Create implements the EntryStore interface
func (m *MockEntryStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCallCount++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Entries = append(m.Entries, entry)
	return nil
}

// GetByID implements the EntryStore interface
func (m *MockEntryStore) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, id)
	}

	for _, entry := range m.Entries {
		if entry.ID == id && entry.OwnerID == ownerID {
			return entry, nil
		}
	}

	return nil, store.ErrEntryNotFound
}

// ListByOwner implements the EntryStore interface
func (m *MockEntryStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.JournalEntry, error) {
	asc, err := m.ListByOwnerAsc(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	desc := make([]*domain.JournalEntry, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		desc = append(desc, asc[i])
	}
	return desc, nil
}

// ListByOwnerAsc implements the EntryStore interface
func (m *MockEntryStore) ListByOwnerAsc(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	owned := make([]*domain.JournalEntry, 0, len(m.Entries))
	for _, entry := range m.Entries {
		if entry.OwnerID == ownerID {
			owned = append(owned, entry)
		}
	}
	return owned, nil
}

// WithTx implements the EntryStore interface for transaction support
func (m *MockEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	return m
}
