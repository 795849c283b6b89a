package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uditisharmaaa/journa/internal/domain"
)

// EntryStore defines the interface for journal entry persistence.
// All reads are owner-scoped; an entry is never visible to a user other
// than the one it belongs to.
type EntryStore interface {
	// Create saves a new journal entry to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the owner does not exist, and validation
	// errors from the domain JournalEntry if data is invalid.
	Create(ctx context.Context, entry *domain.JournalEntry) error

	// GetByID retrieves an entry by its unique ID, scoped to the given owner.
	// Returns ErrEntryNotFound if the entry does not exist or belongs to a
	// different owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.JournalEntry, error)

	// ListByOwner retrieves all of an owner's entries ordered by creation
	// time descending (most recent first), as the log view displays them.
	// Returns an empty slice if the owner has no entries.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error)

	// ListByOwnerAsc retrieves all of an owner's entries ordered by
	// creation time ascending, the order the aggregation engine and the
	// mood trend consume them in.
	ListByOwnerAsc(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error)

	// WithTx returns a new EntryStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) EntryStore
}
