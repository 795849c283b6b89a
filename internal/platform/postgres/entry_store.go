package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/platform/logger"
	"github.com/uditisharmaaa/journa/internal/store"
)

// PostgresEntryStore implements the store.EntryStore interface using a
// PostgreSQL database as the storage backend.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL implementation of the
// EntryStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresEntryStore(db store.DBTX, logger *slog.Logger) *PostgresEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "entry_store")),
	}
}

// Ensure PostgresEntryStore implements store.EntryStore interface
var _ store.EntryStore = (*PostgresEntryStore)(nil)

// entryColumns is the projection shared by every read query.
const entryColumns = `id, user_id, entry_text, mood, detected_distortions, ai_reframes, user_reflections, created_at`

// Create implements store.EntryStore.Create
// It saves a new journal entry with its analysis payload.
// Returns store.ErrInvalidEntity if the owner doesn't exist (foreign key
// violation) or a constraint rejects the row.
func (s *PostgresEntryStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	distortions, reframes, reflections, err := marshalAnalysis(entry)
	if err != nil {
		log.Error("failed to encode entry analysis payload",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO journal_entries (id, user_id, entry_text, mood, detected_distortions, ai_reframes, user_reflections, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.OwnerID,
		entry.Text,
		moodValue(entry.Mood),
		distortions,
		reframes,
		reflections,
		entry.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during entry creation",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.ID.String()),
				slog.String("user_id", entry.OwnerID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, entry.OwnerID)
		}

		log.Error("failed to create entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("user_id", entry.OwnerID.String()))
		return MapError(err)
	}

	log.Info("entry created successfully",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.OwnerID.String()),
		slog.Int("distortion_count", len(entry.DetectedDistortions)))
	return nil
}

// GetByID implements store.EntryStore.GetByID
// It retrieves one of the owner's entries by ID. Entries belonging to other
// users are indistinguishable from missing ones.
// Returns store.ErrEntryNotFound if no matching entry exists.
func (s *PostgresEntryStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.JournalEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE user_id = $1 AND id = $2
	`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("entry not found",
				slog.String("entry_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrEntryNotFound
		}
		log.Error("failed to get entry by ID",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, MapError(err)
	}

	return entry, nil
}

// ListByOwner implements store.EntryStore.ListByOwner
// It returns all of the owner's entries, most recent first, as the log view
// displays them.
func (s *PostgresEntryStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error) {
	return s.listByOwner(ctx, ownerID, "DESC")
}

// ListByOwnerAsc implements store.EntryStore.ListByOwnerAsc
// It returns all of the owner's entries in chronological order, as the
// aggregation views consume them.
func (s *PostgresEntryStore) ListByOwnerAsc(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error) {
	return s.listByOwner(ctx, ownerID, "ASC")
}

func (s *PostgresEntryStore) listByOwner(ctx context.Context, ownerID uuid.UUID, direction string) ([]*domain.JournalEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at ` + direction + `
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list entries",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	// Return an empty slice, not nil, when the owner has no entries.
	entries := []*domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan entry row",
				slog.String("error", err.Error()),
				slog.String("user_id", ownerID.String()))
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating entry rows",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, MapError(err)
	}

	log.Debug("entries listed",
		slog.String("user_id", ownerID.String()),
		slog.Int("count", len(entries)))
	return entries, nil
}

// WithTx implements store.EntryStore.WithTx
// It returns a new store instance that runs its statements on the given
// transaction.
func (s *PostgresEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	return &PostgresEntryStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.JournalEntry, error) {
	var (
		entry       domain.JournalEntry
		mood        sql.NullInt64
		distortions []byte
		reframes    []byte
		reflections []byte
	)

	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Text,
		&mood,
		&distortions,
		&reframes,
		&reflections,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if mood.Valid {
		m := int(mood.Int64)
		entry.Mood = &m
	}

	if err := json.Unmarshal(distortions, &entry.DetectedDistortions); err != nil {
		return nil, fmt.Errorf("decoding detected_distortions for entry %s: %w", entry.ID, err)
	}
	if err := json.Unmarshal(reframes, &entry.AIReframes); err != nil {
		return nil, fmt.Errorf("decoding ai_reframes for entry %s: %w", entry.ID, err)
	}
	if err := json.Unmarshal(reflections, &entry.UserReflections); err != nil {
		return nil, fmt.Errorf("decoding user_reflections for entry %s: %w", entry.ID, err)
	}

	return &entry, nil
}

// marshalAnalysis encodes the entry's JSONB columns, normalizing nil
// collections so the stored document is never the JSON literal null.
func marshalAnalysis(entry *domain.JournalEntry) (distortions, reframes, reflections []byte, err error) {
	d := entry.DetectedDistortions
	if d == nil {
		d = []string{}
	}
	if distortions, err = json.Marshal(d); err != nil {
		return nil, nil, nil, fmt.Errorf("encoding detected_distortions: %w", err)
	}

	r := entry.AIReframes
	if r == nil {
		r = map[string]domain.Reframe{}
	}
	if reframes, err = json.Marshal(r); err != nil {
		return nil, nil, nil, fmt.Errorf("encoding ai_reframes: %w", err)
	}

	u := entry.UserReflections
	if u == nil {
		u = map[string]string{}
	}
	if reflections, err = json.Marshal(u); err != nil {
		return nil, nil, nil, fmt.Errorf("encoding user_reflections: %w", err)
	}

	return distortions, reframes, reflections, nil
}

func moodValue(mood *int) sql.NullInt64 {
	if mood == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*mood), Valid: true}
}
