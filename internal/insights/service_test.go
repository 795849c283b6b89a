package insights_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/insights"
	"github.com/uditisharmaaa/journa/internal/store"
)

type fakeEntryStore struct {
	mu       sync.Mutex
	asc      []*domain.JournalEntry
	desc     []*domain.JournalEntry
	ascCalls int
	err      error
}

func (f *fakeEntryStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	return nil
}

func (f *fakeEntryStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.JournalEntry, error) {
	return nil, store.ErrEntryNotFound
}

func (f *fakeEntryStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.desc, nil
}

func (f *fakeEntryStore) ListByOwnerAsc(ctx context.Context, ownerID uuid.UUID) ([]*domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ascCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.asc, nil
}

func (f *fakeEntryStore) WithTx(tx *sql.Tx) store.EntryStore { return f }

func (f *fakeEntryStore) ascCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ascCalls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEntry(day time.Time, mood *int, distortions ...string) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:                  uuid.New(),
		OwnerID:             uuid.New(),
		Text:                "entry text",
		Mood:                mood,
		DetectedDistortions: distortions,
		CreatedAt:           day,
	}
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := insights.NewService(nil, time.Minute, testLogger())
	assert.ErrorIs(t, err, insights.ErrNilEntryStore)

	_, err = insights.NewService(&fakeEntryStore{}, time.Minute, nil)
	assert.ErrorIs(t, err, insights.ErrNilLogger)
}

func TestDashboardComputesAndCaches(t *testing.T) {
	t.Parallel()

	mood := 4
	day := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	entries := &fakeEntryStore{
		asc: []*domain.JournalEntry{
			testEntry(day, &mood, "Catastrophizing"),
			testEntry(day.Add(24*time.Hour), nil, "Labeling"),
		},
	}
	svc, err := insights.NewService(entries, time.Minute, testLogger())
	require.NoError(t, err)

	ownerID := uuid.New()
	dash, err := svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)

	assert.Len(t, dash.Frequency.Rows, 2)
	assert.Equal(t, []string{"Catastrophizing", "Labeling"}, dash.Frequency.Labels)
	require.Len(t, dash.Moods, 1)
	assert.Equal(t, 4, dash.Moods[0].Mood)

	// A second read within the TTL is served from cache.
	again, err := svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Same(t, dash, again)
	assert.Equal(t, 1, entries.ascCallCount())

	// Invalidation forces a recompute.
	svc.Invalidate(ownerID)
	_, err = svc.Dashboard(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, entries.ascCallCount())
}

func TestDashboardCacheIsPerOwner(t *testing.T) {
	t.Parallel()

	entries := &fakeEntryStore{}
	svc, err := insights.NewService(entries, time.Minute, testLogger())
	require.NoError(t, err)

	_, err = svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, entries.ascCallCount())
}

func TestDashboardPropagatesStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	svc, err := insights.NewService(&fakeEntryStore{err: storeErr}, time.Minute, testLogger())
	require.NoError(t, err)

	_, err = svc.Dashboard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeErr)
}

func TestSearchFiltersDescendingList(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	matching := testEntry(day, nil, "Catastrophizing")
	other := testEntry(day, nil, "Labeling")
	entries := &fakeEntryStore{desc: []*domain.JournalEntry{matching, other}}

	svc, err := insights.NewService(entries, time.Minute, testLogger())
	require.NoError(t, err)

	got, err := svc.Search(context.Background(), uuid.New(), "catastro")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, matching.ID, got[0].ID)

	// Empty query returns the full set, most recent first as stored.
	got, err = svc.Search(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
