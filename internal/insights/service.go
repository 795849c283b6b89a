package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/store"
)

// Dependency validation errors.
var (
	ErrNilEntryStore = errors.New("entry store cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
)

// Dashboard bundles the aggregated views served to the trends page.
type Dashboard struct {
	Frequency FrequencyMatrix `json:"frequency"`
	Moods     []MoodPoint     `json:"moods"`
}

// Service computes insight views over an owner's entries. Dashboard results
// are cached per owner for a short TTL and invalidated when the owner saves
// a new entry; the log search always reads fresh.
type Service struct {
	entries store.EntryStore
	cache   *gocache.Cache
	logger  *slog.Logger
}

// NewService creates an insights service with the given dashboard cache TTL.
func NewService(entries store.EntryStore, cacheTTL time.Duration, logger *slog.Logger) (*Service, error) {
	if entries == nil {
		return nil, ErrNilEntryStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Service{
		entries: entries,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		logger:  logger.With(slog.String("component", "insights_service")),
	}, nil
}

// Dashboard returns the frequency matrix and mood series for one owner,
// reading entries in ascending creation order so the mood series is
// chronological.
func (s *Service) Dashboard(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error) {
	key := ownerID.String()
	if cached, found := s.cache.Get(key); found {
		if dash, ok := cached.(*Dashboard); ok {
			s.logger.Debug("dashboard cache hit", slog.String("user_id", key))
			return dash, nil
		}
	}

	entries, err := s.entries.ListByOwnerAsc(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for dashboard: %w", err)
	}

	clean := sanitizeEntries(entries)
	dash := &Dashboard{
		Frequency: DistortionFrequency(clean),
		Moods:     MoodSeries(clean),
	}

	s.cache.Set(key, dash, gocache.DefaultExpiration)
	s.logger.Debug("dashboard computed",
		slog.String("user_id", key),
		slog.Int("entry_count", len(clean)))
	return dash, nil
}

// Search returns the owner's entries matching a keyword query, most recent
// first. The full set is re-filtered on every call.
func (s *Service) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.JournalEntry, error) {
	entries, err := s.entries.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for search: %w", err)
	}

	return FilterEntries(sanitizeEntries(entries), query), nil
}

// Invalidate drops the cached dashboard for one owner. Called after a save
// so the next dashboard read reflects the new entry.
func (s *Service) Invalidate(ownerID uuid.UUID) {
	s.cache.Delete(ownerID.String())
}
