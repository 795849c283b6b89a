package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/generation"
	"github.com/uditisharmaaa/journa/internal/store"
)

// Dependency validation errors.
var (
	ErrNilClassifier = errors.New("classifier cannot be nil")
	ErrNilReframer   = errors.New("reframe generator cannot be nil")
	ErrNilEntryStore = errors.New("entry store cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
)

// Workflow drives one journal draft through its lifecycle. All methods are
// safe for concurrent use; requests arriving while a classify, reframe, or
// save call is in flight are rejected rather than queued, and completions
// carrying a stale sequence number are discarded.
type Workflow struct {
	mu sync.Mutex

	ownerID uuid.UUID
	state   State

	text string
	mood *int

	// seq is bumped each time an analyze cycle is issued and on Reset, so
	// a slow completion from an abandoned cycle can never overwrite newer
	// results.
	seq uint64

	summary     []string
	triggers    map[string][]string
	reframes    map[string]domain.Reframe
	reflections map[string]string
	lastErr     error

	classifier generation.Classifier
	reframer   generation.ReframeGenerator
	entries    store.EntryStore
	logger     *slog.Logger
}

// Snapshot is a consistent read-only view of a workflow, as returned to the
// presentation layer.
type Snapshot struct {
	State       State
	Text        string
	Mood        *int
	Summary     []string
	Reframes    map[string]domain.Reframe
	Reflections map[string]string
	Err         error
}

// New creates a workflow for a single draft owned by the given user.
func New(
	ownerID uuid.UUID,
	classifier generation.Classifier,
	reframer generation.ReframeGenerator,
	entries store.EntryStore,
	logger *slog.Logger,
) (*Workflow, error) {
	if classifier == nil {
		return nil, ErrNilClassifier
	}
	if reframer == nil {
		return nil, ErrNilReframer
	}
	if entries == nil {
		return nil, ErrNilEntryStore
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Workflow{
		ownerID:    ownerID,
		state:      StateDraft,
		classifier: classifier,
		reframer:   reframer,
		entries:    entries,
		logger:     logger.With(slog.String("component", "entry_workflow")),
	}, nil
}

// State returns the workflow's current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Snapshot returns a consistent copy of the workflow's visible data.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		State: w.state,
		Text:  w.text,
		Err:   w.lastErr,
	}

	if w.mood != nil {
		mood := *w.mood
		snap.Mood = &mood
	}

	snap.Summary = append([]string(nil), w.summary...)

	if w.reframes != nil {
		snap.Reframes = make(map[string]domain.Reframe, len(w.reframes))
		for label, r := range w.reframes {
			snap.Reframes[label] = r
		}
	}

	if w.reflections != nil {
		snap.Reflections = make(map[string]string, len(w.reflections))
		for label, r := range w.reflections {
			snap.Reflections[label] = r
		}
	}

	return snap
}

// SetText replaces the draft text. The prior analysis results, if any, stay
// visible until the next analyze request replaces them.
func (w *Workflow) SetText(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.state.settled() {
		return ErrCycleInFlight
	}

	w.text = text
	return nil
}

// AppendUtterance appends a recognized speech utterance to the draft text,
// inserting a leading separator space.
func (w *Workflow) AppendUtterance(utterance string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.state.settled() {
		return ErrCycleInFlight
	}

	w.text += " " + utterance
	return nil
}

// SetMood records the user's mood for the draft.
func (w *Workflow) SetMood(mood int) error {
	if !domain.ValidMood(mood) {
		return domain.ErrMoodOutOfRange
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.state.settled() {
		return ErrCycleInFlight
	}

	w.mood = &mood
	return nil
}

// SetReflection records the user's reflection for one detected distortion.
// Only valid in the Reframed state and only for labels in the summary.
func (w *Workflow) SetReflection(label, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReframed {
		return ErrNotReframed
	}

	if _, ok := w.reframes[label]; !ok {
		return ErrUnknownDistortion
	}

	if w.reflections == nil {
		w.reflections = make(map[string]string)
	}
	w.reflections[label] = text
	return nil
}

// Analyze runs one full analysis cycle: validate the draft text, clear any
// stale results from a prior cycle, classify the text, filter predictions to
// the confidence threshold, and, when the summary is non-empty, generate
// reframes for it. Each phase commits all of its results or none of them.
//
// A request is rejected while a previous cycle is unsettled, and a
// completion whose sequence number has been superseded is discarded.
func (w *Workflow) Analyze(ctx context.Context) error {
	w.mu.Lock()

	if !w.state.settled() {
		w.mu.Unlock()
		return ErrCycleInFlight
	}

	if strings.TrimSpace(w.text) == "" {
		// Rejected before any network call; no state change.
		w.mu.Unlock()
		return ErrEmptyDraft
	}

	w.seq++
	seq := w.seq

	// Re-analysis always starts clean.
	w.summary = nil
	w.triggers = nil
	w.reframes = nil
	w.reflections = nil
	w.lastErr = nil
	w.state = StateAnalyzing

	text := w.text
	w.mu.Unlock()

	predictions, err := w.classifier.Classify(ctx, text)

	w.mu.Lock()
	if seq != w.seq {
		w.mu.Unlock()
		w.logger.Debug("discarding stale classify completion", "seq", seq)
		return ErrStaleCycle
	}

	if err != nil {
		phaseErr := &PhaseError{Phase: PhaseClassify, Err: err}
		w.lastErr = phaseErr
		w.state = StateError
		w.mu.Unlock()
		w.logger.Warn("classification failed", "error", err)
		return phaseErr
	}

	summary, triggers := domain.SummarizePredictions(predictions)
	w.summary = summary
	w.triggers = triggers
	w.state = StateAnalyzed

	if len(summary) == 0 {
		// Nothing to reframe; no generation call is made and saving is
		// not offered.
		w.mu.Unlock()
		w.logger.Info("analysis found no distortions above threshold")
		return nil
	}

	w.state = StateReframesPending
	w.mu.Unlock()

	reframes, err := w.reframer.GenerateReframes(ctx, text, triggers)

	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.seq {
		w.logger.Debug("discarding stale reframe completion", "seq", seq)
		return ErrStaleCycle
	}

	if err != nil {
		// The classify phase already committed; the summary stays intact
		// so the user can retry.
		w.lastErr = &PhaseError{Phase: PhaseReframe, Err: err}
		w.state = StateError
		w.logger.Warn("reframe generation failed", "error", err)
		return w.lastErr
	}

	w.reframes = reframes
	w.state = StateReframed
	w.logger.Info("analysis cycle completed",
		"distortion_count", len(summary))
	return nil
}

// Save persists the draft as a journal entry. It requires the Reframed
// state, a resolved owner, and a mood. On persistence failure the workflow
// returns to Reframed with reframes and reflections preserved, so the user
// can retry without redoing analysis.
func (w *Workflow) Save(ctx context.Context) (*domain.JournalEntry, error) {
	w.mu.Lock()

	if !w.state.settled() {
		w.mu.Unlock()
		return nil, ErrCycleInFlight
	}

	if w.state != StateReframed {
		w.mu.Unlock()
		return nil, ErrNotReframed
	}

	if w.ownerID == uuid.Nil {
		w.mu.Unlock()
		return nil, ErrMissingOwner
	}

	if w.mood == nil {
		// Rejected before the persistence call.
		w.mu.Unlock()
		return nil, ErrMoodNotSet
	}

	reframes := make(map[string]domain.Reframe, len(w.reframes))
	for label, r := range w.reframes {
		reframes[label] = r
	}
	reflections := make(map[string]string, len(w.reflections))
	for label, r := range w.reflections {
		reflections[label] = r
	}

	entry, err := domain.NewJournalEntry(
		w.ownerID,
		w.text,
		*w.mood,
		append([]string(nil), w.summary...),
		reframes,
		reflections,
	)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	w.state = StateSaving
	w.mu.Unlock()

	err = w.entries.Create(ctx, entry)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		// No data loss: reframes and reflections are still in place.
		w.lastErr = &PhaseError{Phase: PhaseSave, Err: err}
		w.state = StateReframed
		w.logger.Warn("entry save failed", "error", err)
		return nil, w.lastErr
	}

	w.state = StateSaved
	w.lastErr = nil
	w.logger.Info("entry saved",
		"entry_id", entry.ID.String(),
		"distortion_count", len(entry.DetectedDistortions))
	return entry, nil
}

// Reset returns the workflow to a fresh Draft, discarding all accumulated
// text, results, and any in-flight cycle's eventual completion.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	w.state = StateDraft
	w.text = ""
	w.mood = nil
	w.summary = nil
	w.triggers = nil
	w.reframes = nil
	w.reflections = nil
	w.lastErr = nil
}
