package workflow

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/uditisharmaaa/journa/internal/generation"
	"github.com/uditisharmaaa/journa/internal/store"
)

// Manager hands out one workflow per owner. It replaces the ambient
// session globals of a client-side rendition: the owner identity is
// resolved once, at workflow creation, and passed in explicitly.
type Manager struct {
	mu        sync.Mutex
	workflows map[uuid.UUID]*Workflow

	classifier generation.Classifier
	reframer   generation.ReframeGenerator
	entries    store.EntryStore
	logger     *slog.Logger
}

// NewManager creates a workflow manager with the shared dependencies every
// workflow needs.
func NewManager(
	classifier generation.Classifier,
	reframer generation.ReframeGenerator,
	entries store.EntryStore,
	logger *slog.Logger,
) (*Manager, error) {
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

	return &Manager{
		workflows:  make(map[uuid.UUID]*Workflow),
		classifier: classifier,
		reframer:   reframer,
		entries:    entries,
		logger:     logger,
	}, nil
}

// Get returns the owner's active workflow, creating one on first use.
func (m *Manager) Get(ownerID uuid.UUID) (*Workflow, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if wf, ok := m.workflows[ownerID]; ok {
		return wf, nil
	}

	wf, err := New(ownerID, m.classifier, m.reframer, m.entries, m.logger)
	if err != nil {
		return nil, err
	}

	m.workflows[ownerID] = wf
	return wf, nil
}

// End tears down the owner's workflow, discarding any in-progress draft.
// Called at logout or when the user explicitly abandons the draft.
func (m *Manager) End(ownerID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if wf, ok := m.workflows[ownerID]; ok {
		wf.Reset()
		delete(m.workflows, ownerID)
	}
}
