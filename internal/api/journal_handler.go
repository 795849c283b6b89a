package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/uditisharmaaa/journa/internal/api/middleware"
	"github.com/uditisharmaaa/journa/internal/api/shared"
	"github.com/uditisharmaaa/journa/internal/insights"
	"github.com/uditisharmaaa/journa/internal/speech"
	"github.com/uditisharmaaa/journa/internal/workflow"
)

// utteranceFeeder accepts recognized utterances from the client.
type utteranceFeeder interface {
	Feed(utterance string) error
}

// JournalHandler handles the draft lifecycle and the read-side views over
// persisted entries.
type JournalHandler struct {
	workflows    *workflow.Manager
	insights     *insights.Service
	newCapture   func() speech.Capability
	logger       *slog.Logger
	validator    *validator.Validate
	pumpCtx      context.Context
	mu           sync.Mutex
	transcribers map[uuid.UUID]speech.Capability
}

// NewJournalHandler creates a JournalHandler. newCapture builds the speech
// capability for a session; deployments without speech capture pass a
// factory returning speech.Unsupported.
func NewJournalHandler(
	pumpCtx context.Context,
	workflows *workflow.Manager,
	insightsSvc *insights.Service,
	newCapture func() speech.Capability,
	logger *slog.Logger,
) *JournalHandler {
	if newCapture == nil {
		newCapture = func() speech.Capability { return speech.Unsupported{} }
	}

	return &JournalHandler{
		workflows:    workflows,
		insights:     insightsSvc,
		newCapture:   newCapture,
		logger:       logger.With(slog.String("component", "journal_handler")),
		validator:    validator.New(),
		pumpCtx:      pumpCtx,
		transcribers: make(map[uuid.UUID]speech.Capability),
	}
}

// respondError maps an internal error to its HTTP status and sanitized
// message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// ownerWorkflow resolves the authenticated user's draft workflow, writing an
// error response when authentication context is missing.
func (h *JournalHandler) ownerWorkflow(w http.ResponseWriter, r *http.Request) (*workflow.Workflow, uuid.UUID, bool) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok || ownerID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, uuid.Nil, false
	}

	wf, err := h.workflows.Get(ownerID)
	if err != nil {
		respondError(w, r, err)
		return nil, uuid.Nil, false
	}
	return wf, ownerID, true
}

// CreateDraft handles POST /journal/draft. It replaces any existing draft
// with a fresh one carrying the given text and optional mood.
func (h *JournalHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	wf, _, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	var req DraftRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	wf.Reset()
	if err := wf.SetText(req.Text); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Mood != nil {
		if err := wf.SetMood(*req.Mood); err != nil {
			respondError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newDraftResponse(wf.Snapshot()))
}

// GetDraft handles GET /journal/draft.
func (h *JournalHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	wf, _, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newDraftResponse(wf.Snapshot()))
}

// UpdateDraft handles PUT /journal/draft. Fields absent from the payload are
// left unchanged.
func (h *JournalHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	wf, _, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	var req DraftUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if req.Text != nil {
		if err := wf.SetText(*req.Text); err != nil {
			respondError(w, r, err)
			return
		}
	}
	if req.Mood != nil {
		if err := wf.SetMood(*req.Mood); err != nil {
			respondError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newDraftResponse(wf.Snapshot()))
}

// DeleteDraft handles DELETE /journal/draft. It discards the draft and ends
// the owner's session, including any speech capture.
func (h *JournalHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	_, ownerID, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	if capture, found := h.transcribers[ownerID]; found {
		capture.Stop()
		delete(h.transcribers, ownerID)
	}
	h.mu.Unlock()

	h.workflows.End(ownerID)
	w.WriteHeader(http.StatusNoContent)
}

// AppendUtterance handles POST /journal/draft/utterances. The utterance is
// fed onto the owner's speech stream and appended to the draft text by the
// stream pump.
func (h *JournalHandler) AppendUtterance(w http.ResponseWriter, r *http.Request) {
	wf, ownerID, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	var req UtteranceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	capture, err := h.captureFor(ownerID, wf)
	if err != nil {
		respondError(w, r, err)
		return
	}

	feeder, canFeed := capture.(utteranceFeeder)
	if !canFeed {
		respondError(w, r, speech.ErrCapabilityUnavailable)
		return
	}

	if err := feeder.Feed(req.Utterance); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// captureFor returns the owner's speech capability, starting it and its
// stream pump on first use.
func (h *JournalHandler) captureFor(ownerID uuid.UUID, wf *workflow.Workflow) (speech.Capability, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if capture, found := h.transcribers[ownerID]; found {
		return capture, nil
	}

	capture := h.newCapture()
	if err := capture.Start(h.pumpCtx); err != nil {
		return nil, err
	}

	h.transcribers[ownerID] = capture
	go speech.Pump(h.pumpCtx, capture, wf, h.logger)
	return capture, nil
}

// Analyze handles POST /journal/draft/analyze. It runs one full classify and
// reframe cycle and returns the resulting draft view.
func (h *JournalHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	wf, _, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	if err := wf.Analyze(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newDraftResponse(wf.Snapshot()))
}

// SetReflection handles PUT /journal/draft/reflections/{label}.
func (h *JournalHandler) SetReflection(w http.ResponseWriter, r *http.Request) {
	wf, _, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	label := chi.URLParam(r, "label")
	if label == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Distortion label is required")
		return
	}

	var req ReflectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := wf.SetReflection(label, req.Reflection); err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newDraftResponse(wf.Snapshot()))
}

// Save handles POST /journal/draft/save. On success the owner's cached
// insights are invalidated so the dashboard reflects the new entry.
func (h *JournalHandler) Save(w http.ResponseWriter, r *http.Request) {
	wf, ownerID, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	entry, err := wf.Save(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.insights.Invalidate(ownerID)

	shared.RespondWithJSON(w, r, http.StatusCreated, SaveResponse{
		EntryID:   entry.ID,
		CreatedAt: entry.CreatedAt,
	})
}

// ListEntries handles GET /journal/entries?q=. Entries come back most recent
// first, filtered by the optional keyword query.
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	_, ownerID, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	entries, err := h.insights.Search(r.Context(), ownerID, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, newEntryResponse(entry))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Insights handles GET /journal/insights.
func (h *JournalHandler) Insights(w http.ResponseWriter, r *http.Request) {
	_, ownerID, ok := h.ownerWorkflow(w, r)
	if !ok {
		return
	}

	dash, err := h.insights.Dashboard(r.Context(), ownerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, InsightsResponse{
		DistortionFrequency: dash.Frequency,
		MoodSeries:          dash.Moods,
	})
}
