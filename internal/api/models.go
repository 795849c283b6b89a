package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/insights"
	"github.com/uditisharmaaa/journa/internal/workflow"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// DraftRequest sets or replaces the draft's text and optionally its mood.
type DraftRequest struct {
	Text string `json:"text"           validate:"required,min=1"`
	Mood *int   `json:"mood,omitempty" validate:"omitempty,min=1,max=5"`
}

// DraftUpdateRequest updates the draft's text and/or mood.
type DraftUpdateRequest struct {
	Text *string `json:"text,omitempty"`
	Mood *int    `json:"mood,omitempty" validate:"omitempty,min=1,max=5"`
}

// UtteranceRequest appends one recognized speech utterance to the draft.
type UtteranceRequest struct {
	Utterance string `json:"utterance" validate:"required,min=1"`
}

// ReflectionRequest sets the user's reflection for one detected distortion.
type ReflectionRequest struct {
	Reflection string `json:"reflection" validate:"required"`
}

// ReframeResponse is one AI-generated reframe with its reflection question.
type ReframeResponse struct {
	Reframe  string `json:"reframe"`
	Question string `json:"question"`
}

// DraftResponse is the client view of the in-progress draft.
type DraftResponse struct {
	State       string                     `json:"state"`
	Text        string                     `json:"text"`
	Mood        *int                       `json:"mood,omitempty"`
	Summary     []string                   `json:"summary,omitempty"`
	Reframes    map[string]ReframeResponse `json:"reframes,omitempty"`
	Reflections map[string]string          `json:"reflections,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

// EntryResponse is the client view of one persisted journal entry.
type EntryResponse struct {
	ID                  uuid.UUID                  `json:"id"`
	Text                string                     `json:"entry_text"`
	Mood                *int                       `json:"mood,omitempty"`
	MoodLabel           string                     `json:"mood_label,omitempty"`
	DetectedDistortions []string                   `json:"detected_distortions"`
	AIReframes          map[string]ReframeResponse `json:"ai_reframes"`
	UserReflections     map[string]string          `json:"user_reflections"`
	CreatedAt           time.Time                  `json:"created_at"`
}

// SaveResponse acknowledges a persisted entry.
type SaveResponse struct {
	EntryID   uuid.UUID `json:"entry_id"`
	CreatedAt time.Time `json:"created_at"`
}

// InsightsResponse carries the aggregated dashboard views.
type InsightsResponse struct {
	DistortionFrequency insights.FrequencyMatrix `json:"distortion_frequency"`
	MoodSeries          []insights.MoodPoint     `json:"mood_series"`
}

// newDraftResponse projects a workflow snapshot to its client view.
func newDraftResponse(snap workflow.Snapshot) DraftResponse {
	resp := DraftResponse{
		State:       string(snap.State),
		Text:        snap.Text,
		Mood:        snap.Mood,
		Summary:     snap.Summary,
		Reflections: snap.Reflections,
	}

	if snap.Reframes != nil {
		resp.Reframes = make(map[string]ReframeResponse, len(snap.Reframes))
		for label, r := range snap.Reframes {
			resp.Reframes[label] = ReframeResponse{Reframe: r.Reframe, Question: r.Question}
		}
	}

	if snap.Err != nil {
		resp.Error = GetSafeErrorMessage(snap.Err)
	}

	return resp
}

// newEntryResponse projects a persisted entry to its client view.
func newEntryResponse(entry *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		ID:                  entry.ID,
		Text:                entry.Text,
		Mood:                entry.Mood,
		DetectedDistortions: entry.DetectedDistortions,
		UserReflections:     entry.UserReflections,
		CreatedAt:           entry.CreatedAt,
	}

	if entry.Mood != nil {
		resp.MoodLabel = domain.MoodLabels[*entry.Mood]
	}

	resp.AIReframes = make(map[string]ReframeResponse, len(entry.AIReframes))
	for label, r := range entry.AIReframes {
		resp.AIReframes[label] = ReframeResponse{Reframe: r.Reframe, Question: r.Question}
	}

	return resp
}
