package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for JournalEntry
var (
	ErrEmptyEntryID       = errors.New("entry ID cannot be empty")
	ErrEmptyEntryOwnerID  = errors.New("entry owner ID cannot be empty")
	ErrEmptyEntryText     = errors.New("entry text cannot be empty")
	ErrMoodOutOfRange     = errors.New("mood must be between 1 and 5")
	ErrMoodRequired       = errors.New("mood is required")
	ErrOrphanedReframe    = errors.New("reframe references a distortion that was not detected")
	ErrOrphanedReflection = errors.New("reflection references a distortion that was not detected")
)

// Reframe is an AI-generated alternative interpretation for a detected
// cognitive distortion, paired with a thought-challenging question.
type Reframe struct {
	Reframe  string `json:"reframe"`
	Question string `json:"question"`
}

// JournalEntry represents a persisted journal entry: the user's raw text,
// the distortions detected in it, the AI reframes offered for each
// distortion, and the reflections the user chose to write back.
type JournalEntry struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"user_id"`
	Text    string    `json:"entry_text"`

	// Mood is an integer in [1,5]. It is nil only on records written
	// before mood tracking existed; new entries always carry one.
	Mood *int `json:"mood"`

	// DetectedDistortions is an ordered set of distinct distortion labels,
	// in first-detection order. May be empty.
	DetectedDistortions []string `json:"detected_distortions"`

	// AIReframes maps distortion labels to their generated reframes.
	// Keys are always a subset of DetectedDistortions.
	AIReframes map[string]Reframe `json:"ai_reframes"`

	// UserReflections maps distortion labels to the user's free-text
	// reflections. Keys are always a subset of DetectedDistortions.
	UserReflections map[string]string `json:"user_reflections"`

	CreatedAt time.Time `json:"created_at"`
}

// NewJournalEntry creates a JournalEntry ready for persistence. It generates
// the entry ID and creation timestamp and validates the result.
func NewJournalEntry(
	ownerID uuid.UUID,
	text string,
	mood int,
	distortions []string,
	reframes map[string]Reframe,
	reflections map[string]string,
) (*JournalEntry, error) {
	entry := &JournalEntry{
		ID:                  uuid.New(),
		OwnerID:             ownerID,
		Text:                text,
		Mood:                &mood,
		DetectedDistortions: distortions,
		AIReframes:          reframes,
		UserReflections:     reflections,
		CreatedAt:           time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks the entry's structural invariants: identity fields are
// set, the mood is in range, and the reframe/reflection maps only reference
// detected distortions.
func (e *JournalEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}

	if e.OwnerID == uuid.Nil {
		return ErrEmptyEntryOwnerID
	}

	if e.Text == "" {
		return ErrEmptyEntryText
	}

	if e.Mood != nil && (*e.Mood < MoodMin || *e.Mood > MoodMax) {
		return ErrMoodOutOfRange
	}

	detected := make(map[string]bool, len(e.DetectedDistortions))
	for _, label := range e.DetectedDistortions {
		detected[label] = true
	}

	for label := range e.AIReframes {
		if !detected[label] {
			return ErrOrphanedReframe
		}
	}

	for label := range e.UserReflections {
		if !detected[label] {
			return ErrOrphanedReflection
		}
	}

	return nil
}

// HasDistortion reports whether the given label is among the entry's
// detected distortions.
func (e *JournalEntry) HasDistortion(label string) bool {
	for _, d := range e.DetectedDistortions {
		if d == label {
			return true
		}
	}
	return false
}
