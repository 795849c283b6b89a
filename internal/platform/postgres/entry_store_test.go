package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uditisharmaaa/journa/internal/domain"
)

func TestMarshalAnalysisNormalizesNilCollections(t *testing.T) {
	t.Parallel()

	entry := &domain.JournalEntry{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Text:      "text",
		CreatedAt: time.Now().UTC(),
	}

	distortions, reframes, reflections, err := marshalAnalysis(entry)
	require.NoError(t, err)

	// Nil collections become empty JSON documents, never the literal null.
	assert.JSONEq(t, `[]`, string(distortions))
	assert.JSONEq(t, `{}`, string(reframes))
	assert.JSONEq(t, `{}`, string(reflections))
}

func TestMarshalAnalysisEncodesPayload(t *testing.T) {
	t.Parallel()

	mood := 2
	entry := &domain.JournalEntry{
		ID:                  uuid.New(),
		OwnerID:             uuid.New(),
		Text:                "text",
		Mood:                &mood,
		DetectedDistortions: []string{"Catastrophizing"},
		AIReframes: map[string]domain.Reframe{
			"Catastrophizing": {Reframe: "r", Question: "q"},
		},
		UserReflections: map[string]string{"Catastrophizing": "note"},
		CreatedAt:       time.Now().UTC(),
	}

	distortions, reframes, reflections, err := marshalAnalysis(entry)
	require.NoError(t, err)

	assert.JSONEq(t, `["Catastrophizing"]`, string(distortions))
	assert.JSONEq(t, `{"Catastrophizing":{"reframe":"r","question":"q"}}`, string(reframes))
	assert.JSONEq(t, `{"Catastrophizing":"note"}`, string(reflections))
}

func TestMoodValue(t *testing.T) {
	t.Parallel()

	assert.False(t, moodValue(nil).Valid)

	mood := 4
	v := moodValue(&mood)
	assert.True(t, v.Valid)
	assert.EqualValues(t, 4, v.Int64)
}
