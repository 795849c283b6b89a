package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uditisharmaaa/journa/internal/config"
	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestReframer builds a reframer whose model call is stubbed out.
func newTestReframer(generate contentGenerator) *Reframer {
	return &Reframer{
		logger: testLogger(),
		config: config.LLMConfig{
			ModelName:         "gemini-1.5-flash",
			MaxRetries:        2,
			RetryDelaySeconds: 1,
		},
		generate: generate,
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt, err := buildPrompt("I failed the exam. I am a failure.", map[string][]string{
		"Overgeneralization": {"I am a failure"},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "I failed the exam. I am a failure.")
	assert.Contains(t, prompt, "Overgeneralization")
	assert.Contains(t, prompt, "Output ONLY valid JSON")

	_, err = buildPrompt("  ", map[string][]string{"X": {"a"}})
	assert.ErrorIs(t, err, ErrEmptyEntryText)

	_, err = buildPrompt("text", nil)
	assert.ErrorIs(t, err, ErrEmptyDistortionMap)
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "leading whitespace", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}

func TestGenerateReframesSuccess(t *testing.T) {
	t.Parallel()

	response := "```json\n" + `{
		"Overgeneralization": {"reframe": "One exam is one data point.", "question": "What evidence contradicts this?"}
	}` + "\n```"

	var gotPrompt string
	reframer := newTestReframer(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return response, nil
	})

	reframes, err := reframer.GenerateReframes(context.Background(),
		"I am a failure.", map[string][]string{"Overgeneralization": {"I am a failure"}})
	require.NoError(t, err)

	require.Len(t, reframes, 1)
	assert.Equal(t, domain.Reframe{
		Reframe:  "One exam is one data point.",
		Question: "What evidence contradicts this?",
	}, reframes["Overgeneralization"])
	assert.True(t, strings.Contains(gotPrompt, "I am a failure."))
}

func TestGenerateReframesRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	calls := 0
	reframer := newTestReframer(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("%w: 503", generation.ErrTransientFailure)
		}
		return `{"Labeling": {"reframe": "r", "question": "q"}}`, nil
	})

	reframes, err := reframer.GenerateReframes(context.Background(),
		"text", map[string][]string{"Labeling": {"s"}})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, reframes, 1)
}

func TestGenerateReframesExhaustsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	reframer := newTestReframer(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", fmt.Errorf("%w: 503", generation.ErrTransientFailure)
	})

	_, err := reframer.GenerateReframes(context.Background(),
		"text", map[string][]string{"Labeling": {"s"}})
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Equal(t, 3, calls, "MaxRetries=2 means three attempts")
}

func TestGenerateReframesPermanentErrorsDoNotRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "blocked content", err: fmt.Errorf("%w: safety", generation.ErrContentBlocked)},
		{name: "invalid response", err: fmt.Errorf("%w: empty", generation.ErrInvalidResponse)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			reframer := newTestReframer(func(ctx context.Context, prompt string) (string, error) {
				calls++
				return "", tc.err
			})

			_, err := reframer.GenerateReframes(context.Background(),
				"text", map[string][]string{"Labeling": {"s"}})
			assert.ErrorIs(t, err, errors.Unwrap(tc.err))
			assert.Equal(t, 1, calls)
		})
	}
}

func TestParseReframesValidation(t *testing.T) {
	t.Parallel()

	requested := map[string][]string{"Labeling": {"s"}}

	_, err := parseReframes("not json", requested)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = parseReframes(`{}`, requested)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = parseReframes(`{"Labeling": {"reframe": "", "question": "q"}}`, requested)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	// Labels the model invented are dropped; requested labels survive.
	reframes, err := parseReframes(
		`{"Labeling": {"reframe": "r", "question": "q"}, "Invented": {"reframe": "x", "question": "y"}}`,
		requested)
	require.NoError(t, err)
	assert.Len(t, reframes, 1)
	assert.Contains(t, reframes, "Labeling")

	// Only invented labels is a contract violation.
	_, err = parseReframes(`{"Invented": {"reframe": "x", "question": "y"}}`, requested)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}
