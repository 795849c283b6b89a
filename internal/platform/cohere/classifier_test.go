package cohere

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uditisharmaaa/journa/internal/config"
	"github.com/uditisharmaaa/journa/internal/generation"
)

func testConfig() config.ClassifierConfig {
	return config.ClassifierConfig{
		APIKey:         "test-key",
		ModelID:        "test-model-ft",
		BaseURL:        "https://api.cohere.test",
		TimeoutSeconds: 5,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newMockedClassifier(t *testing.T) *Classifier {
	t.Helper()

	classifier, err := NewClassifier(testLogger(), testConfig())
	require.NoError(t, err)

	httpmock.ActivateNonDefault(classifier.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return classifier
}

func TestNewClassifierValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.ClassifierConfig)
	}{
		{name: "missing api key", mutate: func(c *config.ClassifierConfig) { c.APIKey = "" }},
		{name: "missing model id", mutate: func(c *config.ClassifierConfig) { c.ModelID = "" }},
		{name: "missing base url", mutate: func(c *config.ClassifierConfig) { c.BaseURL = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			_, err := NewClassifier(testLogger(), cfg)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}

	_, err := NewClassifier(nil, testConfig())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestClassifySplitsAndMaps(t *testing.T) {
	classifier := newMockedClassifier(t)

	var gotRequest classifyRequest
	httpmock.RegisterResponder(http.MethodPost, "https://api.cohere.test/v1/classify",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))
			if err := json.NewDecoder(req.Body).Decode(&gotRequest); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"classifications": []map[string]any{
					{"input": "I always fail", "prediction": "Overgeneralization", "confidence": 0.91},
					{"input": "Nobody cares", "prediction": "Mind Reading", "confidence": 0.42},
				},
			})
		})

	predictions, err := classifier.Classify(context.Background(), "I always fail. Nobody cares.")
	require.NoError(t, err)

	assert.Equal(t, "test-model-ft", gotRequest.Model)
	assert.Equal(t, []string{"I always fail", "Nobody cares"}, gotRequest.Inputs)

	require.Len(t, predictions, 2)
	assert.Equal(t, "I always fail", predictions[0].Sentence)
	assert.Equal(t, "Overgeneralization", predictions[0].Distortion)
	assert.InDelta(t, 0.91, predictions[0].Confidence, 1e-9)
	assert.Equal(t, "Mind Reading", predictions[1].Distortion)
}

func TestClassifyEmptyTextSkipsNetwork(t *testing.T) {
	classifier := newMockedClassifier(t)

	predictions, err := classifier.Classify(context.Background(), " ... ")
	require.NoError(t, err)
	assert.Empty(t, predictions)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestClassifyErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "rate limited is transient", status: http.StatusTooManyRequests, wantErr: generation.ErrTransientFailure},
		{name: "server error is transient", status: http.StatusBadGateway, wantErr: generation.ErrTransientFailure},
		{name: "bad request is permanent", status: http.StatusBadRequest, wantErr: generation.ErrClassificationFailed},
		{name: "unauthorized is permanent", status: http.StatusUnauthorized, wantErr: generation.ErrClassificationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			classifier := newMockedClassifier(t)
			httpmock.RegisterResponder(http.MethodPost, "https://api.cohere.test/v1/classify",
				httpmock.NewStringResponder(tc.status, `{"message":"nope"}`))

			_, err := classifier.Classify(context.Background(), "Some sentence.")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClassifyMalformedBody(t *testing.T) {
	classifier := newMockedClassifier(t)
	httpmock.RegisterResponder(http.MethodPost, "https://api.cohere.test/v1/classify",
		httpmock.NewStringResponder(http.StatusOK, "not json"))

	_, err := classifier.Classify(context.Background(), "Some sentence.")
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "basic", text: "One. Two. Three.", want: []string{"One", "Two", "Three"}},
		{name: "no trailing period", text: "Only one", want: []string{"Only one"}},
		{name: "empty fragments dropped", text: "A.. .B.", want: []string{"A", "B"}},
		{name: "whitespace only", text: " . . ", want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitSentences(tc.text))
		})
	}
}
