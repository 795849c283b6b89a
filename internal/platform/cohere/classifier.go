// Package cohere implements the sentence-level distortion classifier on top
// of Cohere's classify API, using a fine-tuned classification model.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/uditisharmaaa/journa/internal/config"
	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/generation"
)

const classifyPath = "/v1/classify"

// Classifier calls the Cohere classify endpoint with the entry split into
// sentences and maps each classification back to a SentencePrediction.
type Classifier struct {
	logger     *slog.Logger
	config     config.ClassifierConfig
	httpClient *http.Client
}

var _ generation.Classifier = (*Classifier)(nil)

// NewClassifier creates a classifier from the given configuration.
func NewClassifier(logger *slog.Logger, cfg config.ClassifierConfig) (*Classifier, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: classifier API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%w: classifier model id cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: classifier base URL cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds <= 0 {
		timeout = 30 * time.Second
	}

	return &Classifier{
		logger:     logger.With(slog.String("component", "cohere_classifier")),
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type classifyRequest struct {
	Model  string   `json:"model"`
	Inputs []string `json:"inputs"`
}

type classifyResponse struct {
	Classifications []struct {
		Input      string  `json:"input"`
		Prediction string  `json:"prediction"`
		Confidence float64 `json:"confidence"`
	} `json:"classifications"`
}

// Classify splits the entry into sentences and returns one prediction per
// sentence. An entry with no sentence content yields no predictions and no
// network call.
func (c *Classifier) Classify(ctx context.Context, entryText string) ([]domain.SentencePrediction, error) {
	sentences := SplitSentences(entryText)
	if len(sentences) == 0 {
		return []domain.SentencePrediction{}, nil
	}

	payload, err := json.Marshal(classifyRequest{
		Model:  c.config.ModelID,
		Inputs: sentences,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling classify request: %v", generation.ErrClassificationFailed, err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + classifyPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building classify request: %v", generation.ErrClassificationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "calling classify endpoint",
		slog.Int("sentence_count", len(sentences)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: classify request failed: %v", generation.ErrTransientFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close classify response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: classify endpoint returned status %d: %s",
				generation.ErrTransientFailure, resp.StatusCode, body)
		}
		return nil, fmt.Errorf("%w: classify endpoint returned status %d: %s",
			generation.ErrClassificationFailed, resp.StatusCode, body)
	}

	var parsed classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding classify response: %v", generation.ErrInvalidResponse, err)
	}

	predictions := make([]domain.SentencePrediction, 0, len(parsed.Classifications))
	for _, cls := range parsed.Classifications {
		predictions = append(predictions, domain.SentencePrediction{
			Sentence:   cls.Input,
			Distortion: cls.Prediction,
			Confidence: cls.Confidence,
		})
	}

	c.logger.DebugContext(ctx, "classification completed",
		slog.Int("prediction_count", len(predictions)))
	return predictions, nil
}

// SplitSentences breaks entry text into trimmed, non-empty sentences on
// period boundaries.
func SplitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
