package mocks

import (
	"context"
	"sync"

	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/generation"
)

// MockClassifier implements generation.Classifier for testing
type MockClassifier struct {
	mu sync.Mutex

	// ClassifyFn allows test cases to mock the Classify behavior
	ClassifyFn func(ctx context.Context, entryText string) ([]domain.SentencePrediction, error)

	// Default values used when ClassifyFn isn't defined
	Predictions []domain.SentencePrediction
	Err         error

	// ClassifyCallCount tracks how many times Classify was called
	ClassifyCallCount int
}

var _ generation.Classifier = (*MockClassifier)(nil)

// Classify implements the generation.Classifier interface
func (m *MockClassifier) Classify(
	ctx context.Context,
	entryText string,
) ([]domain.SentencePrediction, error) {
	m.mu.Lock()
	m.ClassifyCallCount++
	fn := m.ClassifyFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, entryText)
	}
	return m.Predictions, m.Err
}

// MockReframeGenerator implements generation.ReframeGenerator for testing
type MockReframeGenerator struct {
	mu sync.Mutex

	// GenerateFn allows test cases to mock the GenerateReframes behavior
	GenerateFn func(
		ctx context.Context,
		entryText string,
		distortionMap map[string][]string,
	) (map[string]domain.Reframe, error)

	// Default values used when GenerateFn isn't defined
	Reframes map[string]domain.Reframe
	Err      error

	// GenerateCallCount tracks how many times GenerateReframes was called
	GenerateCallCount int
}

var _ generation.ReframeGenerator = (*MockReframeGenerator)(nil)

// GenerateReframes implements the generation.ReframeGenerator interface
func (m *MockReframeGenerator) GenerateReframes(
	ctx context.Context,
	entryText string,
	distortionMap map[string][]string,
) (map[string]domain.Reframe, error) {
	m.mu.Lock()
	m.GenerateCallCount++
	fn := m.GenerateFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, entryText, distortionMap)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if m.Reframes != nil {
		return m.Reframes, nil
	}

	out := make(map[string]domain.Reframe, len(distortionMap))
	for label := range distortionMap {
		out[label] = domain.Reframe{
			Reframe:  "reframe for " + label,
			Question: "question for " + label,
		}
	}
	return out, nil
}
