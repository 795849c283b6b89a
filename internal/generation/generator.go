package generation

import (
	"context"

	"github.com/uditisharmaaa/journa/internal/domain"
)

// Classifier defines the interface for the external distortion-classification
// service. It serves as a boundary between the entry workflow and the
// provider-specific client, following the hexagonal architecture pattern.
type Classifier interface {
	// Classify sends the entry text to the classification service and
	// returns one prediction per analyzed sentence. The returned slice may
	// be empty when no sentence triggers a prediction.
	//
	// Errors are drawn from this package's taxonomy (see errors.go);
	// transient failures are wrapped in ErrTransientFailure.
	Classify(ctx context.Context, entryText string) ([]domain.SentencePrediction, error)
}

// ReframeGenerator defines the interface for the external reframe-generation
// service. Given the entry text and a map from each detected distortion to
// the sentences that triggered it, it returns one reframe per distortion.
type ReframeGenerator interface {
	// GenerateReframes returns a map keyed by exactly the labels present in
	// distortionMap. The call is all-or-nothing: on any error, no partial
	// result is returned.
	GenerateReframes(
		ctx context.Context,
		entryText string,
		distortionMap map[string][]string,
	) (map[string]domain.Reframe, error)
}
