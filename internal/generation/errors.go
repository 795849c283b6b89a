package generation

import "errors"

// Common errors returned by classifier and reframe-generator clients.
var (
	// ErrClassificationFailed is returned when the classifier cannot
	// produce predictions for the entry text.
	ErrClassificationFailed = errors.New("failed to classify entry text")

	// ErrGenerationFailed is returned when reframe generation fails for a
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate reframes")

	// ErrInvalidResponse is returned when a service response cannot be
	// parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from service")

	// ErrContentBlocked is returned when the LLM blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might
	// resolve on retry.
	ErrTransientFailure = errors.New("transient error calling service")

	// ErrInvalidConfig is returned when a client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid client configuration")
)
