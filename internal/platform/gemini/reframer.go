package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/uditisharmaaa/journa/internal/config"
	"github.com/uditisharmaaa/journa/internal/domain"
	"github.com/uditisharmaaa/journa/internal/generation"
)

// contentGenerator is the slice of the Gemini client the reframer needs; it
// lets tests substitute the model call.
type contentGenerator func(ctx context.Context, prompt string) (string, error)

// Reframer implements generation.ReframeGenerator using the Gemini API.
type Reframer struct {
	logger   *slog.Logger
	config   config.LLMConfig
	generate contentGenerator
}

var _ generation.ReframeGenerator = (*Reframer)(nil)

// NewReframer creates a reframer backed by a Gemini API client.
func NewReframer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Reframer, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Reframer{
		logger:   logger.With(slog.String("component", "gemini_reframer")),
		config:   cfg,
		generate: newGenerateCall(client, cfg.ModelName),
	}, nil
}

// newGenerateCall wraps one Gemini content-generation request and flattens
// the response to its text, mapping blocked or empty responses to permanent
// errors.
func newGenerateCall(client *genai.Client, model string) contentGenerator {
	return func(ctx context.Context, prompt string) (string, error) {
		contents := []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		}

		res, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("%w: gemini call failed: %v", generation.ErrTransientFailure, err)
		}
		if res == nil || len(res.Candidates) == 0 {
			return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
		}
		if res.Candidates[0].FinishReason == genai.FinishReasonSafety {
			return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
		}

		text := res.Text()
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
		}
		return text, nil
	}
}

// GenerateReframes produces one {reframe, question} pair per detected
// distortion. Transient API failures are retried with exponential backoff
// and jitter; blocked content and malformed responses fail immediately.
func (r *Reframer) GenerateReframes(
	ctx context.Context,
	entryText string,
	distortionMap map[string][]string,
) (map[string]domain.Reframe, error) {
	prompt, err := buildPrompt(entryText, distortionMap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	maxRetries := r.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelaySeconds := r.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		r.logger.InfoContext(ctx, "calling gemini",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1),
			slog.Int("distortion_count", len(distortionMap)))

		text, err := r.generate(ctx, prompt)
		if err == nil {
			reframes, parseErr := parseReframes(text, distortionMap)
			if parseErr != nil {
				r.logger.WarnContext(ctx, "gemini returned unusable output", "error", parseErr)
				return nil, parseErr
			}
			return reframes, nil
		}

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return nil, err
		}

		lastErr = err
		r.logger.WarnContext(ctx, "gemini call failed",
			slog.Int("attempt", attempt+1),
			"error", err)

		if attempt == maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: exceeded %d attempts: %v",
		generation.ErrTransientFailure, maxRetries+1, lastErr)
}

// parseReframes decodes the model's JSON output and checks it against the
// requested distortions: every returned pair must be complete, and every key
// must correspond to a requested label.
func parseReframes(text string, distortionMap map[string][]string) (map[string]domain.Reframe, error) {
	cleaned := stripCodeFence(text)

	var decoded map[string]domain.Reframe
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if len(decoded) == 0 {
		return nil, fmt.Errorf("%w: response contained no reframes", generation.ErrInvalidResponse)
	}

	reframes := make(map[string]domain.Reframe, len(decoded))
	for label, reframe := range decoded {
		if _, requested := distortionMap[label]; !requested {
			// The model sometimes invents labels; drop them rather than
			// violate the detected-distortion subset rule downstream.
			continue
		}
		if strings.TrimSpace(reframe.Reframe) == "" || strings.TrimSpace(reframe.Question) == "" {
			return nil, fmt.Errorf("%w: incomplete reframe for %q", generation.ErrInvalidResponse, label)
		}
		reframes[label] = reframe
	}

	if len(reframes) == 0 {
		return nil, fmt.Errorf("%w: no returned label matched a detected distortion", generation.ErrInvalidResponse)
	}
	return reframes, nil
}
