package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Input validation errors.
var (
	ErrEmptyEntryText     = errors.New("entry text cannot be empty")
	ErrEmptyDistortionMap = errors.New("distortion map cannot be empty")
)

const promptTemplate = `You are a compassionate and practical CBT therapist AI.

Your goal is to help the user reframe their negative thoughts based on their specific journal entry and the cognitive distortions identified by an ML model.

USER'S JOURNAL ENTRY:

"""%s"""

DETECTED DISTORTIONS AND TRIGGER SENTENCES:

%s

TASK:

For each distortion, do the following:

1. Reframe: Write a short (1-2 sentence) personalized cognitive reframe. Make it directly relevant to the user's actual journal text and emotions. Avoid generic or robotic advice. Be warm, supportive, and emotionally attuned.

2. Reflection Prompt: Give 1 CBT-style thought-challenging question that the user can ask themselves to help reframe their thinking.

STYLE REQUIREMENTS:
- NO "Let's..." phrases
- NO therapist-speak like "clients often feel..."
- NO disclaimers, preambles, or definitions of distortions
- Output ONLY valid JSON with this exact format:

{
  "Distortion Type 1": {
    "reframe": "Personalized reframe for this distortion...",
    "question": "Thought-challenging question..."
  },
  "Distortion Type 2": {
    "reframe": "Personalized reframe...",
    "question": "Thought-challenging question..."
  }
}

Do not add explanations, preambles, or comments outside the JSON.`

// buildPrompt renders the reframe prompt for one entry and its detected
// distortions.
func buildPrompt(entryText string, distortionMap map[string][]string) (string, error) {
	if strings.TrimSpace(entryText) == "" {
		return "", ErrEmptyEntryText
	}
	if len(distortionMap) == 0 {
		return "", ErrEmptyDistortionMap
	}

	encoded, err := json.MarshalIndent(distortionMap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding distortion map: %w", err)
	}

	return fmt.Sprintf(promptTemplate, entryText, encoded), nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps its
// JSON output in.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.ReplaceAll(trimmed, "```json", "")
	trimmed = strings.ReplaceAll(trimmed, "```", "")
	return strings.TrimSpace(trimmed)
}
