package domain

// ConfidenceThreshold is the minimum classifier confidence a sentence-level
// prediction needs before it contributes to an entry's distortion summary.
// Predictions below this value never reach the reframe request or the
// persisted record.
const ConfidenceThreshold = 0.4

// SentencePrediction is a single classifier result: one sentence from the
// entry text, the distortion label predicted for it, and the classifier's
// confidence in [0,1].
type SentencePrediction struct {
	Sentence   string  `json:"sentence"`
	Distortion string  `json:"predicted_distortion"`
	Confidence float64 `json:"confidence"`
}

// Passes reports whether the prediction clears the confidence threshold.
func (p SentencePrediction) Passes() bool {
	return p.Confidence >= ConfidenceThreshold
}

// SummarizePredictions filters predictions to those at or above the
// confidence threshold and returns the distinct distortion labels among the
// survivors in first-occurrence order, together with a map from each label
// to the ordered list of sentences that triggered it.
func SummarizePredictions(predictions []SentencePrediction) ([]string, map[string][]string) {
	var summary []string
	triggers := make(map[string][]string)

	for _, p := range predictions {
		if !p.Passes() {
			continue
		}
		if _, seen := triggers[p.Distortion]; !seen {
			summary = append(summary, p.Distortion)
		}
		triggers[p.Distortion] = append(triggers[p.Distortion], p.Sentence)
	}

	return summary, triggers
}
