package insights

import (
	"github.com/uditisharmaaa/journa/internal/domain"
)

// sanitizeEntries cleans a batch read from the store before it reaches the
// aggregation functions. Malformed records degrade rather than fail the
// whole computation.
func sanitizeEntries(entries []*domain.JournalEntry) []*domain.JournalEntry {
	clean := make([]*domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		clean = append(clean, sanitizeEntry(entry))
	}
	return clean
}

// sanitizeEntry returns a copy of the entry with its derived fields made
// safe for aggregation: a missing distortion list becomes empty, reframe and
// reflection keys not backed by a detected distortion are dropped, and a
// mood outside [1,5] becomes unset so it only falls out of the mood series.
func sanitizeEntry(entry *domain.JournalEntry) *domain.JournalEntry {
	clean := *entry

	if clean.DetectedDistortions == nil {
		clean.DetectedDistortions = []string{}
	}

	detected := make(map[string]bool, len(clean.DetectedDistortions))
	for _, label := range clean.DetectedDistortions {
		detected[label] = true
	}

	reframes := make(map[string]domain.Reframe, len(clean.AIReframes))
	for label, r := range clean.AIReframes {
		if detected[label] {
			reframes[label] = r
		}
	}
	clean.AIReframes = reframes

	reflections := make(map[string]string, len(clean.UserReflections))
	for label, r := range clean.UserReflections {
		if detected[label] {
			reflections[label] = r
		}
	}
	clean.UserReflections = reflections

	if clean.Mood != nil && !domain.ValidMood(*clean.Mood) {
		clean.Mood = nil
	}

	return &clean
}
