package insights

import (
	"sort"
	"strings"

	"github.com/uditisharmaaa/journa/internal/domain"
)

// dateLayout truncates an entry's creation time to its calendar date.
const dateLayout = "2006-01-02"

// DistortionRow is one charting row: a calendar date plus a count for every
// label in the collection's label universe. Dates with no occurrence of a
// label still carry an explicit zero.
type DistortionRow struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

// FrequencyMatrix is the dense date-by-label matrix for trend charting.
// Labels holds the full label universe in first-seen order; every row's
// Counts has exactly that key set.
type FrequencyMatrix struct {
	Labels []string        `json:"labels"`
	Rows   []DistortionRow `json:"rows"`
}

// MoodPoint is one point on the mood trend line.
type MoodPoint struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
}

// DistortionFrequency builds the dense frequency matrix from a collection of
// entries. The label universe is the union of every entry's detected
// distortions, in first-seen scan order; rows are emitted one per distinct
// calendar date, sorted ascending. Each entry contributes at most one count
// per label, since an entry's distortions are themselves distinct.
func DistortionFrequency(entries []*domain.JournalEntry) FrequencyMatrix {
	var labels []string
	labelSeen := make(map[string]bool)
	counts := make(map[string]map[string]int)

	for _, entry := range entries {
		if entry == nil {
			continue
		}

		date := entry.CreatedAt.Format(dateLayout)
		if counts[date] == nil {
			counts[date] = make(map[string]int)
		}

		for _, label := range entry.DetectedDistortions {
			if !labelSeen[label] {
				labelSeen[label] = true
				labels = append(labels, label)
			}
			counts[date][label]++
		}
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]DistortionRow, 0, len(dates))
	for _, date := range dates {
		row := DistortionRow{
			Date:   date,
			Counts: make(map[string]int, len(labels)),
		}
		for _, label := range labels {
			row.Counts[label] = counts[date][label]
		}
		rows = append(rows, row)
	}

	return FrequencyMatrix{Labels: labels, Rows: rows}
}

// MoodSeries projects entries to {date, mood} points, preserving the input
// order. Entries without a mood are skipped; they still participate in every
// other view.
func MoodSeries(entries []*domain.JournalEntry) []MoodPoint {
	points := make([]MoodPoint, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Mood == nil {
			continue
		}
		points = append(points, MoodPoint{
			Date: entry.CreatedAt.Format(dateLayout),
			Mood: *entry.Mood,
		})
	}
	return points
}

// FilterEntries returns the entries matching a keyword query. A query matches
// when it is a case-insensitive substring of the entry text or of any
// attached distortion label. The empty query matches everything. Each call
// evaluates the full input, so shrinking a query restores previously
// excluded entries.
func FilterEntries(entries []*domain.JournalEntry, query string) []*domain.JournalEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]*domain.JournalEntry(nil), entries...)
	}

	matched := make([]*domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if entryMatches(entry, query) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func entryMatches(entry *domain.JournalEntry, query string) bool {
	if strings.Contains(strings.ToLower(entry.Text), query) {
		return true
	}
	for _, label := range entry.DetectedDistortions {
		if strings.Contains(strings.ToLower(label), query) {
			return true
		}
	}
	return false
}
