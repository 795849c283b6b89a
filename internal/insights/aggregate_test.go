package insights

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/uditisharmaaa/journa/internal/domain"
)

func moodPtr(m int) *int { return &m }

func entryOn(t *testing.T, day time.Time, mood *int, distortions ...string) *domain.JournalEntry {
	t.Helper()
	return &domain.JournalEntry{
		ID:                  uuid.New(),
		OwnerID:             uuid.New(),
		Text:                "entry text",
		Mood:                mood,
		DetectedDistortions: distortions,
		CreatedAt:           day,
	}
}

func TestDistortionFrequencyDenseMatrix(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)
	jan2 := time.Date(2026, 1, 2, 21, 0, 0, 0, time.UTC)

	matrix := DistortionFrequency([]*domain.JournalEntry{
		entryOn(t, jan1, nil, "Catastrophizing"),
		entryOn(t, jan1, nil, "Overgeneralization"),
		entryOn(t, jan2, nil),
	})

	if len(matrix.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(matrix.Rows))
	}
	if matrix.Rows[0].Date != "2026-01-01" || matrix.Rows[1].Date != "2026-01-02" {
		t.Errorf("rows not in ascending date order: %q, %q", matrix.Rows[0].Date, matrix.Rows[1].Date)
	}

	// Every row carries the full label universe, zero-filled.
	for _, row := range matrix.Rows {
		if len(row.Counts) != 2 {
			t.Errorf("row %s: expected 2 labels, got %d", row.Date, len(row.Counts))
		}
	}
	if got := matrix.Rows[0].Counts["Catastrophizing"]; got != 1 {
		t.Errorf("jan1 Catastrophizing = %d, want 1", got)
	}
	if got := matrix.Rows[0].Counts["Overgeneralization"]; got != 1 {
		t.Errorf("jan1 Overgeneralization = %d, want 1", got)
	}
	if got := matrix.Rows[1].Counts["Catastrophizing"]; got != 0 {
		t.Errorf("jan2 Catastrophizing = %d, want explicit 0", got)
	}
	if got := matrix.Rows[1].Counts["Overgeneralization"]; got != 0 {
		t.Errorf("jan2 Overgeneralization = %d, want explicit 0", got)
	}
}

func TestDistortionFrequencyLabelOrderAndColumnSums(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	entries := []*domain.JournalEntry{
		entryOn(t, day1, nil, "Mind Reading", "Labeling"),
		entryOn(t, day2, nil, "Labeling"),
		entryOn(t, day2, nil, "Catastrophizing", "Labeling"),
	}
	matrix := DistortionFrequency(entries)

	wantLabels := []string{"Mind Reading", "Labeling", "Catastrophizing"}
	if len(matrix.Labels) != len(wantLabels) {
		t.Fatalf("labels = %v, want %v", matrix.Labels, wantLabels)
	}
	for i, label := range wantLabels {
		if matrix.Labels[i] != label {
			t.Errorf("labels[%d] = %q, want %q (first-seen order)", i, matrix.Labels[i], label)
		}
	}

	// A label's column sum equals the number of entries carrying it.
	sums := make(map[string]int)
	for _, row := range matrix.Rows {
		for label, count := range row.Counts {
			sums[label] += count
		}
	}
	if sums["Labeling"] != 3 || sums["Mind Reading"] != 1 || sums["Catastrophizing"] != 1 {
		t.Errorf("column sums = %v", sums)
	}
}

func TestDistortionFrequencyEmptyInput(t *testing.T) {
	t.Parallel()

	matrix := DistortionFrequency(nil)
	if len(matrix.Rows) != 0 || len(matrix.Labels) != 0 {
		t.Errorf("expected empty matrix, got %+v", matrix)
	}
}

func TestMoodSeries(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	points := MoodSeries([]*domain.JournalEntry{
		entryOn(t, day1, moodPtr(2)),
		entryOn(t, day2, nil), // no mood recorded
		entryOn(t, day3, moodPtr(4)),
	})

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Date != "2026-03-01" || points[0].Mood != 2 {
		t.Errorf("points[0] = %+v", points[0])
	}
	if points[1].Date != "2026-03-03" || points[1].Mood != 4 {
		t.Errorf("points[1] = %+v", points[1])
	}
}

func TestFilterEntries(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	withLabel := entryOn(t, day, nil, "Catastrophizing")
	withText := entryOn(t, day, nil)
	withText.Text = "I felt anxious at work today"
	neither := entryOn(t, day, nil, "Labeling")
	neither.Text = "a quiet morning"
	all := []*domain.JournalEntry{withLabel, withText, neither}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "empty query matches everything", query: "", want: 3},
		{name: "whitespace query matches everything", query: "   ", want: 3},
		{name: "label substring match is case-insensitive", query: "catastro", want: 1},
		{name: "text substring match", query: "ANXIOUS", want: 1},
		{name: "no match", query: "zzz", want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterEntries(all, tc.query)
			if len(got) != tc.want {
				t.Errorf("FilterEntries(%q) returned %d entries, want %d", tc.query, len(got), tc.want)
			}
		})
	}

	// Idempotent under repeated identical queries.
	first := FilterEntries(all, "catastro")
	second := FilterEntries(all, "catastro")
	if len(first) != len(second) {
		t.Errorf("repeated query changed result count: %d vs %d", len(first), len(second))
	}

	// Clearing the query restores the full set.
	if got := FilterEntries(all, ""); len(got) != len(all) {
		t.Errorf("cleared query returned %d entries, want %d", len(got), len(all))
	}
}

func TestSanitizeEntryDegradesMalformedFields(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	entry := entryOn(t, day, moodPtr(9), "Labeling")
	entry.DetectedDistortions = nil
	entry.AIReframes = map[string]domain.Reframe{
		"Labeling": {Reframe: "r", Question: "q"},
	}
	entry.UserReflections = map[string]string{"Labeling": "note"}

	clean := sanitizeEntry(entry)

	if clean.DetectedDistortions == nil || len(clean.DetectedDistortions) != 0 {
		t.Errorf("distortions = %v, want empty slice", clean.DetectedDistortions)
	}
	if len(clean.AIReframes) != 0 {
		t.Errorf("orphaned reframes kept: %v", clean.AIReframes)
	}
	if len(clean.UserReflections) != 0 {
		t.Errorf("orphaned reflections kept: %v", clean.UserReflections)
	}
	if clean.Mood != nil {
		t.Errorf("out-of-range mood kept: %d", *clean.Mood)
	}

	// The original record is untouched.
	if entry.Mood == nil || *entry.Mood != 9 {
		t.Error("sanitize mutated its input")
	}
}

func TestSanitizeEntryKeepsBackedKeys(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	entry := entryOn(t, day, moodPtr(3), "Labeling", "Mind Reading")
	entry.AIReframes = map[string]domain.Reframe{
		"Labeling": {Reframe: "r", Question: "q"},
		"Stale":    {Reframe: "x", Question: "y"},
	}

	clean := sanitizeEntry(entry)

	if _, ok := clean.AIReframes["Labeling"]; !ok {
		t.Error("backed reframe dropped")
	}
	if _, ok := clean.AIReframes["Stale"]; ok {
		t.Error("unbacked reframe kept")
	}
	if clean.Mood == nil || *clean.Mood != 3 {
		t.Error("valid mood dropped")
	}
}
