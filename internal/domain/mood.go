package domain

// Mood domain bounds. Moods are integers on a five-point scale.
const (
	MoodMin = 1
	MoodMax = 5

	// MoodDefault is the presentation value shown before the user adjusts
	// the slider.
	MoodDefault = 3
)

// MoodLabels maps each mood value to its fixed display label.
var MoodLabels = map[int]string{
	1: "Very Sad",
	2: "Sad",
	3: "Neutral",
	4: "Happy",
	5: "Very Happy",
}

// ValidMood reports whether the given value is a valid mood.
func ValidMood(mood int) bool {
	return mood >= MoodMin && mood <= MoodMax
}
