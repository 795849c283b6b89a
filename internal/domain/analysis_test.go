package domain

import (
	"reflect"
	"testing"
)

func TestSummarizePredictionsFiltersByConfidence(t *testing.T) {
	t.Parallel()

	predictions := []SentencePrediction{
		{Sentence: "A", Distortion: "X", Confidence: 0.9},
		{Sentence: "B", Distortion: "Y", Confidence: 0.2},
	}

	summary, triggers := SummarizePredictions(predictions)

	if !reflect.DeepEqual(summary, []string{"X"}) {
		t.Errorf("Expected summary [X], got %v", summary)
	}

	if !reflect.DeepEqual(triggers, map[string][]string{"X": {"A"}}) {
		t.Errorf("Expected triggers {X:[A]}, got %v", triggers)
	}
}

func TestSummarizePredictionsPreservesFirstOccurrenceOrder(t *testing.T) {
	t.Parallel()

	predictions := []SentencePrediction{
		{Sentence: "s1", Distortion: "Catastrophizing", Confidence: 0.8},
		{Sentence: "s2", Distortion: "Labeling", Confidence: 0.5},
		{Sentence: "s3", Distortion: "Catastrophizing", Confidence: 0.7},
		{Sentence: "s4", Distortion: "Mind Reading", Confidence: 0.41},
	}

	summary, triggers := SummarizePredictions(predictions)

	expected := []string{"Catastrophizing", "Labeling", "Mind Reading"}
	if !reflect.DeepEqual(summary, expected) {
		t.Errorf("Expected summary %v, got %v", expected, summary)
	}

	if !reflect.DeepEqual(triggers["Catastrophizing"], []string{"s1", "s3"}) {
		t.Errorf("Expected ordered trigger sentences, got %v", triggers["Catastrophizing"])
	}
}

func TestSummarizePredictionsBoundary(t *testing.T) {
	t.Parallel()

	// Exactly at the threshold survives; just below does not.
	predictions := []SentencePrediction{
		{Sentence: "at", Distortion: "X", Confidence: ConfidenceThreshold},
		{Sentence: "below", Distortion: "Y", Confidence: ConfidenceThreshold - 0.0001},
	}

	summary, _ := SummarizePredictions(predictions)

	if !reflect.DeepEqual(summary, []string{"X"}) {
		t.Errorf("Expected only X to survive, got %v", summary)
	}
}

func TestSummarizePredictionsEmpty(t *testing.T) {
	t.Parallel()

	summary, triggers := SummarizePredictions(nil)
	if len(summary) != 0 {
		t.Errorf("Expected empty summary, got %v", summary)
	}
	if len(triggers) != 0 {
		t.Errorf("Expected empty triggers, got %v", triggers)
	}
}
