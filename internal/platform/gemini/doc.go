// Package gemini implements the reframe generator on top of Google's Gemini
// API. It builds a CBT-therapist prompt from the entry text and the detected
// distortions, enforces a JSON-only response contract, and retries transient
// API failures with exponential backoff.
package gemini
