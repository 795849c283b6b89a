// Package generation provides the boundary interfaces for the external AI
// services the entry workflow depends on: the sentence-level cognitive
// distortion classifier and the reframe generator (Gemini). It abstracts the
// details of those APIs so the workflow never couples to a specific vendor.
package generation
