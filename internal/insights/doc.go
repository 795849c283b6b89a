// Package insights transforms a user's persisted journal entries into
// chart-ready structures: a dense date-by-distortion frequency matrix, a
// chronological mood series, and a keyword-filtered log view. The
// aggregation functions are pure; Service wraps them with owner-scoped
// reads and a short-lived cache.
package insights
