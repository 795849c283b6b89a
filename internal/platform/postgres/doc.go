// Package postgres provides PostgreSQL implementations of the store
// interfaces. Journal entry analysis payloads (detected distortions,
// reframes, reflections) are persisted as JSONB; database errors are mapped
// to the store package's sentinel errors so callers never depend on
// driver-specific error types.
package postgres
