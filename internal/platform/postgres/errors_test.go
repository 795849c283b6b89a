package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/uditisharmaaa/journa/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "no rows becomes not found", in: sql.ErrNoRows, want: store.ErrNotFound},
		{
			name: "unique violation becomes duplicate",
			in:   &pgconn.PgError{Code: uniqueViolationCode},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation becomes invalid entity",
			in:   &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "journal_entries_user_id_fkey"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation becomes invalid entity",
			in:   &pgconn.PgError{Code: checkViolationCode, ConstraintName: "journal_entries_mood_check"},
			want: store.ErrInvalidEntity,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	// Unrecognized errors pass through unchanged.
	unknown := fmt.Errorf("connection reset")
	assert.Equal(t, unknown, MapError(unknown))

	// Wrapped driver errors are still detected.
	wrapped := fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolationCode})
	assert.ErrorIs(t, MapError(wrapped), store.ErrDuplicate)
	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))
}

func TestMapErrorPreservesOriginal(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: foreignKeyViolationCode}
	mapped := MapError(pgErr)

	var target *pgconn.PgError
	assert.True(t, errors.As(mapped, &target), "original driver error remains unwrappable")
}
