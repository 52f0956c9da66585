package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eagd-org/donation-server/internal/domain"
)

func TestBuildListQueryDefaults(t *testing.T) {
	query, args, err := buildListQuery(ListDonationsParams{})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM donations")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "OFFSET 0")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildListQueryStatusFilter(t *testing.T) {
	query, args, err := buildListQuery(ListDonationsParams{
		Status: domain.StatusPending,
		Page:   3,
		Limit:  20,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE status = $1")
	assert.Equal(t, []any{domain.StatusPending}, args)
	assert.Contains(t, query, "LIMIT 20")
	assert.Contains(t, query, "OFFSET 40")
}

func TestBuildListQuerySortWhitelist(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{sortBy: "status", want: "ORDER BY status DESC"},
		{sortBy: "full_name", want: "ORDER BY full_name DESC"},
		// Anything off the whitelist falls back to created_at. This is the
		// injection guard: the sort column is never interpolated raw.
		{sortBy: "created_at; DROP TABLE donations", want: "ORDER BY created_at DESC"},
		{sortBy: "password_hash", want: "ORDER BY created_at DESC"},
		{sortBy: "", want: "ORDER BY created_at DESC"},
	}

	for _, tt := range tests {
		query, _, err := buildListQuery(ListDonationsParams{SortBy: tt.sortBy})
		require.NoError(t, err)
		assert.Contains(t, query, tt.want, "sortBy=%q", tt.sortBy)
	}
}

func TestBuildListQueryAscendingOrder(t *testing.T) {
	query, _, err := buildListQuery(ListDonationsParams{SortBy: "updated_at", SortOrder: SortAsc})
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY updated_at ASC")
}

func TestBuildListQueryClampsLimit(t *testing.T) {
	query, _, err := buildListQuery(ListDonationsParams{Page: -5, Limit: 5000})
	require.NoError(t, err)
	assert.Contains(t, query, "LIMIT 100")
	assert.Contains(t, query, "OFFSET 0")
}

func TestBuildCountQuery(t *testing.T) {
	query, args, err := buildCountQuery(ListDonationsParams{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT count(*) FROM donations", query)
	assert.Empty(t, args)

	query, args, err = buildCountQuery(ListDonationsParams{Status: domain.StatusCompleted})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE status = $1")
	assert.Equal(t, []any{domain.StatusCompleted}, args)
}

func TestBuildUpdateQueryPartial(t *testing.T) {
	status := domain.StatusProcessing
	notes := "picked up by courier"
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildUpdateQuery("don-1", UpdateDonationParams{
		Status:     &status,
		AdminNotes: &notes,
	}, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "UPDATE donations SET"))
	assert.Contains(t, query, "status = ")
	assert.Contains(t, query, "admin_notes = ")
	assert.Contains(t, query, "updated_at = ")
	assert.NotContains(t, query, "full_name")
	assert.Contains(t, query, "WHERE id = ")
	assert.Contains(t, query, "RETURNING "+strings.Join(donationColumns, ", "))

	// status, notes, updated_at in the SET list plus the id predicate.
	assert.Len(t, args, 4)
	assert.Contains(t, args, status)
	assert.Contains(t, args, notes)
	assert.Contains(t, args, now)
	assert.Contains(t, args, "don-1")
}

func TestBuildUpdateQueryAlwaysTouchesUpdatedAt(t *testing.T) {
	now := time.Now().UTC()

	query, args, err := buildUpdateQuery("don-1", UpdateDonationParams{}, now)
	require.NoError(t, err)

	assert.Contains(t, query, "updated_at = ")
	assert.Len(t, args, 2)
}

func TestUpdateDonationParamsEmpty(t *testing.T) {
	assert.True(t, UpdateDonationParams{}.Empty())

	notes := "x"
	assert.False(t, UpdateDonationParams{AdminNotes: &notes}.Empty())
}
