package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "invocations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Record{
		ID:           "rec-1",
		InputText:    "my invoice is wrong",
		ResponseText: "Let me check that for you.",
		Tokens:       42,
		ElapsedMs:    180,
		AgentName:    "support",
		Fingerprint:  "abc123",
		Tags:         map[string]string{"category": "billing"},
	}))

	rec, err := s.QueryExactMatch(ctx, "my invoice is wrong", "support", "abc123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, "Let me check that for you.", rec.ResponseText)
	assert.Equal(t, 42, rec.Tokens)
	assert.Equal(t, int64(180), rec.ElapsedMs)
	assert.Equal(t, map[string]string{"category": "billing"}, rec.Tags)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestSQLiteStoreAbsent(t *testing.T) {
	s := newTestSQLite(t)

	rec, err := s.QueryExactMatch(context.Background(), "never stored", "support", "abc123")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSQLiteStoreMostRecentWins(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	earlier := time.Now().Add(-time.Minute).UTC()
	require.NoError(t, s.Save(ctx, Record{ID: "rec-1", InputText: "hi", AgentName: "support", Fingerprint: "f", ResponseText: "first", CreatedAt: earlier}))
	require.NoError(t, s.Save(ctx, Record{ID: "rec-2", InputText: "hi", AgentName: "support", Fingerprint: "f", ResponseText: "second"}))

	rec, err := s.QueryExactMatch(ctx, "hi", "support", "f")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "rec-2", rec.ID)
}

func TestSQLiteStorePing(t *testing.T) {
	s := newTestSQLite(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestSQLiteStoreRunsInWALMode(t *testing.T) {
	s := newTestSQLite(t)

	var mode string
	require.NoError(t, s.db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, s.db.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}
