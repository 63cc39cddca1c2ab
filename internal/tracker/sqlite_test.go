package tracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospector-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "tracking.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteEmptyLoad(t *testing.T) {
	s := newTestSQLite(t)

	ts, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.TrackingStoreVersion, ts.Version)
	assert.Empty(t, ts.Contacts)
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleTrackingStore()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleTrackingStore(), got)
}

// Save replaces the whole document: records dropped from the in-memory
// store disappear from the database too.
func TestSQLiteSaveReplacesDocument(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleTrackingStore()))
	require.NoError(t, s.Save(ctx, model.NewTrackingStore()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Contacts)
}

func TestSQLiteTrackerIntegration(t *testing.T) {
	s := newTestSQLite(t)
	dir := stubDirectory{
		"c-1": {ID: "c-1", ContactState: model.StateNotContacted},
	}
	trk := New(s, dir)
	ctx := context.Background()

	_, err := trk.UpdateState(ctx, "c-1", model.StateSent, "", nil, time.Time{})
	require.NoError(t, err)
	_, err = trk.RecordInteraction(ctx, "c-1", model.Interaction{Type: "call"})
	require.NoError(t, err)

	history, err := trk.GetHistory(ctx, "c-1", true, true)
	require.NoError(t, err)
	assert.True(t, history.Found)
	assert.Equal(t, model.StateSent, history.CurrentState)
	assert.Equal(t, 1, history.TotalInteractions)
}
