package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospector-cli/internal/model"
)

func snapshotRecords() []model.ContactRecord {
	return []model.ContactRecord{
		{ID: "c-1", Email: "ana@acme.io"},
		{ID: "c-2", Email: "bob@beta.co"},
		{ID: "c-3"},             // no email
		{Email: "orphan@x.com"}, // no id
	}
}

func TestSnapshotLookups(t *testing.T) {
	s := NewSnapshot(snapshotRecords())

	assert.Equal(t, 4, s.Len())

	r, ok := s.ByID("c-2")
	require.True(t, ok)
	assert.Equal(t, "bob@beta.co", r.Email)

	r, ok = s.ByEmail("ana@acme.io")
	require.True(t, ok)
	assert.Equal(t, "c-1", r.ID)

	_, ok = s.ByID("nope")
	assert.False(t, ok)
	_, ok = s.ByEmail("")
	assert.False(t, ok, "empty keys never index")
}

func TestSnapshotLookupPrefersID(t *testing.T) {
	s := NewSnapshot(snapshotRecords())

	r, ok := s.Lookup("c-1")
	require.True(t, ok)
	assert.Equal(t, "c-1", r.ID)

	r, ok = s.Lookup("orphan@x.com")
	require.True(t, ok)
	assert.Empty(t, r.ID)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSnapshotDuplicateEmailKeepsFirst(t *testing.T) {
	s := NewSnapshot([]model.ContactRecord{
		{ID: "c-1", Email: "shared@x.com"},
		{ID: "c-2", Email: "shared@x.com"},
	})

	r, ok := s.ByEmail("shared@x.com")
	require.True(t, ok)
	assert.Equal(t, "c-1", r.ID)
}

func TestSnapshotByIDs(t *testing.T) {
	s := NewSnapshot(snapshotRecords())

	out := s.ByIDs([]string{"c-3", "missing", "c-1"})
	require.Len(t, out, 2)
	assert.Equal(t, "c-3", out[0].ID, "given order preserved")
	assert.Equal(t, "c-1", out[1].ID)
}
