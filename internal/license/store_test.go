package license

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
)

func TestStoreAddHasDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licenses.json")
	s := NewStore(path)

	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, s.Has("KEY-1"))

	require.NoError(t, s.Add("KEY-1", "beta tester", now))
	assert.True(t, s.Has("KEY-1"))
	assert.True(t, s.Has("  KEY-1  "), "lookup should trim whitespace")

	entries := s.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "beta tester", entries["KEY-1"].Note)
	assert.Equal(t, now, entries["KEY-1"].CreatedAt)

	require.NoError(t, s.Delete("KEY-1"))
	assert.False(t, s.Has("KEY-1"))
}

func TestStoreDeleteMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "licenses.json"))

	err := s.Delete("no-such-key")
	assert.True(t, errors.Is(err, coreerrors.ErrLicenseNotFound))
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licenses.json")
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, NewStore(path).Add("KEY-2", "", now))
	assert.True(t, NewStore(path).Has("KEY-2"))
}

func TestStoreCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licenses.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path)
	assert.False(t, s.Has("anything"))
	assert.Empty(t, s.List())
}
