package clientcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	fb, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "fallback.json"))
	require.NoError(t, err)

	st, err := fb.Load()
	require.NoError(t, err)
	assert.Empty(t, st.Animals)
	assert.Empty(t, st.Pending)
}

func TestFileStore_SaveCreatesDirAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fallback.json")
	fb, err := NewFileStore(path)
	require.NoError(t, err)

	in := FallbackState{
		Snapshot: Snapshot{Animals: []Animal{{ID: "AB-0001", Name: "Buck", Status: "Breeder"}}},
		Pending: []Operation{{
			Kind: OpUpdate, Entity: EntityAnimals, ID: "AB-0001",
			Fields: map[string]any{"status": "Retired"}, QueuedAt: fixedNow,
		}},
	}
	require.NoError(t, fb.Save(in))

	out, err := fb.Load()
	require.NoError(t, err)
	require.Len(t, out.Animals, 1)
	assert.Equal(t, "Buck", out.Animals[0].Name)
	require.Len(t, out.Pending, 1)
	assert.Equal(t, "Retired", out.Pending[0].Fields["status"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestNew_CorruptFallbackFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fb, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = New(nil, Options{Fallback: fb})
	assert.Error(t, err)
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
