package s3publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildManifest(t *testing.T) {
	dir := writeResults(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte("{}"), 0o644))

	m, err := BuildManifest(dir, "run-2")
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, m.Version)
	assert.Len(t, m.Files, 3)
	assert.NotContains(t, m.Files, ManifestName)
	assert.NotContains(t, m.Files, "Result_of_strassen/partial.txt.tmp")
	assert.Len(t, m.Files["Result_of_merge/random_10.txt"].Checksum, 64)

	data, err := m.Marshal()
	require.NoError(t, err)
	back, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, m.Files, back.Files)
}

func TestVerifyManifestDetectsChanges(t *testing.T) {
	dir := writeResults(t)
	m, err := BuildManifest(dir, "")
	require.NoError(t, err)
	require.NoError(t, VerifyManifest(dir, m))

	path := filepath.Join(dir, "Result_of_merge", "random_10.txt")
	require.NoError(t, os.WriteFile(path, []byte("3 2 1\n"), 0o644))
	require.ErrorIs(t, VerifyManifest(dir, m), ErrManifestMismatch)

	require.NoError(t, os.WriteFile(path, []byte("1 2\n"), 0o644))
	require.ErrorIs(t, VerifyManifest(dir, m), ErrManifestMismatch)

	require.NoError(t, os.Remove(path))
	require.ErrorIs(t, VerifyManifest(dir, m), os.ErrNotExist)
}

func TestParseManifestRejectsVersion(t *testing.T) {
	_, err := ParseManifest([]byte(`{"version": 99, "files": {}}`))
	require.Error(t, err)

	_, err = ParseManifest([]byte(`not json`))
	require.Error(t, err)
}
