package scanner

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))))
}

func TestScanDiscoversNewImages(t *testing.T) {
	root := t.TempDir()
	writeTestImage(t, filepath.Join(root, "trips", "a.png"), 4, 3)
	writeTestImage(t, filepath.Join(root, "b.png"), 2, 2)
	// Non-image files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not a photo"), 0o644))

	result, err := New(root).Scan("", map[string]string{})
	require.NoError(t, err)

	require.Len(t, result.NewFiles, 2)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Deleted)

	byName := map[string]FileInfo{}
	for _, f := range result.NewFiles {
		byName[f.FileName] = f
		assert.NotEmpty(t, f.FileHash)
	}
	a := byName["a.png"]
	assert.Equal(t, 4, a.Width)
	assert.Equal(t, 3, a.Height)
	assert.Equal(t, filepath.Join(root, "trips"), a.Folder)
}

func TestScanKnownUnchangedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.png")
	writeTestImage(t, path, 2, 2)

	hash, err := hashFile(path)
	require.NoError(t, err)

	result, err := New(root).Scan("", map[string]string{path: hash})
	require.NoError(t, err)
	assert.Empty(t, result.NewFiles)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Deleted)
}

func TestScanDetectsUpdatedAndDeleted(t *testing.T) {
	root := t.TempDir()
	changed := filepath.Join(root, "changed.png")
	writeTestImage(t, changed, 2, 2)

	known := map[string]string{
		changed:                         "stale-hash",
		filepath.Join(root, "gone.png"): "whatever",
	}

	result, err := New(root).Scan("", known)
	require.NoError(t, err)
	assert.Empty(t, result.NewFiles)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Deleted)
}

func TestScanRejectsFolderOutsideRoot(t *testing.T) {
	root := t.TempDir()
	writeTestImage(t, filepath.Join(root, "a.png"), 2, 2)

	for _, folder := range []string{"..", "../sibling", "trips/../../etc"} {
		_, err := New(root).Scan(folder, nil)
		assert.ErrorIs(t, err, ErrOutsideRoot, "folder %q", folder)
	}

	// "." and a harmless relative path still resolve inside the root.
	_, err := New(root).Scan(".", map[string]string{})
	assert.NoError(t, err)
}

func TestScanSubfolderOnly(t *testing.T) {
	root := t.TempDir()
	writeTestImage(t, filepath.Join(root, "trips", "a.png"), 2, 2)
	writeTestImage(t, filepath.Join(root, "other", "b.png"), 2, 2)

	// A catalog entry outside the scanned subtree must not count as deleted.
	known := map[string]string{filepath.Join(root, "other", "b.png"): "h"}

	result, err := New(root).Scan("trips", known)
	require.NoError(t, err)
	require.Len(t, result.NewFiles, 1)
	assert.Equal(t, "a.png", result.NewFiles[0].FileName)
	assert.Equal(t, 0, result.Deleted)
}
