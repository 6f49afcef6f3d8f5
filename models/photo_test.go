package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAspectRatio(t *testing.T) {
	assert.Equal(t, "16:9", AspectRatio(1920, 1080))
	assert.Equal(t, "16:9", AspectRatio(3840, 2160))
	assert.Equal(t, "3:2", AspectRatio(6000, 4000))
	assert.Equal(t, "9:16", AspectRatio(1080, 1920))
	assert.Equal(t, "1:1", AspectRatio(500, 500))
}

func TestAspectRatioDegenerate(t *testing.T) {
	assert.Equal(t, "", AspectRatio(0, 1080))
	assert.Equal(t, "", AspectRatio(1920, 0))
	assert.Equal(t, "", AspectRatio(-1, -1))
}

func TestMediaURLStripsLibraryRoot(t *testing.T) {
	base, err := url.Parse("https://photos.example.net")
	require.NoError(t, err)

	got := MediaURL(base, "/mnt/storage/photos/trips/iceland/aurora.jpg")
	assert.Equal(t, "https://photos.example.net/media/trips/iceland/aurora.jpg", got)
}

func TestMediaURLEncodesUnsafeCharacters(t *testing.T) {
	base, err := url.Parse("https://photos.example.net")
	require.NoError(t, err)

	got := MediaURL(base, "/mnt/storage/photos/family/summer picnic.jpg")
	assert.Equal(t, "https://photos.example.net/media/family/summer%20picnic.jpg", got)
}

func TestMediaURLWithoutDivider(t *testing.T) {
	base, err := url.Parse("https://photos.example.net")
	require.NoError(t, err)

	// Paths outside the library root are exposed as-is under /media/.
	got := MediaURL(base, "/srv/pictures/cat.jpg")
	assert.Equal(t, "https://photos.example.net/media/srv/pictures/cat.jpg", got)
}
