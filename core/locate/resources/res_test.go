package resources

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func TestResolveImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.resources")
	defer teardown()
	//
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "pic.png"), 40, 30)
	loader := ResolveImage("pic.png", filepath.Join(dir, "doc.thot"))
	info, err := loader.ImageInfo()
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 40, info.Width)
	assert.Equal(t, 30, info.Height)
	assert.Equal(t, filepath.Join(dir, "pic.png"), info.Path)
}

func TestResolveMissingImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.resources")
	defer teardown()
	//
	_, err := ResolveImage(filepath.Join(t.TempDir(), "nope.png"), "").ImageInfo()
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.False(t, core.IsFatal(err))
}

func TestResolveUndecodableImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.resources")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "text.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))
	_, err := ResolveImage(path, "").ImageInfo()
	assert.Equal(t, core.EMISSING, core.Code(err))
}
