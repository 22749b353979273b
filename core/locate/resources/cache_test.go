package resources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDirPath(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		"thot.app-key": "thot-test",
	})
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cachedir, err := CacheDirPath("images")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cachedir, filepath.Join("thot-test", "images")))
	fi, err := os.Stat(cachedir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://x.org/a.png"))
	assert.False(t, IsRemote("img/a.png"))
}
