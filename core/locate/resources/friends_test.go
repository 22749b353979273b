package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendsAreIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.resources")
	defer teardown()
	//
	fr := NewFriends("out/doc.html")
	t1 := fr.Add("img/a.png")
	assert.Equal(t, filepath.Join("out/doc-imports", "img/a.png"), t1)
	assert.Equal(t, t1, fr.Add("./img/a.png"))
	assert.Equal(t, 1, fr.Files())
	t2 := fr.Add("/elsewhere/img/a.png")
	assert.Equal(t, filepath.Join("out/doc-imports", "a.png"), t2)
	t3 := fr.Add("/other/a.png")
	assert.Equal(t, filepath.Join("out/doc-imports", "a-0.png"), t3)
	assert.Equal(t, "doc-imports/img/a.png", fr.Relative(t1))
	got, ok := fr.Get("img/a.png")
	assert.True(t, ok)
	assert.Equal(t, t1, got)
}

func TestLoadFriend(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.resources")
	defer teardown()
	//
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0644))
	fr := NewFriends(filepath.Join(dir, "doc.html"))
	rel, err := fr.Load(src)
	require.NoError(t, err)
	assert.Equal(t, "doc-imports/logo.png", rel)
	data, err := os.ReadFile(filepath.Join(dir, "doc-imports", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	again, err := fr.Load(src)
	require.NoError(t, err)
	assert.Equal(t, rel, again)
	_, err = fr.Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestRelocate(t *testing.T) {
	assert.Equal(t, "docs/img.png", Relocate("img.png", "docs/doc.thot"))
	assert.Equal(t, "/abs/img.png", Relocate("/abs/img.png", "docs/doc.thot"))
	assert.Equal(t, "img.png", Relocate("img.png", ""))
}
