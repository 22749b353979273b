package exttool

import (
	"context"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.exttool")
	defer teardown()
	//
	assert.Nil(t, Parse("   "))
	tool := Parse("pygmentize -l {lang} -f {format}")
	require.NotNil(t, tool)
	assert.Equal(t, "pygmentize", tool.Name)
	assert.Equal(t, []string{"-l", "{lang}", "-f", "{format}"}, tool.Args)
}

func TestRunSubstitutesPlaceholders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.exttool")
	defer teardown()
	//
	tool := Parse("sh -c {script}")
	out, err := tool.Run(context.Background(), "ignored", map[string]string{"script": "echo hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestHighlightPipesInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.exttool")
	defer teardown()
	//
	out, err := Highlight(context.Background(), Parse("cat"), "x := 1", "go", "html")
	require.NoError(t, err)
	assert.Equal(t, "x := 1", out)
}

func TestFailuresAreExternalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.exttool")
	defer teardown()
	//
	_, err := Parse("thot-no-such-command-xyz").Run(context.Background(), "", nil)
	require.Error(t, err)
	assert.Equal(t, core.EEXTERNAL, core.Code(err))
	assert.False(t, core.IsFatal(err))
	_, err = Highlight(context.Background(), Parse("false"), "x", "go", "html")
	assert.Equal(t, core.EEXTERNAL, core.Code(err))
	_, err = Highlight(context.Background(), Parse("cat"), "x", "", "html")
	assert.Equal(t, core.EEXTERNAL, core.Code(err))
	var none *Tool
	_, err = none.Run(context.Background(), "", nil)
	assert.Equal(t, core.EEXTERNAL, core.Code(err))
}
