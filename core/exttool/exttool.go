package exttool

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/thot/core"
)

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 10 * time.Second

// Tool is an external command line. Arguments may contain placeholders
// `{lang}` and `{format}`, which are replaced on every run.
type Tool struct {
	Name    string
	Args    []string
	Timeout time.Duration
}

// Parse creates a tool from a command line as found in configuration, e.g.
// "pygmentize -l {lang} -f {format}". An empty command line yields nil.
func Parse(cmdline string) *Tool {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil
	}
	return &Tool{Name: fields[0], Args: fields[1:], Timeout: DefaultTimeout}
}

// Highlighter returns the tool configured as `thot.highlight-command`,
// or nil if none is configured.
func Highlighter() *Tool {
	return Parse(gconf.GetString("thot.highlight-command"))
}

// Run feeds input to the tool's stdin and returns its stdout. Any failure,
// including a non-zero exit status, is returned as an EEXTERNAL error.
func (t *Tool) Run(ctx context.Context, input string, vars map[string]string) (string, error) {
	if t == nil {
		return "", core.Error(core.EEXTERNAL, "no external tool configured")
	}
	timeout := t.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		for k, v := range vars {
			a = strings.ReplaceAll(a, "{"+k+"}", v)
		}
		args[i] = a
	}
	cmd := exec.CommandContext(ctx, t.Name, args...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	tracer().Debugf("running %s %v", t.Name, args)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", core.WrapError(err, core.EEXTERNAL, "%s failed: %s", t.Name, msg)
	}
	return stdout.String(), nil
}

// Highlight runs a highlighter on a block of code. On failure the error is
// returned together with an empty result; callers emit the code literally.
func Highlight(ctx context.Context, tool *Tool, code, lang, format string) (string, error) {
	if lang == "" {
		return "", core.Error(core.EEXTERNAL, "no language given for highlighting")
	}
	return tool.Run(ctx, code, map[string]string{"lang": lang, "format": format})
}
