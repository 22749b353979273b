package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/exttool"
	"github.com/npillmayer/thot/core/locate/resources"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/engine/doc/docdbg"
	"github.com/scott-cotton/cli"
)

// Version is reported in generated documents.
const Version = "0.3.0"

const (
	defaultType   = "html"
	defaultSyntax = "dokuwiki"
)

func thotMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	return cfg.convert(cc.Out, os.Stderr, cc.In, args)
}

// convert assembles the input files, or in if there are none, into a
// document and renders it to out. Diagnostics go to errw.
func (cfg *MainConfig) convert(out, errw io.Writer, in io.Reader, files []string) error {
	if cfg.ConfigFile != "" {
		fc, err := ReadFileConfig(cfg.ConfigFile)
		if err != nil {
			return err
		}
		cfg.merge(fc)
	}
	if cfg.Type == "" {
		cfg.Type = defaultType
	}
	if cfg.Syntax == "" {
		cfg.Syntax = defaultSyntax
	}
	gen, err := backend.Lookup(cfg.Type)
	if err != nil {
		return fmt.Errorf("%w: %v (known types: %v)", cli.ErrUsage, err, backend.Names())
	}
	d, err := cfg.assemble(errw, in, files)
	if err != nil {
		return err
	}
	if cfg.Vars {
		pp.Fprintln(errw, d.Env().Snapshot())
	}
	switch cfg.Dump {
	case "":
	case "dot":
		return docdbg.ToGraphViz(d, out)
	case "json":
		return docdbg.ToJSON(d, out)
	default:
		return fmt.Errorf("%w: unknown dump format %q", cli.ErrUsage, cfg.Dump)
	}
	opts, err := cfg.backendOptions()
	if err != nil {
		return err
	}
	cw := &countingWriter{w: out}
	diags, err := gen(d, cw, opts)
	if diags != nil {
		report(errw, diags)
	}
	if err != nil {
		return err
	}
	if cfg.Out != "" {
		fmt.Fprintf(errw, "wrote %s (%s", cfg.Out, humanize.Bytes(uint64(cw.n)))
		if opts.Friends != nil && opts.Friends.Files() > 0 {
			fmt.Fprintf(errw, ", %d friend files", opts.Friends.Files())
		}
		fmt.Fprintln(errw, ")")
	}
	return nil
}

func (cfg *MainConfig) assemble(errw io.Writer, in io.Reader, files []string) (*doc.Document, error) {
	vars := map[string]string{parameters.THOT_VERSION: Version}
	if exe, err := os.Executable(); err == nil {
		vars[parameters.THOT_BASE] = filepath.Dir(exe)
	}
	for k, v := range cfg.Defs {
		vars[k] = v
	}
	m, err := assembly.New(assembly.Options{
		Dialect:      cfg.Syntax,
		Modules:      cfg.modules(),
		IncludeDepth: cfg.IncludeDepth,
		IncludePath:  cfg.IncludePath,
		Encoding:     cfg.Encoding,
		Vars:         vars,
	})
	if err != nil {
		return nil, err
	}
	defer func() { report(errw, m.Diagnostics()) }()
	if len(files) == 0 {
		if err := m.Parse(in, "<stdin>"); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		if err := m.ParseFile(f); err != nil {
			return nil, err
		}
	}
	return m.Finish()
}

func (cfg *MainConfig) backendOptions() (backend.Options, error) {
	opts := backend.Options{
		Output: cfg.Out,
		Width:  cfg.Width,
		Check:  cfg.Check,
	}
	if cfg.Out != "" {
		opts.Friends = resources.NewFriends(cfg.Out)
	}
	if cfg.Highlight != "" {
		opts.Highlight = exttool.Parse(cfg.Highlight)
	} else {
		opts.Highlight = exttool.Highlighter()
	}
	if cfg.Stylesheet != "" {
		css, err := os.ReadFile(cfg.Stylesheet)
		if err != nil {
			return opts, core.WrapError(err, core.EMISSING, "cannot read style sheet")
		}
		opts.Stylesheet = string(css)
	}
	return opts, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
