/*
Command thot converts documents written in lightweight markup into HTML,
LaTeX, DocBook or Markdown.

Usage:

	thot [opts] [files]

Input files are read in order into a single document; without files, thot
reads standard input. Definitions given with -D name=value become document
variables, as if the input started with @name=value lines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"

	"github.com/scott-cotton/cli"

	_ "github.com/npillmayer/thot/backend/docbook"
	_ "github.com/npillmayer/thot/backend/html"
	_ "github.com/npillmayer/thot/backend/latex"
	_ "github.com/npillmayer/thot/backend/markdown"
	_ "github.com/npillmayer/thot/input/dokuwiki"
	_ "github.com/npillmayer/thot/input/glyphs"
	_ "github.com/npillmayer/thot/input/lexicon"
	_ "github.com/npillmayer/thot/input/markdown"
	_ "github.com/npillmayer/thot/input/textile"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

// MainCommand creates the thot command.
func MainCommand() *cli.Command {
	cfg := NewConfig()
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Aliases:     []string{"output"},
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "D",
			Description: "define a document variable",
			Type:        cli.NamedFuncOpt(cfg.defOpt, "(name=value)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"include"},
			Description: "add a folder to search for included files",
			Type:        cli.NamedFuncOpt(cfg.includeOpt, "(folder)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "thot").
		WithSynopsis("thot [opts] [files]").
		WithDescription("thot converts lightweight markup to HTML, LaTeX, DocBook or Markdown.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return thotMain(cfg, cc, args)
		})
}
