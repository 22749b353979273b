package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"
)

// MainConfig holds the command line options. Options not given on the
// command line are taken from the configuration file, if any.
type MainConfig struct {
	Type       string `cli:"name=t aliases=type desc='output type: html, latex, docbook or markdown'"`
	Syntax     string `cli:"name=s aliases=syntax desc='input syntax dialect'"`
	Modules    string `cli:"name=m aliases=modules desc='comma separated list of extension modules'"`
	ConfigFile string `cli:"name=c aliases=config desc='YAML configuration file'"`
	Encoding   string `cli:"name=e aliases=encoding desc='input encoding'"`
	Stylesheet string `cli:"name=css desc='style sheet to embed into HTML output'"`
	Highlight  string `cli:"name=highlight desc='syntax highlighting command'"`
	Dump       string `cli:"name=dump desc='print the document tree as dot or json'"`
	Width      int    `cli:"name=w aliases=width desc='line width of text output'"`
	Vars       bool   `cli:"name=vars desc='print the document variables'"`
	Check      bool   `cli:"name=check desc='check that images exist'"`

	Out          string
	CloseOut     func() error
	Defs         map[string]string
	IncludePath  []string
	IncludeDepth int

	Main *cli.Command
}

// NewConfig creates a configuration with defaults.
func NewConfig() *MainConfig {
	return &MainConfig{Defs: make(map[string]string)}
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		cfg.Out = ""
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) defOpt(cc *cli.Context, a string) (any, error) {
	name, value, err := definition(a)
	if err != nil {
		return nil, err
	}
	cfg.Defs[name] = value
	return nil, nil
}

func (cfg *MainConfig) includeOpt(cc *cli.Context, a string) (any, error) {
	cfg.IncludePath = append(cfg.IncludePath, a)
	return nil, nil
}

// definition splits "name=value". A name without value defines the
// variable as "yes".
func definition(a string) (string, string, error) {
	name, value, found := strings.Cut(a, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: invalid definition %q", cli.ErrUsage, a)
	}
	if !found {
		value = "yes"
	}
	return name, value, nil
}

// FileConfig is the content of a configuration file.
type FileConfig struct {
	Type         string            `yaml:"type"`
	Syntax       string            `yaml:"syntax"`
	Modules      []string          `yaml:"modules"`
	Encoding     string            `yaml:"encoding"`
	IncludePath  []string          `yaml:"include-path"`
	IncludeDepth int               `yaml:"include-depth"`
	Stylesheet   string            `yaml:"stylesheet"`
	Highlight    string            `yaml:"highlight"`
	Width        int               `yaml:"width"`
	Vars         map[string]string `yaml:"vars"`
}

// ReadFileConfig reads a YAML configuration file.
func ReadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("configuration %s: %w", path, err)
	}
	return fc, nil
}

// merge fills options not set on the command line from a configuration
// file. Variables defined on the command line take precedence.
func (cfg *MainConfig) merge(fc *FileConfig) {
	pick := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	pick(&cfg.Type, fc.Type)
	pick(&cfg.Syntax, fc.Syntax)
	pick(&cfg.Modules, strings.Join(fc.Modules, ","))
	pick(&cfg.Encoding, fc.Encoding)
	pick(&cfg.Stylesheet, fc.Stylesheet)
	pick(&cfg.Highlight, fc.Highlight)
	if cfg.Width == 0 {
		cfg.Width = fc.Width
	}
	cfg.IncludePath = append(cfg.IncludePath, fc.IncludePath...)
	if cfg.IncludeDepth == 0 {
		cfg.IncludeDepth = fc.IncludeDepth
	}
	for k, v := range fc.Vars {
		if _, ok := cfg.Defs[k]; !ok {
			cfg.Defs[k] = v
		}
	}
}

func (cfg *MainConfig) modules() []string {
	var mods []string
	for _, m := range strings.Split(cfg.Modules, ",") {
		if m = strings.TrimSpace(m); m != "" {
			mods = append(mods, m)
		}
	}
	return mods
}
