package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"gor/interpreter-go/pkg/config"
)

// commonFlags are registered on every subcommand.
type commonFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	common := &commonFlags{}
	fs.StringVar(&common.configPath, "config", "", "configuration file")
	fs.StringVar(&common.logLevel, "log-level", "warn", "log level")
	fs.BoolVar(&common.logJSON, "log-json", false, "emit JSON log lines")
	return fs, common
}

// session bundles what every command needs once flags are parsed.
type session struct {
	cfg    *config.Config
	logger *pterm.Logger
	render *renderer
}

func (c *commonFlags) open(start string, stderr io.Writer) (*session, error) {
	level, err := parseLogLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(c.configPath, start)
	if err != nil {
		return nil, err
	}
	logger := newLogger(stderr, level, c.logJSON)
	if cfg.Path != "" {
		logger.Debug("loaded configuration", logger.Args("path", cfg.Path))
	}
	return &session{
		cfg:    cfg,
		logger: logger,
		render: newRenderer(stderr, cfg.Diagnostics.Color),
	}, nil
}

// bindingFlags collects repeated -D name=value flags.
type bindingFlags []binding

type binding struct {
	name  string
	value string
}

func (b *bindingFlags) String() string {
	parts := make([]string, 0, len(*b))
	for _, item := range *b {
		parts = append(parts, item.name+"="+item.value)
	}
	return strings.Join(parts, ",")
}

func (b *bindingFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	*b = append(*b, binding{name: name, value: strings.TrimSpace(value)})
	return nil
}
