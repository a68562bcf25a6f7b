package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/lower"
	"gor/interpreter-go/pkg/runtime"
)

// FileName is the configuration file looked up by Find.
const FileName = "gor.yml"

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("config: no " + FileName + " found")

// ColorMode controls diagnostic colouring.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the parsed contents of gor.yml.
type Config struct {
	Path        string
	Lowering    Lowering
	Bindings    map[string]runtime.Value
	Diagnostics Diagnostics
	Workers     int
}

// Lowering holds options forwarded to the lowering stage.
type Lowering struct {
	DuplicateFunctions lower.DuplicatePolicy
}

// Diagnostics holds rendering preferences.
type Diagnostics struct {
	Color ColorMode
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString("validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	Lowering struct {
		DuplicateFunctions string `yaml:"duplicate_functions"`
	} `yaml:"lowering"`
	Bindings    map[string]any `yaml:"bindings"`
	Diagnostics struct {
		Color string `yaml:"color"`
	} `yaml:"diagnostics"`
	Workers *int `yaml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Lowering:    Lowering{DuplicateFunctions: lower.DuplicateLastWins},
		Bindings:    make(map[string]runtime.Value),
		Diagnostics: Diagnostics{Color: ColorAuto},
		Workers:     0,
	}
}

// Load parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		var validation *ValidationError
		if errors.As(err, &validation) {
			validation.Path = absPath
			return nil, validation
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Decode reads a configuration document from r. An empty document yields
// the defaults.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return raw.toConfig()
}

func (raw *configFile) toConfig() (*Config, error) {
	cfg := Default()
	var errs ValidationError

	policy, err := lower.ParseDuplicatePolicy(raw.Lowering.DuplicateFunctions)
	if err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("lowering.duplicate_functions: unknown policy %q", raw.Lowering.DuplicateFunctions))
	} else {
		cfg.Lowering.DuplicateFunctions = policy
	}

	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(raw.Diagnostics.Color))); mode {
	case "":
	case ColorAuto, ColorAlways, ColorNever:
		cfg.Diagnostics.Color = mode
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("diagnostics.color must be auto, always or never, got %q", raw.Diagnostics.Color))
	}

	if raw.Workers != nil {
		if *raw.Workers < 0 {
			errs.Issues = append(errs.Issues, "workers must not be negative")
		} else {
			cfg.Workers = *raw.Workers
		}
	}

	names := make([]string, 0, len(raw.Bindings))
	for name := range raw.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			errs.Issues = append(errs.Issues, "bindings must not contain an empty name")
			continue
		}
		value, err := runtime.FromAny(raw.Bindings[name])
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("bindings.%s: %v", name, err))
			continue
		}
		cfg.Bindings[name] = value
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// Find walks from start towards the filesystem root looking for FileName.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s upwards", ErrNotFound, origin)
		}
		dir = parent
	}
}

// Resolve loads the explicit path when given, otherwise the nearest file
// above start, falling back to Default when there is none.
func Resolve(explicit, start string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := Find(start)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

// LowerOptions converts the lowering section into lowering options.
func (c *Config) LowerOptions() lower.Options {
	if c == nil {
		return lower.Options{}
	}
	return lower.Options{DuplicateFunctions: c.Lowering.DuplicateFunctions}
}

// Environment builds a fresh evaluation context seeded with the bindings.
func (c *Config) Environment() *runtime.Environment {
	env := runtime.NewEnvironment(nil)
	if c == nil {
		return env
	}
	for name, value := range c.Bindings {
		env.Define(ast.Intern(name), value)
	}
	return env
}
