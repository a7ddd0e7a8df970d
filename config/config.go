/*
Package config holds the configuration of an arith runtime.

Configuration is read from YAML:

    stack-policy: fixed      # fixed | growable
    stack-capacity: 0        # fixed stacks: 0 sizes stacks per program
    stack-limit: 4096        # growable stacks: 0 for no limit
    cache-size: 256          # compiled programs to keep, 0 disables caching
    strategy: checked        # eval | vm | checked
    trace-level: Info        # Debug | Info | Error

Missing keys keep their defaults, unknown keys are rejected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stack policies.
const (
	FixedStack    = "fixed"
	GrowableStack = "growable"
)

// Execution strategies.
const (
	StrategyEval    = "eval"
	StrategyVM      = "vm"
	StrategyChecked = "checked"
)

// Tokenizers for textual input.
const (
	TokenizerLexMachine = "lexmachine"
	TokenizerGo         = "go"
)

// Config is the configuration of a runtime.
type Config struct {
	StackPolicy   string `yaml:"stack-policy"`
	StackCapacity int    `yaml:"stack-capacity"`
	StackLimit    int    `yaml:"stack-limit"`
	CacheSize     int    `yaml:"cache-size"`
	Strategy      string `yaml:"strategy"`
	TraceLevel    string `yaml:"trace-level"`
	Tokenizer     string `yaml:"tokenizer"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		StackPolicy: FixedStack,
		StackLimit:  1 << 16,
		CacheSize:   256,
		Strategy:    StrategyVM,
		TraceLevel:  "Info",
		Tokenizer:   TokenizerLexMachine,
	}
}

// Load reads a YAML configuration file. Values not present in the file are taken
// from Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()
	c, err := Read(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return c, nil
}

// Parse reads a configuration from YAML data.
func Parse(data []byte) (Config, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a configuration from a YAML stream and validates it.
func Read(r io.Reader) (Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalize() {
	c.StackPolicy = strings.ToLower(strings.TrimSpace(c.StackPolicy))
	c.Strategy = strings.ToLower(strings.TrimSpace(c.Strategy))
	c.TraceLevel = strings.TrimSpace(c.TraceLevel)
	c.Tokenizer = strings.ToLower(strings.TrimSpace(c.Tokenizer))
}

// Validate checks a configuration for consistency.
func (c Config) Validate() error {
	switch c.StackPolicy {
	case FixedStack, GrowableStack:
	default:
		return fmt.Errorf("config: unknown stack policy %q", c.StackPolicy)
	}
	switch c.Strategy {
	case StrategyEval, StrategyVM, StrategyChecked:
	default:
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	switch c.Tokenizer {
	case TokenizerLexMachine, TokenizerGo:
	default:
		return fmt.Errorf("config: unknown tokenizer %q", c.Tokenizer)
	}
	if c.StackCapacity < 0 || c.StackLimit < 0 || c.CacheSize < 0 {
		return fmt.Errorf("config: sizes must not be negative")
	}
	if c.StackPolicy == GrowableStack && c.StackLimit > 0 && c.StackCapacity > c.StackLimit {
		return fmt.Errorf("config: stack capacity %d exceeds stack limit %d", c.StackCapacity, c.StackLimit)
	}
	return nil
}

// Marshal returns c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
