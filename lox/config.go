package lox

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultPrompt       = "lox> "
	defaultHistoryLimit = 200
)

// FileConfig is the on-disk configuration read by the lox command.
type FileConfig struct {
	StepQuota int        `yaml:"step_quota"`
	REPL      REPLConfig `yaml:"repl"`
}

// REPLConfig tunes the interactive session.
type REPLConfig struct {
	Prompt       string `yaml:"prompt"`
	HistoryLimit int    `yaml:"history_limit"`
}

// DefaultFileConfig is the configuration used when no file is given.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		REPL: REPLConfig{
			Prompt:       defaultPrompt,
			HistoryLimit: defaultHistoryLimit,
		},
	}
}

// LoadConfigFile reads a YAML configuration. Keys the file does not set keep
// their defaults; unknown keys are an error.
func LoadConfigFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig is LoadConfigFile for an already open reader.
func DecodeConfig(r io.Reader) (FileConfig, error) {
	cfg := DefaultFileConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return FileConfig{}, err
	}
	if cfg.REPL.Prompt == "" {
		cfg.REPL.Prompt = defaultPrompt
	}
	if cfg.REPL.HistoryLimit == 0 {
		cfg.REPL.HistoryLimit = defaultHistoryLimit
	}
	return cfg, nil
}

func (c FileConfig) validate() error {
	if c.StepQuota < 0 {
		return fmt.Errorf("config: step_quota must be >= 0, got %d", c.StepQuota)
	}
	if c.REPL.HistoryLimit < 0 {
		return fmt.Errorf("config: repl.history_limit must be >= 0, got %d", c.REPL.HistoryLimit)
	}
	return nil
}

// EngineConfig converts the file settings into an engine Config that prints
// to stdout.
func (c FileConfig) EngineConfig(stdout io.Writer) Config {
	return Config{StepQuota: c.StepQuota, Stdout: stdout}
}
