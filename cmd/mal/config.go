package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/mal"
)

// Config holds REPL settings loaded from a YAML file.
type Config struct {
	// Prompt is printed before each line of input.
	Prompt string `yaml:"prompt"`
	// History is the file holding line history. An empty history disables
	// saving it.
	History string `yaml:"history"`
	// Mode is the failure mode, "lenient" or "strict".
	Mode string `yaml:"mode"`
}

// defaultConfig returns the settings used when no file overrides them.
func defaultConfig() Config {
	c := Config{
		Prompt: "user> ",
		Mode:   "lenient",
	}
	if home, err := os.UserHomeDir(); err == nil {
		c.History = filepath.Join(home, ".mal-history")
	}
	return c
}

// loadConfig reads settings from the named file over the defaults. A missing
// file is not an error.
func loadConfig(name string) (Config, error) {
	c := defaultConfig()
	if name == "" {
		return c, nil
	}
	b, err := ioutil.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	return parseConfig(b, c)
}

// parseConfig decodes YAML settings over c.
func parseConfig(b []byte, c Config) (Config, error) {
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return defaultConfig(), fmt.Errorf("bad config: %w", err)
	}
	if _, err := mal.ParseMode(c.Mode); err != nil {
		return defaultConfig(), fmt.Errorf("bad config: %w", err)
	}
	return c, nil
}

// defaultConfigPath returns ~/.malrc.yaml, or the empty string if there is no
// home directory.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".malrc.yaml")
}
