// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

// Package config loads the configuration of the rawphoto command.
//
// Configuration is loaded from a single file specified by:
//   - the --config flag, or
//   - the RAWPHOTO_CONFIG environment variable.
//
// Without either, Default is used. There is no automatic discovery.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/photoshell/rawphoto"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "RAWPHOTO_CONFIG"

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputCBOR = "cbor"
)

var (
	outputFormats = []string{OutputJSON, OutputYAML, OutputCBOR}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

// Config is the configuration of the rawphoto command.
type Config struct {
	// Extensions limits discovery. Empty means all supported formats.
	Extensions []string `yaml:"extensions"`

	// Output is the record encoding: json, yaml or cbor.
	Output string `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Latin1Strings decodes string values that are not valid UTF-8 as ISO 8859-1.
	Latin1Strings bool `yaml:"latin1_strings"`

	// Limits guard the decoder against malformed files.
	Limits LimitsConfig `yaml:"limits"`
}

// LimitsConfig maps onto the limits in rawphoto.Options.
// Zero means the decoder default.
type LimitsConfig struct {
	NumTags        int64 `yaml:"num_tags"`
	ValueSize      int64 `yaml:"value_size"`
	ImageSize      int64 `yaml:"image_size"`
	MaxDepth       int   `yaml:"max_depth"`
	MaxDirectories int   `yaml:"max_directories"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:        OutputJSON,
		LogLevel:      "info",
		Latin1Strings: true,
	}
}

// Load loads the configuration from path, or from the file named by
// RAWPHOTO_CONFIG if path is empty. If neither is set, Default is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from a specific file path.
// Keys missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(outputFormats, c.Output) {
		errs = append(errs, fmt.Errorf("output must be one of: %v", outputFormats))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", logLevels))
	}

	for name, v := range map[string]int64{
		"limits.num_tags":        c.Limits.NumTags,
		"limits.value_size":      c.Limits.ValueSize,
		"limits.image_size":      c.Limits.ImageSize,
		"limits.max_depth":       int64(c.Limits.MaxDepth),
		"limits.max_directories": int64(c.Limits.MaxDirectories),
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	if c.Limits.NumTags > 1<<32-1 || c.Limits.ValueSize > 1<<32-1 {
		errs = append(errs, errors.New("limits.num_tags and limits.value_size must fit in 32 bits"))
	}

	for _, ext := range c.Extensions {
		if rawphoto.FormatFromPath("x"+normalizeExtension(ext)) == rawphoto.FormatUnknown {
			errs = append(errs, fmt.Errorf("extensions: unsupported extension %q", ext))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Options returns the decoder options for the configured limits.
func (c *Config) Options() rawphoto.Options {
	opts := rawphoto.Options{
		LimitNumTags:   uint32(c.Limits.NumTags),
		LimitValueSize: uint32(c.Limits.ValueSize),
		LimitImageSize: uint64(c.Limits.ImageSize),
		MaxDepth:       c.Limits.MaxDepth,
		MaxDirectories: c.Limits.MaxDirectories,
	}
	if c.Latin1Strings {
		opts.StringFallback = charmap.ISO8859_1
	}
	return opts
}

// ExtensionList returns the configured extensions with a leading dot, lower case.
func (c *Config) ExtensionList() []string {
	exts := make([]string, len(c.Extensions))
	for i, ext := range c.Extensions {
		exts[i] = normalizeExtension(ext)
	}
	return exts
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
