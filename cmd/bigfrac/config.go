package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"bigfrac/internal/expr"
	"bigfrac/internal/render"
	"bigfrac/internal/trace"
)

const configFileName = "bigfrac.toml"

type fileConfig struct {
	Eval   evalConfig   `toml:"eval"`
	Output outputConfig `toml:"output"`
	Batch  batchConfig  `toml:"batch"`
	Trace  traceConfig  `toml:"trace"`
}

type evalConfig struct {
	Mode string `toml:"mode"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type batchConfig struct {
	Jobs int    `toml:"jobs"`
	UI   string `toml:"ui"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// findConfig walks from startDir up to the filesystem root looking for
// bigfrac.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// discoverConfig loads the explicit path when given, otherwise the nearest
// bigfrac.toml. Having no file at all is not an error.
func discoverConfig(explicit, startDir string) (fileConfig, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil || !ok {
			return fileConfig{}, "", err
		}
		path = found
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return fileConfig{}, "", err
	}
	return cfg, path, nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("eval", "mode") {
		if _, err := expr.ParseMode(cfg.Eval.Mode); err != nil {
			return fileConfig{}, fmt.Errorf("%s: [eval].mode: %w", path, err)
		}
	}
	if meta.IsDefined("output", "format") {
		if _, err := render.ParseFormat(cfg.Output.Format); err != nil {
			return fileConfig{}, fmt.Errorf("%s: [output].format: %w", path, err)
		}
	}
	if meta.IsDefined("output", "color") {
		if _, err := readColorMode(cfg.Output.Color); err != nil {
			return fileConfig{}, fmt.Errorf("%s: [output].color: %w", path, err)
		}
	}
	if meta.IsDefined("batch", "jobs") && cfg.Batch.Jobs < 0 {
		return fileConfig{}, fmt.Errorf("%s: [batch].jobs must be >= 0, got %d", path, cfg.Batch.Jobs)
	}
	if meta.IsDefined("batch", "ui") {
		if _, err := readUIMode(cfg.Batch.UI); err != nil {
			return fileConfig{}, fmt.Errorf("%s: [batch].ui: %w", path, err)
		}
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return fileConfig{}, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}
	return cfg, nil
}

// stringSetting resolves a setting: an explicit flag wins, then the config
// file value, then the flag default.
func stringSetting(cmd *cobra.Command, flag, fileValue string) string {
	f := cmd.Flags().Lookup(flag)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if fileValue != "" {
		return fileValue
	}
	if f != nil {
		return f.Value.String()
	}
	return ""
}

// intSetting is stringSetting for integers; a zero file value counts as unset.
func intSetting(cmd *cobra.Command, flag string, fileValue int) (int, error) {
	f := cmd.Flags().Lookup(flag)
	if (f == nil || !f.Changed) && fileValue != 0 {
		return fileValue, nil
	}
	return cmd.Flags().GetInt(flag)
}

func modeSetting(cmd *cobra.Command, conf fileConfig) (expr.Mode, error) {
	return expr.ParseMode(stringSetting(cmd, "mode", conf.Eval.Mode))
}

func formatSetting(cmd *cobra.Command, conf fileConfig) (render.Format, error) {
	return render.ParseFormat(stringSetting(cmd, "format", conf.Output.Format))
}
