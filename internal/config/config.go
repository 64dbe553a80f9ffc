// Package config loads and saves deadwood's own project configuration
// (.deadwood.yaml), distinct from the JS/TS project's own
// tsconfig/jsconfig handled by internal/tsconfig.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/deadwood/internal/constants"
)

// Config is deadwood's own configuration, as read from
// .deadwood.yaml, environment variables (DEADWOOD_*), or CLI flags.
type Config struct {
	Analysis   AnalysisConfig   `json:"analysis" mapstructure:"analysis" yaml:"analysis"`
	Output     OutputConfig     `json:"output" mapstructure:"output" yaml:"output"`
	Dependency DependencyConfig `json:"dependency" mapstructure:"dependency" yaml:"dependency"`
	Assets     AssetConfig      `json:"assets" mapstructure:"assets" yaml:"assets"`
}

// AnalysisConfig controls what the analyzer scans and how it treats
// ambiguous graph state.
type AnalysisConfig struct {
	EntryHints           []string `json:"entry_hints" mapstructure:"entry_hints" yaml:"entry_hints"`
	IncludePatterns      []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns      []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	IncludeLowConfidence bool     `json:"include_low_confidence" mapstructure:"include_low_confidence" yaml:"include_low_confidence"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// DependencyConfig controls unused-dependency detection.
type DependencyConfig struct {
	IncludeNonProdDeps bool `json:"include_non_prod_deps" mapstructure:"include_non_prod_deps" yaml:"include_non_prod_deps"`
}

// AssetConfig restricts which parts of the project are scanned for
// non-source assets.
type AssetConfig struct {
	AssetRoots []string `json:"asset_roots" mapstructure:"asset_roots" yaml:"asset_roots"`
}

// DefaultConfig returns deadwood's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs",
			},
			ExcludePatterns:      []string{},
			IncludeLowConfidence: false,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Dependency: DependencyConfig{
			IncludeNonProdDeps: false,
		},
		Assets: AssetConfig{
			AssetRoots: []string{},
		},
	}
}

// LoadConfig loads configuration from configPath, or discovers
// .deadwood.yaml by searching upward from targetPath, or falls back to
// defaults if neither is found.
func LoadConfig(configPath, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	v := viper.New()
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.AutomaticEnv()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// discoverConfigFile looks for .deadwood.yaml starting from
// targetPath's directory and walking up to the filesystem root, then
// falls back to the current directory.
func discoverConfigFile(targetPath string) string {
	candidates := []string{constants.ConfigFileName, ".deadwood.yml", "deadwood.yaml"}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if found := searchConfigInDirectory(dir, candidates); found != "" {
					return found
				}
				parent := filepath.Dir(dir)
				if parent == dir || dir == volume || (volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	return searchConfigInDirectory(".", candidates)
}

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	validFormats := map[string]bool{"text": true, "json": true, "dot": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, dot", c.Output.Format)
	}
	return nil
}

// SaveConfig writes config as YAML to path.
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("analysis", config.Analysis)
	v.Set("output", config.Output)
	v.Set("dependency", config.Dependency)
	v.Set("assets", config.Assets)

	return v.WriteConfig()
}
