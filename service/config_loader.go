package service

import (
	"fmt"

	"github.com/ludo-technologies/deadwood/domain"
	"github.com/ludo-technologies/deadwood/internal/config"
)

// ConfigurationLoader loads deadwood's own configuration and merges it
// with CLI-flag overrides into an AnalyzeRequest.
type ConfigurationLoader struct{}

// NewConfigurationLoader creates a new configuration loader service.
func NewConfigurationLoader() *ConfigurationLoader {
	return &ConfigurationLoader{}
}

// LoadConfig loads configuration from the specified path (or discovers
// it from targetPath when path is empty) and converts it to an
// AnalyzeRequest baseline.
func (c *ConfigurationLoader) LoadConfig(path, targetPath string) (*domain.AnalyzeRequest, error) {
	cfg, err := config.LoadConfig(path, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.toAnalyzeRequest(cfg), nil
}

func (c *ConfigurationLoader) toAnalyzeRequest(cfg *config.Config) *domain.AnalyzeRequest {
	req := domain.DefaultAnalyzeRequest()
	req.EntryHints = cfg.Analysis.EntryHints
	req.IncludeLowConfidence = cfg.Analysis.IncludeLowConfidence
	req.IncludeNonProdDeps = cfg.Dependency.IncludeNonProdDeps
	req.AssetRoots = cfg.Assets.AssetRoots
	if cfg.Output.Format != "" {
		req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	}
	return req
}

// MergeConfig layers CLI-flag overrides onto a config-file baseline.
// Only fields the caller actually set (non-zero-value) take effect, so
// that an unset flag doesn't clobber a configured default.
func (c *ConfigurationLoader) MergeConfig(base, override *domain.AnalyzeRequest) *domain.AnalyzeRequest {
	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.Root != "" {
		merged.Root = override.Root
	}
	if len(override.EntryHints) > 0 {
		merged.EntryHints = override.EntryHints
	}
	if override.IncludeNonProdDeps {
		merged.IncludeNonProdDeps = override.IncludeNonProdDeps
	}
	if override.IncludeLowConfidence {
		merged.IncludeLowConfidence = override.IncludeLowConfidence
	}
	if len(override.AssetRoots) > 0 {
		merged.AssetRoots = override.AssetRoots
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// ValidateConfig validates a request's output format.
func (c *ConfigurationLoader) ValidateConfig(req *domain.AnalyzeRequest) error {
	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatDOT:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, dot)", req.OutputFormat)
	}
}
