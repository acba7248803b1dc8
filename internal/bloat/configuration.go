package bloat

import "strings"

// CommandConfiguration captures persistent settings for the analyze command.
type CommandConfiguration struct {
	Roots        []string `mapstructure:"roots"`
	Scope        string   `mapstructure:"scope"`
	MinSizeBytes uint64   `mapstructure:"min_size"`
	ResultLimit  int      `mapstructure:"limit"`
	ChunkSize    int      `mapstructure:"chunk_size"`
	WorkerCount  int      `mapstructure:"workers"`
	Format       string   `mapstructure:"format"`
}

// DefaultCommandConfiguration returns baseline configuration values for the analyze command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:        nil,
		Scope:        scopeAllHistoryValueConstant,
		MinSizeBytes: 0,
		ResultLimit:  defaultResultLimitConstant,
		ChunkSize:    defaultChunkSizeConstant,
		WorkerCount:  defaultWorkerCountConstant,
		Format:       string(OutputFormatText),
	}
}

// DefaultConfigurationValues exposes analyze defaults keyed for configuration loading.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationScopeKeyConstant:       defaults.Scope,
		configurationMinSizeKeyConstant:     defaults.MinSizeBytes,
		configurationResultLimitKeyConstant: defaults.ResultLimit,
		configurationChunkSizeKeyConstant:   defaults.ChunkSize,
		configurationWorkerCountKeyConstant: defaults.WorkerCount,
		configurationFormatKeyConstant:      defaults.Format,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Roots = sanitizeRoots(configuration.Roots)
	sanitized.Scope = strings.ToLower(strings.TrimSpace(configuration.Scope))
	if len(sanitized.Scope) == 0 {
		sanitized.Scope = defaults.Scope
	}
	if sanitized.ResultLimit < 0 {
		sanitized.ResultLimit = defaults.ResultLimit
	}
	if sanitized.ChunkSize <= 0 {
		sanitized.ChunkSize = defaults.ChunkSize
	}
	if sanitized.WorkerCount <= 0 {
		sanitized.WorkerCount = defaults.WorkerCount
	}
	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = defaults.Format
	}

	return sanitized
}

func sanitizeRoots(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
