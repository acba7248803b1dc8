package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/repoweight/repoweight/internal/utils"
)

type loaderTestConfiguration struct {
	Common loaderTestCommonSection `mapstructure:"common"`
}

type loaderTestCommonSection struct {
	LogLevel  string   `mapstructure:"log_level"`
	LogFormat string   `mapstructure:"log_format"`
	Roots     []string `mapstructure:"roots"`
}

func writeYAMLConfiguration(testInstance *testing.T, document map[string]any) string {
	encodedDocument, marshalError := yaml.Marshal(document)
	require.NoError(testInstance, marshalError)

	configurationPath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationPath, encodedDocument, 0o600))
	return configurationPath
}

func TestConfigurationLoaderReadsFileValues(testInstance *testing.T) {
	configurationPath := writeYAMLConfiguration(testInstance, map[string]any{
		"common": map[string]any{
			"log_level":  "debug",
			"log_format": "console",
			"roots":      []string{"/tmp/first", "/tmp/second"},
		},
	})

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOWEIGHT", nil)

	var configuration loaderTestConfiguration
	metadata, loadError := loader.LoadConfiguration(configurationPath, map[string]any{}, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, configurationPath, metadata.ConfigFileUsed)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, []string{"/tmp/first", "/tmp/second"}, configuration.Common.Roots)
}

func TestConfigurationLoaderAppliesDefaultsWhenFileMissing(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader("config", "yaml", "REPOWEIGHT", []string{testInstance.TempDir()})

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", map[string]any{
		"common.log_level":  "info",
		"common.log_format": "structured",
	}, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
}

func TestConfigurationLoaderEnvironmentOverridesFile(testInstance *testing.T) {
	testInstance.Setenv("REPOWEIGHT_COMMON_LOG_LEVEL", "error")

	configurationPath := writeYAMLConfiguration(testInstance, map[string]any{
		"common": map[string]any{"log_level": "debug"},
	})

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOWEIGHT", nil)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationPath, map[string]any{
		"common.log_level": "info",
	}, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "error", configuration.Common.LogLevel)
}

func TestConfigurationLoaderSplitsEnvironmentLists(testInstance *testing.T) {
	testInstance.Setenv("REPOWEIGHT_COMMON_ROOTS", "/tmp/first,/tmp/second")

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOWEIGHT", []string{testInstance.TempDir()})

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", map[string]any{
		"common.roots": []string{},
	}, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, []string{"/tmp/first", "/tmp/second"}, configuration.Common.Roots)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte("common: ["), 0o600))

	loader := utils.NewConfigurationLoader("config", "yaml", "REPOWEIGHT", nil)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration(configurationPath, map[string]any{}, &configuration)
	require.Error(testInstance, loadError)
	require.Contains(testInstance, loadError.Error(), "failed to read configuration")
}
