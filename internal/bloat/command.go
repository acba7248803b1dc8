package bloat

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repoweight/repoweight/internal/execshell"
	"github.com/repoweight/repoweight/internal/utils"
	"github.com/repoweight/repoweight/internal/utils/flags"
	pathutils "github.com/repoweight/repoweight/internal/utils/path"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persistent analyze configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the analyze cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ObjectStore           RepositoryObjectStore
	GitExecutor           GitExecutor
	CommandEventsObserver execshell.CommandEventObserver
	PathSanitizer         *pathutils.RepositoryPathSanitizer
}

// Build constructs the cobra command for repository bloat analysis.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := builder.resolveConfiguration()

	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().String(flagScopeName, defaults.Scope, flags.FormatChoiceUsage(defaults.Scope, scopeChoices(), flagScopeUsageText))
	command.Flags().Uint64(flagMinSizeName, defaults.MinSizeBytes, flagMinSizeUsage)
	command.Flags().Int(flagLimitName, defaults.ResultLimit, flagLimitUsage)
	command.Flags().Int(flagChunkSizeName, defaults.ChunkSize, flagChunkSizeUsage)
	command.Flags().Int(flagWorkersName, defaults.WorkerCount, flagWorkersUsage)
	command.Flags().String(flagFormatName, defaults.Format, flags.FormatChoiceUsage(defaults.Format, formatChoices(), flagFormatUsageText))

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	objectStore, storeError := builder.resolveObjectStore(logger)
	if storeError != nil {
		return storeError
	}

	service := NewService(objectStore, logger, utils.NewFlushingWriter(command.OutOrStdout()), command.ErrOrStderr())
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	scopeValue := configuration.Scope
	if command.Flags().Changed(flagScopeName) {
		scopeValue, _ = command.Flags().GetString(flagScopeName)
	}
	scope, scopeError := parseHistoryScope(scopeValue)
	if scopeError != nil {
		return CommandOptions{}, scopeError
	}

	formatValue := configuration.Format
	if command.Flags().Changed(flagFormatName) {
		formatValue, _ = command.Flags().GetString(flagFormatName)
	}
	format, formatError := parseOutputFormat(formatValue)
	if formatError != nil {
		return CommandOptions{}, formatError
	}

	minSizeBytes := configuration.MinSizeBytes
	if command.Flags().Changed(flagMinSizeName) {
		minSizeBytes, _ = command.Flags().GetUint64(flagMinSizeName)
	}

	resultLimit := configuration.ResultLimit
	if command.Flags().Changed(flagLimitName) {
		resultLimit, _ = command.Flags().GetInt(flagLimitName)
	}

	chunkSize := configuration.ChunkSize
	if command.Flags().Changed(flagChunkSizeName) {
		chunkSize, _ = command.Flags().GetInt(flagChunkSizeName)
	}

	workerCount := configuration.WorkerCount
	if command.Flags().Changed(flagWorkersName) {
		workerCount, _ = command.Flags().GetInt(flagWorkersName)
	}

	roots := builder.resolvePathSanitizer().Sanitize(arguments)
	if len(roots) == 0 {
		roots = configuration.Roots
	}

	options := CommandOptions{
		Roots:        roots,
		Scope:        scope,
		MinSizeBytes: minSizeBytes,
		ResultLimit:  resultLimit,
		ChunkSize:    chunkSize,
		WorkerCount:  workerCount,
		Format:       format,
	}
	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveObjectStore(logger *zap.Logger) (RepositoryObjectStore, error) {
	if builder.ObjectStore != nil {
		return builder.ObjectStore, nil
	}

	gitExecutor := builder.GitExecutor
	if gitExecutor == nil {
		observers := make([]execshell.CommandEventObserver, 0, 1)
		if builder.CommandEventsObserver != nil {
			observers = append(observers, builder.CommandEventsObserver)
		}
		shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = shellExecutor
	}

	return ResolveObjectStore(nil, gitExecutor)
}

func (builder *CommandBuilder) resolvePathSanitizer() *pathutils.RepositoryPathSanitizer {
	if builder.PathSanitizer != nil {
		return builder.PathSanitizer
	}
	return pathutils.NewRepositoryPathSanitizer()
}
