package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitRevListSubcommandNameConstant  = "rev-list"
	gitCatFileSubcommandNameConstant  = "cat-file"
	gitLSFilesSubcommandNameConstant  = "ls-files"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitShowToplevelFlagConstant       = "--show-toplevel"
	gitAbsoluteGitDirFlagConstant     = "--absolute-git-dir"
	gitObjectsFlagConstant            = "--objects"
	gitAllFlagConstant                = "--all"
	gitBatchCheckFlagConstant         = "--batch-check"
)

const (
	gitWorkTreeStartTemplateConstant              = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant            = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant            = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant   = "Could not analyze %s: %s"
	gitToplevelStartTemplateConstant              = "Resolving repository root for %s"
	gitToplevelSuccessTemplateConstant            = "Repository root for %s is %s"
	gitToplevelFailureTemplateConstant            = "Failed to resolve repository root for %s (exit code %d%s)"
	gitToplevelExecutionFailureTemplateConstant   = "Unable to resolve repository root for %s: %s"
	gitGitDirStartTemplateConstant                = "Locating history store for %s"
	gitGitDirSuccessTemplateConstant              = "History store for %s is %s"
	gitGitDirFailureTemplateConstant              = "Failed to locate history store for %s (exit code %d%s)"
	gitGitDirExecutionFailureTemplateConstant     = "Unable to locate history store for %s: %s"
	gitRevListStartTemplateConstant               = "Enumerating %s objects in %s"
	gitRevListSuccessTemplateConstant             = "Enumerated %s objects in %s"
	gitRevListFailureTemplateConstant             = "Failed to enumerate %s objects in %s (exit code %d%s)"
	gitRevListExecutionFailureTemplateConstant    = "Unable to enumerate %s objects in %s: %s"
	gitRevListReachableScopeLabelConstant         = "reachable"
	gitRevListFullHistoryScopeLabelConstant       = "full-history"
	gitBatchCheckStartTemplateConstant            = "Resolving object sizes in %s"
	gitBatchCheckSuccessTemplateConstant          = "Resolved object sizes in %s"
	gitBatchCheckFailureTemplateConstant          = "Failed to resolve object sizes in %s (exit code %d%s)"
	gitBatchCheckExecutionFailureTemplateConstant = "Unable to resolve object sizes in %s: %s"
	gitLSFilesStartTemplateConstant               = "Listing tracked files in %s"
	gitLSFilesSuccessTemplateConstant             = "Listed tracked files in %s"
	gitLSFilesFailureTemplateConstant             = "Failed to list tracked files in %s (exit code %d%s)"
	gitLSFilesExecutionFailureTemplateConstant    = "Unable to list tracked files in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRevListSubcommandNameConstant:
		return formatter.describeGitRevListMessage(command, result, failure, stage)
	case gitCatFileSubcommandNameConstant:
		return formatter.describeGitCatFileMessage(command, result, failure, stage)
	case gitLSFilesSubcommandNameConstant:
		return formatter.describeGitLSFilesMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitShowToplevelFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitToplevelStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitToplevelSuccessTemplateConstant, workingDirectory, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
		case messageStageFailure:
			return fmt.Sprintf(gitToplevelFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitToplevelExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbsoluteGitDirFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitGitDirStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitGitDirSuccessTemplateConstant, workingDirectory, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
		case messageStageFailure:
			return fmt.Sprintf(gitGitDirFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitGitDirExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRevListMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if !containsArgument(arguments, gitObjectsFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	scopeLabel := gitRevListReachableScopeLabelConstant
	if containsArgument(arguments, gitAllFlagConstant) {
		scopeLabel = gitRevListFullHistoryScopeLabelConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevListStartTemplateConstant, scopeLabel, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRevListSuccessTemplateConstant, scopeLabel, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRevListFailureTemplateConstant, scopeLabel, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevListExecutionFailureTemplateConstant, scopeLabel, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCatFileMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if !containsArgument(arguments, gitBatchCheckFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBatchCheckStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBatchCheckSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBatchCheckFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBatchCheckExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLSFilesMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLSFilesStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLSFilesSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLSFilesFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLSFilesExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
