package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/repoweight/repoweight/internal/execshell"
	"github.com/repoweight/repoweight/internal/ui"
)

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	testCases := []struct {
		name          string
		notify        func(eventLogger *ui.ConsoleCommandEventLogger, command execshell.ShellCommand)
		expectedLevel zap.AtomicLevel
	}{
		{
			name: "started_logs_info",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger, command execshell.ShellCommand) {
				eventLogger.CommandStarted(command)
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.InfoLevel),
		},
		{
			name: "completed_success_logs_info",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger, command execshell.ShellCommand) {
				eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.InfoLevel),
		},
		{
			name: "completed_failure_logs_warn",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger, command execshell.ShellCommand) {
				eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1})
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.WarnLevel),
		},
		{
			name: "execution_failure_logs_error",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger, command execshell.ShellCommand) {
				eventLogger.CommandExecutionFailed(command, errors.New("boom"))
			},
			expectedLevel: zap.NewAtomicLevelAt(zap.ErrorLevel),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			command := execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"ls-files", "-z"}},
			}

			testCase.notify(eventLogger, command)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel.Level(), entries[0].Level)
		})
	}
}
