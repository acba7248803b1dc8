package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForRevListDescribesScope(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-list", "--objects", "--all", "--reflog"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Enumerating full-history objects in /workspace/repo", message)
}

func TestBuildStartedMessageForRevListWithoutAllUsesReachableLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-list", "--objects", "HEAD"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Enumerating reachable objects in /workspace/repo", message)
}

func TestBuildFailureMessageForBatchCheckIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"cat-file", "--batch-check"},
			WorkingDirectory: "/workspace/repo",
		},
	}
	result := ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to resolve object sizes in /workspace/repo (exit code 128: fatal: not a git repository)", message)
}

func TestBuildSuccessMessageForToplevelUsesResolvedRoot(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"rev-parse", "--show-toplevel"},
		},
	}

	message := formatter.buildMessage(command, ExecutionResult{StandardOutput: "/workspace/repo\n"}, nil, messageStageSuccess)

	require.Equal(t, "Repository root for current directory is /workspace/repo", message)
}
