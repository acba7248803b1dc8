package bloat

import (
	"context"
	"errors"

	"github.com/repoweight/repoweight/internal/execshell"
	"github.com/repoweight/repoweight/internal/gitrepo"
)

// GitExecutor exposes the subset of shell execution used by the analyze command.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryObjectStore abstracts the version-control toolchain consumed by the
// analysis pipeline. Implementations may bind to plumbing commands or to an
// in-process object-store reader.
type RepositoryObjectStore interface {
	ResolveRoot(executionContext context.Context, repositoryPath string) (gitrepo.RepositoryRoot, error)
	ListObjects(executionContext context.Context, root gitrepo.RepositoryRoot, scope gitrepo.HistoryScope) ([]gitrepo.ObjectRef, error)
	BatchResolveSizes(executionContext context.Context, root gitrepo.RepositoryRoot, identifiers []string) (map[string]uint64, error)
	MeasureDirectory(executionContext context.Context, root gitrepo.RepositoryRoot, kind gitrepo.DirectoryKind) (uint64, error)
}

var errGitExecutorUnavailable = errors.New("analyze command requires a git executor")

// ResolveObjectStore returns the provided object store or constructs the
// default plumbing-backed implementation from the executor.
func ResolveObjectStore(existing RepositoryObjectStore, executor GitExecutor) (RepositoryObjectStore, error) {
	if existing != nil {
		return existing, nil
	}
	if executor == nil {
		return nil, errGitExecutorUnavailable
	}
	return gitrepo.NewObjectStore(executor)
}
