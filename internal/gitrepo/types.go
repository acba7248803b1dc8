package gitrepo

import "fmt"

const (
	notARepositoryMessageTemplateConstant         = "%s is not a git repository: %v"
	measurementUnavailableMessageTemplateConstant = "%s measurement unavailable: %v"
)

// HistoryScope selects which subset of history objects to enumerate.
type HistoryScope string

// Supported history scopes.
const (
	// HistoryScopeReachableFromTip enumerates objects reachable from the current HEAD.
	HistoryScopeReachableFromTip HistoryScope = "tip"
	// HistoryScopeAllHistory enumerates every object reachable from any reference or reflog entry.
	HistoryScopeAllHistory HistoryScope = "all"
)

// DirectoryKind identifies a measurable repository directory.
type DirectoryKind string

// Supported directory kinds.
const (
	DirectoryKindHistoryStore DirectoryKind = "history_store"
	DirectoryKindWorkingTree  DirectoryKind = "working_tree"
)

// ObjectRef pairs a content hash with the logical path it was reached through.
// The identifier is the identity; the path is advisory and may be empty for
// commits, which rev-list emits without a path.
type ObjectRef struct {
	Identifier  string
	LogicalPath string
}

// RepositoryRoot captures the resolved top-level locations of a repository.
type RepositoryRoot struct {
	WorkTreePath     string
	GitDirectoryPath string
}

// NotARepositoryError reports a path that could not be resolved to a repository root.
type NotARepositoryError struct {
	Path  string
	Cause error
}

// Error describes the resolution failure.
func (resolutionError NotARepositoryError) Error() string {
	return fmt.Sprintf(notARepositoryMessageTemplateConstant, resolutionError.Path, resolutionError.Cause)
}

// Unwrap exposes the underlying cause.
func (resolutionError NotARepositoryError) Unwrap() error {
	return resolutionError.Cause
}

// MeasurementUnavailableError reports a directory measurement that could not be taken.
type MeasurementUnavailableError struct {
	Kind  DirectoryKind
	Cause error
}

// Error describes the measurement failure.
func (measurementError MeasurementUnavailableError) Error() string {
	return fmt.Sprintf(measurementUnavailableMessageTemplateConstant, measurementError.Kind, measurementError.Cause)
}

// Unwrap exposes the underlying cause.
func (measurementError MeasurementUnavailableError) Unwrap() error {
	return measurementError.Cause
}
