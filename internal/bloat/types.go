package bloat

import (
	"fmt"

	"github.com/repoweight/repoweight/internal/gitrepo"
)

// Category classifies an inventory entry by content type.
type Category string

// Categories assignable to inventory entries.
const (
	CategoryBinary      Category = "binary"
	CategoryArchive     Category = "archive"
	CategoryImage       Category = "image"
	CategoryVideo       Category = "video"
	CategoryAudio       Category = "audio"
	CategoryData        Category = "data"
	CategoryDocument    Category = "document"
	CategoryPackage     Category = "package"
	CategoryNodeModules Category = "nodemodules"
	CategoryLog         Category = "log"
	CategoryOther       Category = "other"
)

// OutputFormat selects how analysis reports are rendered.
type OutputFormat string

// Supported report output formats.
const (
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatText OutputFormat = "text"
)

// SizedObject pairs an enumerated object with its resolved size. Objects whose
// size could not be resolved never become SizedObjects.
type SizedObject struct {
	Identifier  string
	LogicalPath string
	SizeBytes   uint64
	Category    Category
}

// DirectoryMeasurement reports a directory footprint. Known distinguishes a
// genuinely empty directory from a failed measurement.
type DirectoryMeasurement struct {
	Bytes uint64
	Known bool
}

// Summary aggregates repository-level counters for one analysis run.
type Summary struct {
	HistoryStore              DirectoryMeasurement
	WorkingTree               DirectoryMeasurement
	TotalObjectSizeBytes      uint64
	ObjectCount               int
	FilteredCount             int
	FailedBatchCount          int
	UnresolvedIdentifierCount int
}

// AnalysisOptions tunes a single analysis invocation.
type AnalysisOptions struct {
	Scope        gitrepo.HistoryScope
	MinSizeBytes uint64
	ResultLimit  int
	ChunkSize    int
	WorkerCount  int
}

// AnalysisReport is the complete result of analyzing one repository.
type AnalysisReport struct {
	RepositoryPath  string
	Scope           gitrepo.HistoryScope
	InventorySubset []SizedObject
	Summary         Summary
	CategoryTotals  map[Category]uint64
	Recommendations []string
}

// CommandOptions captures the configurable parameters for the analyze command.
type CommandOptions struct {
	Roots        []string
	Scope        gitrepo.HistoryScope
	MinSizeBytes uint64
	ResultLimit  int
	ChunkSize    int
	WorkerCount  int
	Format       OutputFormat
}

// ScopeResolutionError reports that repository history could not be traversed.
// It is fatal for the whole analysis.
type ScopeResolutionError struct {
	RepositoryPath string
	Scope          gitrepo.HistoryScope
	Cause          error
}

// Error describes the failed scope resolution.
func (scopeError ScopeResolutionError) Error() string {
	return fmt.Sprintf(scopeResolutionErrorTemplate, scopeError.RepositoryPath, scopeError.Scope, scopeError.Cause)
}

// Unwrap exposes the underlying failure.
func (scopeError ScopeResolutionError) Unwrap() error {
	return scopeError.Cause
}
