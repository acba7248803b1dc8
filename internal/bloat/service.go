package bloat

import (
	"context"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/repoweight/repoweight/internal/gitrepo"
)

// Service coordinates object enumeration, size resolution, aggregation, and
// reporting for one or more repositories.
type Service struct {
	objectStore  RepositoryObjectStore
	logger       *zap.Logger
	outputWriter io.Writer
	errorWriter  io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(objectStore RepositoryObjectStore, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		objectStore:  objectStore,
		logger:       logger,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
	}
}

// Run analyzes every configured repository sequentially and renders each
// report in the requested format.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	roots := options.Roots
	if len(roots) == 0 {
		roots = []string{currentDirectoryRootConstant}
	}

	analysisOptions := AnalysisOptions{
		Scope:        options.Scope,
		MinSizeBytes: options.MinSizeBytes,
		ResultLimit:  options.ResultLimit,
		ChunkSize:    options.ChunkSize,
		WorkerCount:  options.WorkerCount,
	}

	for _, repositoryPath := range roots {
		report, analysisError := service.Analyze(executionContext, repositoryPath, analysisOptions)
		if analysisError != nil {
			return analysisError
		}

		if renderError := renderReport(service.outputWriter, options.Format, report); renderError != nil {
			return renderError
		}
	}

	return nil
}

// Analyze runs the full pipeline against a single repository. Scope
// resolution failures are fatal; batch and measurement failures degrade the
// report and are surfaced through the summary counters.
func (service *Service) Analyze(executionContext context.Context, repositoryPath string, options AnalysisOptions) (AnalysisReport, error) {
	repositoryRoot, rootError := service.objectStore.ResolveRoot(executionContext, repositoryPath)
	if rootError != nil {
		return AnalysisReport{}, ScopeResolutionError{RepositoryPath: repositoryPath, Scope: options.Scope, Cause: rootError}
	}

	objectReferences, listError := service.objectStore.ListObjects(executionContext, repositoryRoot, options.Scope)
	if listError != nil {
		return AnalysisReport{}, ScopeResolutionError{RepositoryPath: repositoryPath, Scope: options.Scope, Cause: listError}
	}

	uniqueReferences := deduplicateByIdentifier(objectReferences)

	identifiers := make([]string, 0, len(uniqueReferences))
	for _, objectReference := range uniqueReferences {
		identifiers = append(identifiers, objectReference.Identifier)
	}

	historyMeasurement, workingMeasurement := service.measureDirectories(executionContext, repositoryRoot)

	sizeResolver := NewSizeResolver(service.objectStore, options.ChunkSize, options.WorkerCount)
	resolvedSizes, resolutionOutcome, resolveError := sizeResolver.Resolve(executionContext, repositoryRoot, identifiers)
	if resolveError != nil {
		return AnalysisReport{}, resolveError
	}

	if resolutionOutcome.FailedBatchCount > 0 {
		service.logger.Warn(batchFailureLogMessage,
			zap.String(repositoryLogFieldName, repositoryPath),
			zap.Int(failedBatchesLogFieldName, resolutionOutcome.FailedBatchCount),
			zap.Int(unresolvedLogFieldName, resolutionOutcome.UnresolvedIdentifierCount),
		)
	}

	inventory := buildInventory(uniqueReferences, resolvedSizes)

	var totalObjectSizeBytes uint64
	filteredCount := 0
	for _, sizedObject := range inventory {
		totalObjectSizeBytes += sizedObject.SizeBytes
		if sizedObject.SizeBytes >= options.MinSizeBytes {
			filteredCount++
		}
	}

	summary := Summary{
		HistoryStore:              historyMeasurement,
		WorkingTree:               workingMeasurement,
		TotalObjectSizeBytes:      totalObjectSizeBytes,
		ObjectCount:               len(inventory),
		FilteredCount:             filteredCount,
		FailedBatchCount:          resolutionOutcome.FailedBatchCount,
		UnresolvedIdentifierCount: resolutionOutcome.UnresolvedIdentifierCount,
	}

	report := AnalysisReport{
		RepositoryPath:  repositoryPath,
		Scope:           options.Scope,
		InventorySubset: selectInventorySubset(inventory, options.MinSizeBytes, options.ResultLimit),
		Summary:         summary,
		CategoryTotals:  computeCategoryTotals(inventory),
		Recommendations: buildRecommendations(inventory, summary),
	}
	return report, nil
}

// measureDirectories measures the history store and working tree
// concurrently. Either measurement may fail independently without aborting
// the pipeline.
func (service *Service) measureDirectories(executionContext context.Context, repositoryRoot gitrepo.RepositoryRoot) (DirectoryMeasurement, DirectoryMeasurement) {
	measurements := make(map[gitrepo.DirectoryKind]DirectoryMeasurement, 2)

	var measurementLock sync.Mutex
	var waitGroup sync.WaitGroup
	for _, directoryKind := range []gitrepo.DirectoryKind{gitrepo.DirectoryKindHistoryStore, gitrepo.DirectoryKindWorkingTree} {
		if contextError := executionContext.Err(); contextError != nil {
			break
		}

		waitGroup.Add(1)
		go func(kind gitrepo.DirectoryKind) {
			defer waitGroup.Done()
			measuredBytes, measurementError := service.objectStore.MeasureDirectory(executionContext, repositoryRoot, kind)

			measurementLock.Lock()
			defer measurementLock.Unlock()
			if measurementError != nil {
				service.logger.Warn(measurementFailureLogMessage,
					zap.String(directoryKindLogFieldName, string(kind)),
					zap.Error(measurementError),
				)
				measurements[kind] = DirectoryMeasurement{Bytes: 0, Known: false}
				return
			}
			measurements[kind] = DirectoryMeasurement{Bytes: measuredBytes, Known: true}
		}(directoryKind)
	}
	waitGroup.Wait()

	return measurements[gitrepo.DirectoryKindHistoryStore], measurements[gitrepo.DirectoryKindWorkingTree]
}

// deduplicateByIdentifier keeps the first-seen path per identifier so
// aggregates never double-count an object reachable through several paths.
func deduplicateByIdentifier(objectReferences []gitrepo.ObjectRef) []gitrepo.ObjectRef {
	seen := make(map[string]struct{}, len(objectReferences))
	unique := make([]gitrepo.ObjectRef, 0, len(objectReferences))
	for _, objectReference := range objectReferences {
		if _, exists := seen[objectReference.Identifier]; exists {
			continue
		}
		seen[objectReference.Identifier] = struct{}{}
		unique = append(unique, objectReference)
	}
	return unique
}

// buildInventory joins references with resolved sizes and sorts descending by
// size. Unresolved identifiers are dropped, never zero-filled. The sort is
// stable so ties keep first-seen order across repeated runs.
func buildInventory(objectReferences []gitrepo.ObjectRef, resolvedSizes map[string]uint64) []SizedObject {
	inventory := make([]SizedObject, 0, len(resolvedSizes))
	for _, objectReference := range objectReferences {
		sizeBytes, resolved := resolvedSizes[objectReference.Identifier]
		if !resolved {
			continue
		}
		inventory = append(inventory, SizedObject{
			Identifier:  objectReference.Identifier,
			LogicalPath: objectReference.LogicalPath,
			SizeBytes:   sizeBytes,
			Category:    classifyPath(objectReference.LogicalPath),
		})
	}

	sort.SliceStable(inventory, func(firstIndex int, secondIndex int) bool {
		return inventory[firstIndex].SizeBytes > inventory[secondIndex].SizeBytes
	})
	return inventory
}

func selectInventorySubset(inventory []SizedObject, minSizeBytes uint64, resultLimit int) []SizedObject {
	subset := make([]SizedObject, 0, len(inventory))
	for _, sizedObject := range inventory {
		if sizedObject.SizeBytes < minSizeBytes {
			continue
		}
		subset = append(subset, sizedObject)
		if resultLimit > 0 && len(subset) == resultLimit {
			break
		}
	}
	return subset
}
