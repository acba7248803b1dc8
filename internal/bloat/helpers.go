package bloat

import (
	"fmt"
	"strings"

	"github.com/repoweight/repoweight/internal/gitrepo"
)

const (
	commandNameConstant     = "analyze [path...]"
	commandShortDescription = "Analyze repository history for storage bloat"
	commandLongDescription  = "Analyze enumerates every object a repository's history contains, resolves object sizes in bounded batches, classifies objects by content type, and reports storage recommendations."

	flagScopeName       = "scope"
	flagMinSizeName     = "min-size"
	flagLimitName       = "limit"
	flagChunkSizeName   = "chunk-size"
	flagWorkersName     = "workers"
	flagFormatName      = "format"
	flagMinSizeUsage    = "minimum object size in bytes for the reported inventory subset"
	flagLimitUsage      = "maximum number of inventory entries to report (0 reports all)"
	flagChunkSizeUsage  = "identifiers per size-resolution batch"
	flagWorkersUsage    = "concurrent size-resolution batches"
	flagScopeUsageText  = "history scope to analyze"
	flagFormatUsageText = "report output format"

	scopeTipValueConstant        = "tip"
	scopeAllHistoryValueConstant = "all"

	configurationScopeKeyConstant       = "scope"
	configurationMinSizeKeyConstant     = "min_size"
	configurationResultLimitKeyConstant = "limit"
	configurationChunkSizeKeyConstant   = "chunk_size"
	configurationWorkerCountKeyConstant = "workers"
	configurationFormatKeyConstant      = "format"

	defaultResultLimitConstant = 25
	defaultChunkSizeConstant   = 500
	defaultWorkerCountConstant = 4

	scopeResolutionErrorTemplate = "cannot traverse %s history (scope %s): %v"
	invalidScopeErrorTemplate    = "unsupported scope %q (expected %s or %s)"
	invalidFormatErrorTemplate   = "unsupported format %q (expected %s or %s)"

	largeMediaSizeThresholdBytes    = 5 * 1000 * 1000
	packagedArtifactThresholdBytes  = 1 * 1000 * 1000
	largeObjectSizeThresholdBytes   = 10 * 1000 * 1000
	largeObjectCountThreshold       = 10
	storeBloatRatioMultiplier       = 3
	nodeModulesPathSignalConstant   = "node_modules"
	vendorDirectoryPathSignal       = "vendor/"
	currentDirectoryRootConstant    = "."
	categoryCountConstant           = 11
	recommendationNodeModules       = "history contains node_modules artifacts; rewrite history to drop vendored package manager output"
	recommendationVendoredCode      = "history contains vendored third-party code under vendor/; remove it from version control"
	recommendationLargeMedia        = "large media objects exceed 5 MB; move images, video, and audio to external large-file storage"
	recommendationPackagedArtifacts = "packaged binaries or archives exceed 1 MB; publish build artifacts to an artifact store instead of history"
	recommendationStoreBloatRatio   = "history store is more than three times the working tree; run garbage collection or compact history"
	recommendationManyLargeObjects  = "more than ten objects exceed 10 MB; consider bulk history-cleanup tooling"
	recommendationHealthy           = "repository storage looks healthy"

	batchFailureLogMessage       = "size resolution completed with failed batches"
	measurementFailureLogMessage = "directory measurement unavailable"
	repositoryLogFieldName       = "repository"
	failedBatchesLogFieldName    = "failed_batches"
	unresolvedLogFieldName       = "unresolved_identifiers"
	directoryKindLogFieldName    = "directory_kind"
)

func scopeChoices() []string {
	return []string{scopeTipValueConstant, scopeAllHistoryValueConstant}
}

func formatChoices() []string {
	return []string{string(OutputFormatCSV), string(OutputFormatText)}
}

func parseHistoryScope(rawScope string) (gitrepo.HistoryScope, error) {
	switch strings.ToLower(strings.TrimSpace(rawScope)) {
	case scopeTipValueConstant:
		return gitrepo.HistoryScopeReachableFromTip, nil
	case scopeAllHistoryValueConstant:
		return gitrepo.HistoryScopeAllHistory, nil
	default:
		return "", fmt.Errorf(invalidScopeErrorTemplate, rawScope, scopeTipValueConstant, scopeAllHistoryValueConstant)
	}
}

func parseOutputFormat(rawFormat string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(rawFormat)) {
	case string(OutputFormatCSV):
		return OutputFormatCSV, nil
	case string(OutputFormatText):
		return OutputFormatText, nil
	default:
		return "", fmt.Errorf(invalidFormatErrorTemplate, rawFormat, OutputFormatCSV, OutputFormatText)
	}
}
