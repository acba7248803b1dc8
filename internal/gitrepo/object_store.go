package gitrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/repoweight/repoweight/internal/execshell"
)

const (
	gitRevParseSubcommandConstant     = "rev-parse"
	gitShowToplevelFlagConstant       = "--show-toplevel"
	gitAbsoluteGitDirFlagConstant     = "--absolute-git-dir"
	gitRevListSubcommandConstant      = "rev-list"
	gitObjectsFlagConstant            = "--objects"
	gitAllFlagConstant                = "--all"
	gitReflogFlagConstant             = "--reflog"
	gitHeadReferenceConstant          = "HEAD"
	gitCatFileSubcommandConstant      = "cat-file"
	gitBatchCheckFlagConstant         = "--batch-check"
	gitLSFilesSubcommandConstant      = "ls-files"
	gitNullTerminationFlagConstant    = "-z"
	objectsDirectoryNameConstant      = "objects"
	objectIdentifierLengthConstant    = 40
	batchMissingResponseConstant      = "missing"
	lineSeparatorConstant             = "\n"
	fieldSeparatorConstant            = " "
	nullSeparatorConstant             = "\x00"
	executorNotConfiguredMessage      = "object store requires a git executor"
	rootOutputLineCountConstant       = 2
	malformedRootOutputMessage        = "unexpected rev-parse output"
	unknownDirectoryKindMessagePrefix = "unknown directory kind: "
)

// GitExecutor exposes the subset of shell execution used by the object store.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ObjectStore reads repository objects and directory footprints through git plumbing.
type ObjectStore struct {
	gitExecutor GitExecutor
}

// NewObjectStore constructs an ObjectStore after validating the executor.
func NewObjectStore(gitExecutor GitExecutor) (*ObjectStore, error) {
	if gitExecutor == nil {
		return nil, errors.New(executorNotConfiguredMessage)
	}
	return &ObjectStore{gitExecutor: gitExecutor}, nil
}

// ResolveRoot resolves the work tree and git directory for the provided path.
func (store *ObjectStore) ResolveRoot(executionContext context.Context, repositoryPath string) (RepositoryRoot, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowToplevelFlagConstant, gitAbsoluteGitDirFlagConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := store.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryRoot{}, NotARepositoryError{Path: repositoryPath, Cause: executionError}
	}

	outputLines := splitNonEmptyLines(executionResult.StandardOutput)
	if len(outputLines) < rootOutputLineCountConstant {
		return RepositoryRoot{}, NotARepositoryError{Path: repositoryPath, Cause: errors.New(malformedRootOutputMessage)}
	}

	return RepositoryRoot{
		WorkTreePath:     outputLines[0],
		GitDirectoryPath: outputLines[1],
	}, nil
}

// ListObjects enumerates history objects for the requested scope, pairing each
// identifier with the logical path rev-list reached it through.
func (store *ObjectStore) ListObjects(executionContext context.Context, root RepositoryRoot, scope HistoryScope) ([]ObjectRef, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        revListArguments(scope),
		WorkingDirectory: root.WorkTreePath,
	}

	executionResult, executionError := store.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, executionError
	}

	return parseObjectListing(executionResult.StandardOutput), nil
}

// BatchResolveSizes resolves object sizes for the provided identifiers using a
// single cat-file --batch-check invocation. Unresolvable identifiers are
// silently omitted from the returned mapping.
func (store *ObjectStore) BatchResolveSizes(executionContext context.Context, root RepositoryRoot, identifiers []string) (map[string]uint64, error) {
	if len(identifiers) == 0 {
		return map[string]uint64{}, nil
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitCatFileSubcommandConstant, gitBatchCheckFlagConstant},
		WorkingDirectory: root.WorkTreePath,
		StandardInput:    []byte(strings.Join(identifiers, lineSeparatorConstant) + lineSeparatorConstant),
	}

	executionResult, executionError := store.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, executionError
	}

	return parseBatchCheckOutput(executionResult.StandardOutput), nil
}

// MeasureDirectory measures the requested directory footprint in bytes.
func (store *ObjectStore) MeasureDirectory(executionContext context.Context, root RepositoryRoot, kind DirectoryKind) (uint64, error) {
	switch kind {
	case DirectoryKindHistoryStore:
		objectsDirectory := filepath.Join(root.GitDirectoryPath, objectsDirectoryNameConstant)
		measuredBytes, measurementError := measureDirectoryTree(objectsDirectory)
		if measurementError != nil {
			return 0, MeasurementUnavailableError{Kind: kind, Cause: measurementError}
		}
		return measuredBytes, nil
	case DirectoryKindWorkingTree:
		measuredBytes, measurementError := store.measureTrackedFiles(executionContext, root)
		if measurementError != nil {
			return 0, MeasurementUnavailableError{Kind: kind, Cause: measurementError}
		}
		return measuredBytes, nil
	default:
		return 0, MeasurementUnavailableError{Kind: kind, Cause: errors.New(unknownDirectoryKindMessagePrefix + string(kind))}
	}
}

func (store *ObjectStore) measureTrackedFiles(executionContext context.Context, root RepositoryRoot) (uint64, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitLSFilesSubcommandConstant, gitNullTerminationFlagConstant},
		WorkingDirectory: root.WorkTreePath,
	}

	executionResult, executionError := store.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return 0, executionError
	}

	var totalBytes uint64
	for _, trackedFile := range strings.Split(executionResult.StandardOutput, nullSeparatorConstant) {
		if len(trackedFile) == 0 {
			continue
		}
		fileInformation, statError := os.Lstat(filepath.Join(root.WorkTreePath, trackedFile))
		if statError != nil {
			continue
		}
		if !fileInformation.Mode().IsRegular() {
			continue
		}
		totalBytes += uint64(fileInformation.Size())
	}

	return totalBytes, nil
}

func revListArguments(scope HistoryScope) []string {
	if scope == HistoryScopeAllHistory {
		return []string{gitRevListSubcommandConstant, gitObjectsFlagConstant, gitAllFlagConstant, gitReflogFlagConstant}
	}
	return []string{gitRevListSubcommandConstant, gitObjectsFlagConstant, gitHeadReferenceConstant}
}

func parseObjectListing(standardOutput string) []ObjectRef {
	outputLines := strings.Split(standardOutput, lineSeparatorConstant)
	objectReferences := make([]ObjectRef, 0, len(outputLines))
	for _, outputLine := range outputLines {
		trimmedLine := strings.TrimRight(outputLine, "\r")
		if len(trimmedLine) < objectIdentifierLengthConstant {
			continue
		}

		identifier := trimmedLine[:objectIdentifierLengthConstant]
		if !isHexIdentifier(identifier) {
			continue
		}

		logicalPath := ""
		if len(trimmedLine) > objectIdentifierLengthConstant+1 {
			logicalPath = trimmedLine[objectIdentifierLengthConstant+1:]
		}

		objectReferences = append(objectReferences, ObjectRef{Identifier: identifier, LogicalPath: logicalPath})
	}
	return objectReferences
}

func parseBatchCheckOutput(standardOutput string) map[string]uint64 {
	resolvedSizes := make(map[string]uint64)
	for _, outputLine := range strings.Split(standardOutput, lineSeparatorConstant) {
		fields := strings.Fields(outputLine)
		if len(fields) < 3 {
			continue
		}
		if fields[1] == batchMissingResponseConstant {
			continue
		}
		if !isHexIdentifier(fields[0]) {
			continue
		}
		objectSize, parseError := strconv.ParseUint(fields[2], 10, 64)
		if parseError != nil {
			continue
		}
		resolvedSizes[fields[0]] = objectSize
	}
	return resolvedSizes
}

func isHexIdentifier(candidate string) bool {
	if len(candidate) != objectIdentifierLengthConstant {
		return false
	}
	for _, character := range candidate {
		isDigit := character >= '0' && character <= '9'
		isLowerHex := character >= 'a' && character <= 'f'
		if !isDigit && !isLowerHex {
			return false
		}
	}
	return true
}

func splitNonEmptyLines(standardOutput string) []string {
	rawLines := strings.Split(standardOutput, lineSeparatorConstant)
	nonEmptyLines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}
		nonEmptyLines = append(nonEmptyLines, trimmedLine)
	}
	return nonEmptyLines
}

func measureDirectoryTree(directoryPath string) (uint64, error) {
	var totalBytes uint64
	walkError := filepath.WalkDir(directoryPath, func(path string, directoryEntry os.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}
		if directoryEntry.IsDir() {
			return nil
		}
		fileInformation, informationError := directoryEntry.Info()
		if informationError != nil {
			return informationError
		}
		if !fileInformation.Mode().IsRegular() {
			return nil
		}
		totalBytes += uint64(fileInformation.Size())
		return nil
	})
	if walkError != nil {
		return 0, walkError
	}
	return totalBytes, nil
}
