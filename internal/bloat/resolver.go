package bloat

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/repoweight/repoweight/internal/gitrepo"
)

// ResolutionOutcome reports how completely a size-resolution pass covered the
// requested identifiers. Failed batches degrade the inventory instead of
// aborting the analysis.
type ResolutionOutcome struct {
	FailedBatchCount          int
	UnresolvedIdentifierCount int
}

// SizeResolver resolves object sizes in bounded, concurrently executed batches.
type SizeResolver struct {
	objectStore RepositoryObjectStore
	chunkSize   int
	workerCount int
}

// NewSizeResolver constructs a SizeResolver, falling back to defaults for
// non-positive tuning values.
func NewSizeResolver(objectStore RepositoryObjectStore, chunkSize int, workerCount int) *SizeResolver {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSizeConstant
	}
	if workerCount <= 0 {
		workerCount = defaultWorkerCountConstant
	}
	return &SizeResolver{
		objectStore: objectStore,
		chunkSize:   chunkSize,
		workerCount: workerCount,
	}
}

// Resolve maps identifiers to byte sizes. Chunk boundaries never affect the
// result; a failed batch leaves its identifiers unresolved and is counted in
// the outcome. Cancellation is honored between batch submissions, and
// in-flight batches run to completion.
func (resolver *SizeResolver) Resolve(executionContext context.Context, root gitrepo.RepositoryRoot, identifiers []string) (map[string]uint64, ResolutionOutcome, error) {
	resolvedSizes := make(map[string]uint64, len(identifiers))
	outcome := ResolutionOutcome{}
	if len(identifiers) == 0 {
		return resolvedSizes, outcome, nil
	}

	var mergeLock sync.Mutex
	workerGroup := new(errgroup.Group)
	workerGroup.SetLimit(resolver.workerCount)

	submitted := 0
	for batchStart := 0; batchStart < len(identifiers); batchStart += resolver.chunkSize {
		if contextError := executionContext.Err(); contextError != nil {
			break
		}

		batchEnd := batchStart + resolver.chunkSize
		if batchEnd > len(identifiers) {
			batchEnd = len(identifiers)
		}
		batch := identifiers[batchStart:batchEnd]
		submitted += len(batch)

		workerGroup.Go(func() error {
			batchSizes, batchError := resolver.objectStore.BatchResolveSizes(executionContext, root, batch)

			mergeLock.Lock()
			defer mergeLock.Unlock()
			if batchError != nil {
				outcome.FailedBatchCount++
				return nil
			}
			for identifier, sizeBytes := range batchSizes {
				resolvedSizes[identifier] = sizeBytes
			}
			return nil
		})
	}

	if waitError := workerGroup.Wait(); waitError != nil {
		return nil, outcome, waitError
	}

	if contextError := executionContext.Err(); contextError != nil {
		return nil, outcome, contextError
	}

	outcome.UnresolvedIdentifierCount = submitted - len(resolvedSizes)
	return resolvedSizes, outcome, nil
}
