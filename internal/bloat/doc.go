// Package bloat implements the repository storage analysis pipeline used by
// the repoweight CLI.
//
// It exposes CommandBuilder for wiring the analyze Cobra command, Service for
// driving the pipeline programmatically, and supporting abstractions over the
// repository object store collaborator. The pipeline enumerates history
// objects, resolves their sizes in bounded batches, aggregates an ordered
// inventory with directory footprints, and derives category totals and
// advisory recommendations.
package bloat
