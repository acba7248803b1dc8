// Package gitrepo binds the repository object store abstraction to git
// plumbing commands executed through execshell.
//
// ObjectStore resolves repository roots, enumerates history objects with
// rev-list, resolves object sizes with cat-file --batch-check, and measures
// the history store and working tree footprints.
package gitrepo
