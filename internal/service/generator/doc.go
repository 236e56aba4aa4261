// Package generator produces a Scoop manifest for the latest GitHub release
// of a repository.
//
// Run resolves the release, selects Windows assets per architecture, hashes
// each of them and writes "<app>.json". Nothing is written unless every step
// succeeds.
package generator
