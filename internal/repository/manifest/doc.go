// Package manifest persists generated Scoop manifests as JSON files.
//
// The FileRepository writes "<app>.json" into a directory through a temporary
// file and a rename, so a failed run never leaves a partial manifest behind.
package manifest
