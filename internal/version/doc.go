// Package version exposes build metadata for scoop-manifest.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
// The User-Agent sent to GitHub is derived from them.
package version
