// Package release contains the release and asset records fetched from the
// hosting API, plus helpers that derive manifest fields from them.
package release
