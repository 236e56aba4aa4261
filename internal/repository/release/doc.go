// Package release resolves the most recent release of a GitHub repository.
//
// The GitHubResolver lists releases through go-github and returns the newest
// entry of the listing, so pre-releases count as well.
package release
