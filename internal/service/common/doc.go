// Package common holds helpers shared by several services.
//
// It builds the HTTP client used for every outbound request of a run: GitHub
// headers, the optional bearer token and per-call timeouts.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
