package release

import (
	"strings"
	"unicode/utf8"
)

// MaxDescriptionLength bounds the manifest description, in runes.
const MaxDescriptionLength = 200

// Asset is one downloadable file attached to a release.
type Asset struct {
	// Name is the file name as published.
	Name string
	// URL is the direct browser download URL.
	URL string
	// Size is the byte size declared by the API, zero when unknown.
	Size int64
}

// Release is a tagged, published version of a project.
type Release struct {
	// TagName is the git tag, possibly with a leading "v".
	TagName string
	// Name is the human-readable release title.
	Name string
	// Body is the free-text changelog.
	Body string
	// Prerelease marks alpha/beta/RC releases.
	Prerelease bool
	// Assets are the downloadable files in publication order.
	Assets []Asset
	// License is an optional SPDX identifier.
	License string
}

// Version returns the tag with a single leading version marker removed.
func (r *Release) Version() string {
	return NormalizeVersion(r.TagName)
}

// Summary returns the one-line description for app.
// It is the first line of the body, falling back to "<app> - <name>" and then to app.
func (r *Release) Summary(app string) string {
	line, _, _ := strings.Cut(r.Body, "\n")
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))

	switch {
	case line != "":
	case strings.TrimSpace(r.Name) != "":
		line = app + " - " + strings.TrimSpace(r.Name)
	default:
		line = app
	}

	return truncate(line, MaxDescriptionLength)
}

// NormalizeVersion strips one leading "v" or "V" from tag.
func NormalizeVersion(tag string) string {
	tag = strings.TrimSpace(tag)
	if strings.HasPrefix(tag, "v") || strings.HasPrefix(tag, "V") {
		return tag[1:]
	}

	return tag
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return strings.TrimSpace(string(runes[:limit]))
}
