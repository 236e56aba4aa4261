package manifest

import (
	"strings"

	"github.com/oshokin/scoop-manifest/internal/domain/arch"
	"github.com/oshokin/scoop-manifest/internal/failure"
)

const (
	// VersionPlaceholder is substituted by Scoop when it expands autoupdate URLs.
	VersionPlaceholder = "$version"

	// UnknownLicense is written when the license could not be determined.
	UnknownLicense = "unknown"

	// CheckverGitHub tells Scoop to watch the GitHub releases of the homepage.
	CheckverGitHub = "github"
)

// Manifest is the Scoop app manifest written to disk.
type Manifest struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	License     string `json:"license"`

	// Flat shape, set only when exactly one architecture matched.
	URL  string `json:"url,omitempty"`
	Hash string `json:"hash,omitempty"`
	Bin  string `json:"bin,omitempty"`

	// Nested shape, set only when several architectures matched.
	Architecture map[arch.Bucket]Target `json:"architecture,omitempty"`

	Checkver   string     `json:"checkver"`
	Autoupdate Autoupdate `json:"autoupdate"`
}

// Target is the download for one architecture.
type Target struct {
	URL  string `json:"url"`
	Hash string `json:"hash"`
	Bin  string `json:"bin"`
}

// Autoupdate holds URL templates re-expanded by Scoop for future versions.
type Autoupdate struct {
	URL          string                           `json:"url,omitempty"`
	Architecture map[arch.Bucket]AutoupdateTarget `json:"architecture,omitempty"`
}

// AutoupdateTarget is the URL template for one architecture.
type AutoupdateTarget struct {
	URL string `json:"url"`
}

// Entry is a selected asset with its digest.
type Entry struct {
	Bucket arch.Bucket
	URL    string
	Hash   string
}

// Input collects everything Build needs.
type Input struct {
	// Version is already normalized (no leading "v").
	Version     string
	Description string
	Homepage    string
	License     string
	Bin         string
	Entries     []Entry
}

// IsFlat reports whether the manifest uses the single-target shape.
func (m *Manifest) IsFlat() bool {
	return len(m.Architecture) == 0
}

// Build assembles a manifest. It fails when in has no entries.
func Build(in *Input) (*Manifest, error) {
	if len(in.Entries) == 0 {
		return nil, failure.New(failure.NoAssets, "manifest needs at least one architecture")
	}

	if in.Version == "" {
		return nil, failure.New(failure.Validation, "manifest version is empty")
	}

	license := strings.TrimSpace(in.License)
	if license == "" {
		license = UnknownLicense
	}

	m := &Manifest{
		Version:     in.Version,
		Description: in.Description,
		Homepage:    in.Homepage,
		License:     license,
		Checkver:    CheckverGitHub,
	}

	if len(in.Entries) == 1 {
		entry := in.Entries[0]

		m.URL = entry.URL
		m.Hash = entry.Hash
		m.Bin = in.Bin
		m.Autoupdate.URL = URLTemplate(entry.URL, in.Version)

		return m, nil
	}

	m.Architecture = make(map[arch.Bucket]Target, len(in.Entries))
	m.Autoupdate.Architecture = make(map[arch.Bucket]AutoupdateTarget, len(in.Entries))

	for _, entry := range in.Entries {
		m.Architecture[entry.Bucket] = Target{
			URL:  entry.URL,
			Hash: entry.Hash,
			Bin:  in.Bin,
		}
		m.Autoupdate.Architecture[entry.Bucket] = AutoupdateTarget{
			URL: URLTemplate(entry.URL, in.Version),
		}
	}

	return m, nil
}

// URLTemplate replaces every occurrence of version in rawURL with the placeholder.
// A URL that does not contain the version is returned unchanged.
func URLTemplate(rawURL, version string) string {
	if version == "" {
		return rawURL
	}

	return strings.ReplaceAll(rawURL, version, VersionPlaceholder)
}

// HasVersion reports whether URLTemplate would substitute anything.
func HasVersion(rawURL, version string) bool {
	return version != "" && strings.Contains(rawURL, version)
}
