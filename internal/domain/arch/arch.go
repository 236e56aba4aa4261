package arch

import (
	"regexp"
	"strings"

	"github.com/oshokin/scoop-manifest/internal/domain/release"
	"github.com/oshokin/scoop-manifest/internal/failure"
)

// Bucket is the architecture label of a selected asset.
type Bucket string

const (
	// Bucket64V3 is x86-64 with the v3 microarchitecture level (AVX2).
	Bucket64V3 Bucket = "64bit-v3"
	// Bucket64 is generic x86-64.
	Bucket64 Bucket = "64bit"
	// Bucket32 is 32-bit x86.
	Bucket32 Bucket = "32bit"
	// BucketUnknown holds Windows assets without an architecture token.
	BucketUnknown Bucket = "unknown"
)

// Buckets lists every bucket in priority order.
func Buckets() []Bucket {
	return []Bucket{Bucket64V3, Bucket64, Bucket32, BucketUnknown}
}

// Selection maps a bucket to the asset chosen for it.
type Selection map[Bucket]release.Asset

// Buckets returns the selected buckets in priority order.
func (s Selection) Buckets() []Bucket {
	result := make([]Bucket, 0, len(s))

	for _, bucket := range Buckets() {
		if _, ok := s[bucket]; ok {
			result = append(result, bucket)
		}
	}

	return result
}

// Token patterns are matched against lowercased names; a token must be
// delimited by a non-alphanumeric character or the string boundary.
const (
	tokenStart = `(?:^|[^a-z0-9])`
	tokenEnd   = `(?:[^a-z0-9]|$)`
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	foreignPattern = regexp.MustCompile(tokenStart +
		`(?:linux|darwin|macos|osx|freebsd|openbsd|netbsd|android|ios|arm|arm64|armhf|armv\d+|aarch64)` + tokenEnd)
	v3Pattern  = regexp.MustCompile(tokenStart + `(?:amd64|x86[-_]64|x64)[-_.]?v3` + tokenEnd)
	x64Pattern = regexp.MustCompile(tokenStart + `(?:amd64|x86[-_]64|x64|win64|64bit)` + tokenEnd)
	x86Pattern = regexp.MustCompile(tokenStart + `(?:x86|i386|i686|386|win32|32bit|32)` + tokenEnd)

	// Dotted numeric runs such as "1.64.2" or "v2.32.1" are version numbers.
	versionPattern = regexp.MustCompile(`(^|[^a-z0-9])v?\d+(?:\.\d+)+([^a-z0-9]|$)`)

	binaryExtensions = []string{".exe", ".zip", ".7z"}
)

// IsBinary reports whether name ends with an executable or archive extension
// Scoop can install from.
func IsBinary(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// Classify returns the bucket for an asset file name.
// The second result is false when the asset is not a Windows binary.
func Classify(name string) (Bucket, bool) {
	if !IsBinary(name) {
		return "", false
	}

	name = versionPattern.ReplaceAllString(strings.ToLower(name), "${1}${2}")

	// Other platforms win over architecture tokens: "tool-linux-amd64.zip" is not ours.
	switch {
	case foreignPattern.MatchString(name):
		return "", false
	case v3Pattern.MatchString(name):
		return Bucket64V3, true
	case x64Pattern.MatchString(name):
		return Bucket64, true
	case x86Pattern.MatchString(name):
		return Bucket32, true
	default:
		return BucketUnknown, true
	}
}

// Select classifies assets in order. A later asset replaces an earlier one in
// the same bucket; replaced is called for each such collision when non-nil.
func Select(assets []release.Asset, replaced func(bucket Bucket, previous, next release.Asset)) (Selection, error) {
	selection := make(Selection, len(Buckets()))

	for _, asset := range assets {
		bucket, ok := Classify(asset.Name)
		if !ok {
			continue
		}

		if previous, exists := selection[bucket]; exists && replaced != nil {
			replaced(bucket, previous, asset)
		}

		selection[bucket] = asset
	}

	if len(selection) == 0 {
		return nil, failure.New(failure.NoAssets, "no Windows assets found among %d release files", len(assets))
	}

	return selection, nil
}
