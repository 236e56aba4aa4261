package release

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormalizeVersion verifies that only a single leading marker is removed.
func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"v2.3.0":  "2.3.0",
		"V1.0":    "1.0",
		"2.3.0":   "2.3.0",
		"vv1.0.0": "v1.0.0",
		" v0.1 ":  "0.1",
		"":        "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeVersion(in), in)
	}

	r := &Release{TagName: "v2.3.0"}
	require.Equal(t, "2.3.0", r.Version())
}

// TestSummary checks first-line extraction and the fallbacks for empty bodies.
func TestSummary(t *testing.T) {
	t.Parallel()

	r := &Release{Name: "Spring", Body: "Fast torrent client\r\n\n## Changes\n- stuff"}
	require.Equal(t, "Fast torrent client", r.Summary("rqbit"))

	r = &Release{Name: "Spring", Body: "\nsecond line"}
	require.Equal(t, "rqbit - Spring", r.Summary("rqbit"))

	r = &Release{}
	require.Equal(t, "rqbit", r.Summary("rqbit"))
}

// TestSummary_Truncates ensures long descriptions are cut at the rune limit.
func TestSummary_Truncates(t *testing.T) {
	t.Parallel()

	r := &Release{Body: strings.Repeat("ж", MaxDescriptionLength+50)}
	got := r.Summary("app")
	require.Equal(t, MaxDescriptionLength, len([]rune(got)))
}
