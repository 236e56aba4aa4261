package arch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/scoop-manifest/internal/domain/release"
	"github.com/oshokin/scoop-manifest/internal/failure"
)

// TestClassify covers every rule of the heuristic table.
func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		bucket Bucket
		ok     bool
	}{
		{"tool-windows-amd64.zip", Bucket64, true},
		{"tool_x86_64-pc-windows-msvc.zip", Bucket64, true},
		{"Tool-Win64.EXE", Bucket64, true},
		{"tool-x64.7z", Bucket64, true},
		{"app-amd64-v3.exe", Bucket64V3, true},
		{"app_windows_amd64v3.zip", Bucket64V3, true},
		{"app-x86_64_v3.zip", Bucket64V3, true},
		{"app-x86.exe", Bucket32, true},
		{"app-i686-pc-windows-gnu.zip", Bucket32, true},
		{"app-windows-386.zip", Bucket32, true},
		{"app-win32.zip", Bucket32, true},
		{"app.exe", BucketUnknown, true},
		{"app-setup.exe", BucketUnknown, true},
		{"alarm-button.exe", BucketUnknown, true},
		{"tool-1.64.2-windows-i686.zip", Bucket32, true},
		{"tool-windows-386-v1.64.0.zip", Bucket32, true},
		{"tool_0.64.0_windows_x86.exe", Bucket32, true},
		{"tool-2.32.1-windows.zip", BucketUnknown, true},
		{"ripgrep-14.1.0-x86_64-pc-windows-msvc.zip", Bucket64, true},
		{"tool-v1.32.0-win64.zip", Bucket64, true},
		{"tool-2.32.1-amd64-v3.exe", Bucket64V3, true},
		{"tool-386.7z", Bucket32, true},
		{"tool-linux-amd64.zip", "", false},
		{"tool-darwin-amd64.zip", "", false},
		{"tool-macos-x64.zip", "", false},
		{"tool-windows-arm64.zip", "", false},
		{"tool-aarch64-pc-windows-msvc.zip", "", false},
		{"tool-windows-armv7.zip", "", false},
		{"tool-linux-amd64.tar.gz", "", false},
		{"tool-windows-amd64.zip.sha256", "", false},
		{"tool-windows-amd64.zip.sig", "", false},
		{"source.tar.gz", "", false},
		{"checksums.txt", "", false},
	}

	for _, tc := range cases {
		bucket, ok := Classify(tc.name)
		require.Equal(t, tc.ok, ok, tc.name)
		require.Equal(t, tc.bucket, bucket, tc.name)
	}
}

// TestClassify_V3NeverGeneric asserts that a v3 qualifier always wins over the plain 64-bit bucket.
func TestClassify_V3NeverGeneric(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a-amd64-v3.zip", "a.amd64.v3.exe", "a-x64v3.7z", "a-windows-x86-64-v3.zip"} {
		bucket, ok := Classify(name)
		require.True(t, ok, name)
		require.Equal(t, Bucket64V3, bucket, name)
	}
}

// TestSelect_SingleWindowsAsset mirrors a release shipping one Windows and one Linux build.
func TestSelect_SingleWindowsAsset(t *testing.T) {
	t.Parallel()

	assets := []release.Asset{
		{Name: "tool-windows-amd64.zip", URL: "https://example.com/v2.3.0/tool-windows-amd64.zip"},
		{Name: "tool-linux-amd64.tar.gz", URL: "https://example.com/v2.3.0/tool-linux-amd64.tar.gz"},
	}

	got, err := Select(assets, nil)
	require.NoError(t, err)
	require.Equal(t, Selection{Bucket64: assets[0]}, got)
	require.Equal(t, []Bucket{Bucket64}, got.Buckets())
}

// TestSelect_MultipleBuckets verifies that distinct architectures land in distinct buckets.
func TestSelect_MultipleBuckets(t *testing.T) {
	t.Parallel()

	assets := []release.Asset{
		{Name: "app-x86.exe", URL: "u32"},
		{Name: "app-amd64-v3.exe", URL: "uv3"},
	}

	got, err := Select(assets, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "uv3", got[Bucket64V3].URL)
	require.Equal(t, "u32", got[Bucket32].URL)
	require.Equal(t, []Bucket{Bucket64V3, Bucket32}, got.Buckets())
}

// TestSelect_LaterAssetWins checks the tie-break and the collision callback.
func TestSelect_LaterAssetWins(t *testing.T) {
	t.Parallel()

	assets := []release.Asset{
		{Name: "app-amd64.exe", URL: "first"},
		{Name: "app-amd64.zip", URL: "second"},
	}

	var collisions int

	got, err := Select(assets, func(bucket Bucket, previous, next release.Asset) {
		collisions++

		require.Equal(t, Bucket64, bucket)
		require.Equal(t, "first", previous.URL)
		require.Equal(t, "second", next.URL)
	})
	require.NoError(t, err)
	require.Equal(t, 1, collisions)
	require.Equal(t, "second", got[Bucket64].URL)
}

// TestSelect_NoAssets ensures an empty selection is reported as NoAssets.
func TestSelect_NoAssets(t *testing.T) {
	t.Parallel()

	_, err := Select([]release.Asset{
		{Name: "tool-linux-amd64.tar.gz"},
		{Name: "tool-darwin-arm64.zip"},
	}, nil)
	require.ErrorIs(t, err, failure.ErrNoAssets)

	_, err = Select(nil, nil)
	require.ErrorIs(t, err, failure.ErrNoAssets)
}
