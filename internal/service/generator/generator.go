package generator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/oshokin/scoop-manifest/internal/domain/arch"
	"github.com/oshokin/scoop-manifest/internal/domain/manifest"
	"github.com/oshokin/scoop-manifest/internal/domain/release"
	"github.com/oshokin/scoop-manifest/internal/failure"
	"github.com/oshokin/scoop-manifest/internal/logger"
	manifestrepo "github.com/oshokin/scoop-manifest/internal/repository/manifest"
	releaserepo "github.com/oshokin/scoop-manifest/internal/repository/release"
)

// hasher downloads assets and returns their digests.
type hasher interface {
	CheckDeclaredSize(asset release.Asset) error
	Compute(ctx context.Context, url string) (string, error)
}

// generator holds the collaborators of a single run.
// It is unexported; callers use Run, which builds it from settings.
type generator struct {
	resolver releaserepo.Resolver
	hasher   hasher
	store    manifestrepo.Repository
	// license is written to the manifest when set.
	license string
}

// Run resolves, classifies, hashes, builds and finally saves the manifest.
func (g *generator) Run(ctx context.Context, repository, appName, binName string) (*Result, error) {
	repo, err := release.ParseRepository(repository)
	if err != nil {
		return nil, err
	}

	app := strings.TrimSpace(appName)
	if app == "" {
		app = repo.Name
	}

	// Reject unusable names before any request is made.
	if _, err = manifestrepo.FileName(app); err != nil {
		return nil, err
	}

	bin := strings.TrimSpace(binName)
	if bin == "" {
		bin = strings.ToLower(app + ".exe")
	}

	ctx = logger.WithKV(ctx, "repository", repo.String())

	logger.Info(ctx, "Fetching the latest release")

	rel, err := g.resolver.Latest(ctx, repo)
	if err != nil {
		return nil, err
	}

	version := rel.Version()
	if version == "" {
		return nil, failure.New(failure.Validation, "latest release of %s has an empty tag", repo)
	}

	logger.InfoKV(ctx, "Resolved release",
		"tag", rel.TagName,
		"prerelease", rel.Prerelease,
		"assets", len(rel.Assets))

	if !semver.IsValid("v" + version) {
		logger.WarnKV(ctx, "Release tag is not a semantic version, autoupdate may need manual edits",
			"version", version)
	}

	selection, err := arch.Select(rel.Assets, func(bucket arch.Bucket, previous, next release.Asset) {
		logger.WarnKV(ctx, "Several assets match one architecture, keeping the last one",
			"bucket", bucket,
			"dropped", previous.Name,
			"kept", next.Name)
	})
	if err != nil {
		return nil, err
	}

	buckets := selection.Buckets()

	// Every declared size is checked before the first download starts.
	for _, bucket := range buckets {
		if err = g.hasher.CheckDeclaredSize(selection[bucket]); err != nil {
			return nil, err
		}
	}

	entries, err := g.hashAssets(ctx, selection, buckets, version)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Build(&manifest.Input{
		Version:     version,
		Description: rel.Summary(app),
		Homepage:    repo.Homepage(),
		License:     firstNonEmpty(g.license, rel.License),
		Bin:         bin,
		Entries:     entries,
	})
	if err != nil {
		return nil, err
	}

	path, err := g.store.Save(ctx, app, m)
	if err != nil {
		return nil, fmt.Errorf("save manifest for %s: %w", app, err)
	}

	logger.InfoKV(ctx, "Saved manifest",
		"path", path,
		"version", m.Version,
		"architectures", len(entries))

	return &Result{Path: path, Manifest: m}, nil
}

// hashAssets computes the digest of every selected asset, one at a time.
func (g *generator) hashAssets(
	ctx context.Context,
	selection arch.Selection,
	buckets []arch.Bucket,
	version string,
) ([]manifest.Entry, error) {
	entries := make([]manifest.Entry, 0, len(buckets))

	for _, bucket := range buckets {
		asset := selection[bucket]

		logger.InfoKV(ctx, "Downloading and hashing", "bucket", bucket, "asset", asset.Name)

		hash, err := g.hasher.Compute(ctx, asset.URL)
		if err != nil {
			return nil, err
		}

		if !manifest.HasVersion(asset.URL, version) {
			logger.WarnKV(ctx, "Asset URL does not contain the version, autoupdate will reuse it literally",
				"url", asset.URL)
		}

		entries = append(entries, manifest.Entry{
			Bucket: bucket,
			URL:    asset.URL,
			Hash:   hash,
		})
	}

	return entries, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
