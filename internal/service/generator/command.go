package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/oshokin/scoop-manifest/internal/config"
	"github.com/oshokin/scoop-manifest/internal/domain/manifest"
	"github.com/oshokin/scoop-manifest/internal/failure"
	"github.com/oshokin/scoop-manifest/internal/logger"
	manifestrepo "github.com/oshokin/scoop-manifest/internal/repository/manifest"
	releaserepo "github.com/oshokin/scoop-manifest/internal/repository/release"
	"github.com/oshokin/scoop-manifest/internal/service/common"
	"github.com/oshokin/scoop-manifest/internal/service/digest"
)

// Options are inputs accepted by the generator entry point.
type Options struct {
	// Repository is the "owner/name" identifier.
	Repository string
	// AppName defaults to the repository name.
	AppName string
	// BinName defaults to "<app>.exe" in lower case.
	BinName string
	// ConfigPath is the optional path to a settings YAML file.
	ConfigPath string
	// Token overrides the token from the settings file.
	Token string
	// License overrides the license from the settings file.
	License string
	// LogLevel overrides the log level from the settings file.
	LogLevel string
	// OutputDir overrides the output directory from the settings file.
	OutputDir string
	// APIURL overrides the API base URL from the settings file, for GitHub Enterprise.
	APIURL string
	// MaxAssetSize lowers or raises the download ceiling when positive.
	MaxAssetSize int64
}

// Result describes a successful run.
type Result struct {
	// Path is where the manifest was written.
	Path string
	// Manifest is the written manifest.
	Manifest *manifest.Manifest
}

// Run executes the generation workflow and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	ctx = logger.WithName(ctx, "scoop-manifest")

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, failure.Wrap(failure.Validation, err, "load settings")
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	client, err := common.NewClient(cfg.APIURL,
		common.WithToken(cfg.Token),
		common.WithCallTimeout(cfg.Timeout),
		common.WithDownloadTimeout(cfg.DownloadTimeout))
	if err != nil {
		return nil, failure.Wrap(failure.Validation, err, "create HTTP client")
	}

	logger.DebugKV(ctx, "HTTP client ready",
		"api", client.APIURL().String(),
		"authenticated", client.HasToken())

	gen := &generator{
		resolver: releaserepo.NewGitHubResolver(client),
		hasher:   digest.NewComputer(client, digest.WithMaxSize(opts.MaxAssetSize)),
		store:    manifestrepo.NewFileRepository(cfg.OutputDir),
		license:  cfg.License,
	}

	result, err := gen.Run(ctx, opts.Repository, opts.AppName, opts.BinName)
	if err != nil {
		logger.ErrorKV(ctx, "Manifest generation failed",
			"kind", failure.KindOf(err).String(),
			"error", err)

		return nil, err
	}

	logger.InfoKV(ctx, "Manifest generation completed", "path", result.Path)

	return result, nil
}

// loadConfig reads the settings file and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		value  string
		target *string
	}{
		{opts.Token, &cfg.Token},
		{opts.License, &cfg.License},
		{opts.LogLevel, &cfg.LogLevel},
		{opts.OutputDir, &cfg.OutputDir},
		{opts.APIURL, &cfg.APIURL},
	}

	for _, o := range overrides {
		if value := strings.TrimSpace(o.value); value != "" {
			*o.target = value
		}
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return cfg, nil
}
