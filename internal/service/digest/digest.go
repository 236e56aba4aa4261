package digest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/docker/go-units"

	"github.com/oshokin/scoop-manifest/internal/domain/release"
	"github.com/oshokin/scoop-manifest/internal/failure"
	"github.com/oshokin/scoop-manifest/internal/logger"
	"github.com/oshokin/scoop-manifest/internal/service/common"
)

const (
	// MaxAssetSize is the largest asset the computer agrees to download.
	MaxAssetSize int64 = 100 * units.MiB

	// chunkSize is the read buffer used while hashing.
	chunkSize = 8 * units.KiB
)

// Computer hashes remote resources.
type Computer struct {
	// client is the session shared with the resolver.
	client *common.Client
	// maxSize is the download ceiling in bytes.
	maxSize int64
}

// Option configures a Computer.
type Option func(*Computer)

// WithMaxSize overrides the download ceiling.
func WithMaxSize(size int64) Option {
	return func(c *Computer) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// NewComputer creates a Computer downloading through client.
func NewComputer(client *common.Client, opts ...Option) *Computer {
	c := &Computer{
		client:  client,
		maxSize: MaxAssetSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MaxSize returns the download ceiling in bytes.
func (c *Computer) MaxSize() int64 {
	return c.maxSize
}

// CheckDeclaredSize fails when the size published with the asset exceeds the ceiling.
func (c *Computer) CheckDeclaredSize(asset release.Asset) error {
	if asset.Size > c.maxSize {
		return c.tooLarge(asset.URL, asset.Size)
	}

	return nil
}

// Compute downloads url and returns the lowercase hex SHA-256 of the body.
func (c *Computer) Compute(ctx context.Context, url string) (string, error) {
	downloadCtx, cancel := c.client.DownloadContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", failure.Wrap(failure.Validation, err, "invalid asset URL %s", url)
	}

	response, err := c.client.HTTP().Do(req)
	if err != nil {
		return "", failure.Wrap(failure.Network, err, "download %s", url)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return "", failure.New(failure.Network, "download %s: unexpected status %s", url, response.Status)
	}

	// Declared size is checked before a single body byte is read.
	if response.ContentLength > c.maxSize {
		return "", c.tooLarge(url, response.ContentLength)
	}

	hasher := sha256.New()
	buffer := make([]byte, chunkSize)

	// One extra byte tells an oversized undeclared body from one exactly at the limit.
	written, err := io.CopyBuffer(hasher, io.LimitReader(response.Body, c.maxSize+1), buffer)
	if err != nil {
		return "", failure.Wrap(failure.Network, err, "download %s", url)
	}

	if written > c.maxSize {
		return "", c.tooLarge(url, written)
	}

	sum := hex.EncodeToString(hasher.Sum(nil))

	logger.DebugKV(ctx, "Computed digest",
		"url", url,
		"size", units.BytesSize(float64(written)),
		"sha256", sum)

	return sum, nil
}

func (c *Computer) tooLarge(url string, size int64) error {
	return failure.Wrap(failure.AssetTooLarge, errTooLarge,
		"%s is %s, the limit is %s", url, units.BytesSize(float64(size)), units.BytesSize(float64(c.maxSize)))
}

// errTooLarge is the cause attached to every AssetTooLarge failure.
var errTooLarge = errors.New("asset exceeds download ceiling")
