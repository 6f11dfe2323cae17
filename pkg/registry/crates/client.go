// Package crates provides a client for the crates.io registry API, used to
// enrich locally resolved crates with registry-side data (latest version,
// download counts).
package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonnieCache/cargo-open/pkg/buildinfo"
	"github.com/JonnieCache/cargo-open/pkg/cache"
	"github.com/JonnieCache/cargo-open/pkg/registry"
)

// CrateInfo holds registry metadata for a published crate.
//
// Version is crates.io's max_version (the highest published version);
// StableVersion is max_stable_version and may be empty when only
// pre-releases exist. A Downloads value of 0 is valid for newly published
// crates. This struct is safe for concurrent reads after construction.
type CrateInfo struct {
	Name            string // Crate name (never empty in valid info)
	Version         string // Highest published version
	StableVersion   string // Highest stable version (may be empty)
	Description     string // Crate description (may be empty)
	Repository      string // Repository URL (may be empty)
	HomePage        string // Homepage URL (may be empty)
	Documentation   string // Docs URL (may be empty)
	Downloads       int    // Total download count across all versions
	RecentDownloads int    // Downloads in the last 90 days
}

// Latest returns the version an upgrade would target: the stable version
// when one exists, otherwise the highest published version.
func (i *CrateInfo) Latest() string {
	if i.StableVersion != "" {
		return i.StableVersion
	}
	return i.Version
}

// Client provides access to the crates.io package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a crates.io client with the given cache backend.
//
// Responses are cached under the "crates:" namespace for cacheTTL. The
// client includes a User-Agent header as required by crates.io API policy.
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"User-Agent": fmt.Sprintf("cargo-open/%s (github.com/JonnieCache/cargo-open)", buildinfo.Version),
	}
	return &Client{
		Client:  registry.NewClient(backend, "crates:", cacheTTL, headers),
		baseURL: "https://crates.io/api/v1",
	}
}

// FetchCrate retrieves metadata for a crate from crates.io.
//
// The crate parameter is case-sensitive and must match the published crate
// name exactly. If refresh is true, the cache is bypassed and a fresh API
// call is made.
//
// Returns:
//   - CrateInfo populated with metadata on success
//   - [registry.ErrNotFound] if the crate doesn't exist
//   - [registry.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Other errors for JSON decoding failures
//
// The returned CrateInfo pointer is never nil if err is nil.
// This method is safe for concurrent use.
func (c *Client) FetchCrate(ctx context.Context, crate string, refresh bool) (*CrateInfo, error) {
	var info CrateInfo
	err := c.Cached(ctx, crate, refresh, &info, func() error {
		return c.fetch(ctx, crate, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, crate string, info *CrateInfo) error {
	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, crate), &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	*info = CrateInfo{
		Name:            data.Crate.Name,
		Version:         data.Crate.MaxVersion,
		StableVersion:   data.Crate.MaxStableVersion,
		Description:     data.Crate.Description,
		Repository:      data.Crate.Repository,
		HomePage:        data.Crate.HomePage,
		Documentation:   data.Crate.Documentation,
		Downloads:       data.Crate.Downloads,
		RecentDownloads: data.Crate.RecentDownloads,
	}
	return nil
}

type crateResponse struct {
	Crate struct {
		Name             string `json:"name"`
		MaxVersion       string `json:"max_version"`
		MaxStableVersion string `json:"max_stable_version"`
		Description      string `json:"description"`
		Repository       string `json:"repository"`
		HomePage         string `json:"homepage"`
		Documentation    string `json:"documentation"`
		Downloads        int    `json:"downloads"`
		RecentDownloads  int    `json:"recent_downloads"`
	} `json:"crate"`
}
