package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "version-check.json"
	// DefaultCacheMaxAge is how long a version check is reused.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache holds the outcome of the last version check.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	ReleaseURL      string    `json:"release_url"`
	DownloadURL     string    `json:"download_url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// LoadCache reads the version cache from dir.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(dir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the version cache to dir.
func SaveCache(dir string, cache *VersionCache) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0600); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is nil or older than maxAge at now.
func IsCacheStale(cache *VersionCache, maxAge time.Duration, now time.Time) bool {
	if cache == nil {
		return true
	}
	return now.Sub(cache.CheckedAt) > maxAge
}

// Check returns the cached result when it is fresh and was recorded for the
// running version; otherwise it asks GitHub and refreshes the cache. force
// skips the cache. A cache that cannot be read or written is logged as a
// warning and never fails the check.
func (u *Updater) Check(ctx context.Context, dir string, force bool) (*VersionCache, error) {
	if !force {
		cache, err := LoadCache(dir)
		if err != nil {
			u.logger.Warn("couldn't read version cache", "error", err)
		}
		if err == nil && cache != nil && cache.CurrentVersion == u.currentVersion &&
			!IsCacheStale(cache, DefaultCacheMaxAge, u.now()) {
			return cache, nil
		}
	}

	release, err := u.CheckLatestVersion(ctx)
	if err != nil {
		return nil, err
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		// Development builds have no semver; any release is newer.
		if u.currentVersion != "dev" {
			return nil, fmt.Errorf("comparing versions: %w", err)
		}
		available = true
	}

	cache := &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       u.now(),
		UpdateAvailable: available,
	}
	if asset, ok := release.WorkflowAsset(); ok {
		cache.DownloadURL = asset.DownloadURL
	}
	if err := SaveCache(dir, cache); err != nil {
		u.logger.Warn("couldn't save version cache", "dir", dir, "error", err)
	}
	return cache, nil
}
