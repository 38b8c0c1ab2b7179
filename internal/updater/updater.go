package updater

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	githubAPIBase = "https://api.github.com"
	assetSuffix   = ".alfredworkflow"
)

// Release represents a GitHub release.
type Release struct {
	Version   string    `json:"tag_name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// WorkflowAsset returns the .alfredworkflow bundle attached to r, if any.
func (r *Release) WorkflowAsset() (Asset, bool) {
	for _, a := range r.Assets {
		if strings.HasSuffix(a.Name, assetSuffix) {
			return a, true
		}
	}
	return Asset{}, false
}

// Updater looks up releases for one repository.
type Updater struct {
	currentVersion string
	repo           string
	apiBase        string
	httpClient     *http.Client
	now            func() time.Time
	logger         *slog.Logger
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase points the updater at a GitHub API mirror.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		if base != "" {
			u.apiBase = base
		}
	}
}

// WithClock sets the time source for cache freshness.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		u.now = now
	}
}

// WithLogger sets the logger for cache problems that do not fail a check.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		u.logger = l
	}
}

// New creates an Updater for repo ("owner/name") running currentVersion.
func New(currentVersion, repo string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		repo:           repo,
		apiBase:        githubAPIBase,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		now:            time.Now,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}
