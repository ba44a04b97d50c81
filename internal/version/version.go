// Package version carries build metadata and release comparison helpers
// for the update check.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// Build metadata, injected at link time.
//
//nolint:gochecknoglobals // Set via -ldflags
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders the build metadata on one line.
func String() string {
	s := Version
	if Commit != "" {
		s += " (" + Commit + ")"
	}
	if Date != "" {
		s += " built " + Date
	}
	return s
}

const (
	// DefaultBaseURL is the GitHub API base URL.
	DefaultBaseURL = "https://api.github.com"

	// releaseOwner and releaseRepo locate the project's releases.
	releaseOwner = "0x1723"
	releaseRepo  = "mfbldr"

	httpTimeout     = 30 * time.Second
	maxResponseBody = 64 * 1024
)

// ErrReleaseCheckFailed indicates the GitHub release lookup failed.
var ErrReleaseCheckFailed = errors.New("release check failed")

// Release is the subset of a GitHub release the update check uses.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// Client fetches releases from the GitHub API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a release client. An empty baseURL uses the GitHub API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: httpTimeout},
		userAgent:  fmt.Sprintf("mfbldr/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH),
	}
}

// Latest fetches the project's latest published release.
func (c *Client) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, releaseOwner, releaseRepo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrReleaseCheckFailed, resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}

	return &release, nil
}

// IsNewer reports whether latest is a newer release than current.
// Development builds and commit-hash versions always count as older.
func IsNewer(current, latest string) bool {
	return compare(latest, current) > 0
}

// compare returns 1, 0, or -1 as a is newer than, equal to, or older
// than b.
func compare(a, b string) int {
	a = normalize(a)
	b = normalize(b)

	aDev := a == "" || a == "dev"
	bDev := b == "" || b == "dev"
	switch {
	case aDev && bDev:
		return 0
	case aDev:
		return -1
	case bDev:
		return 1
	}

	av := parseParts(a)
	bv := parseParts(b)
	for i := 0; i < 3; i++ {
		var x, y int
		if i < len(av) {
			x = av[i]
		}
		if i < len(bv) {
			y = bv[i]
		}
		if x != y {
			if x > y {
				return 1
			}
			return -1
		}
	}
	return 0
}

// normalize strips the v prefix, whitespace, and pre-release or build
// metadata suffixes.
func normalize(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "v")
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}
	return version
}

func parseParts(version string) []int {
	parts := strings.Split(version, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		var n int
		if _, err := fmt.Sscanf(p, "%d", &n); err == nil {
			out = append(out, n)
		}
	}
	return out
}
