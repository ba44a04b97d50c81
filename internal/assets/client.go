package assets

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/0x1723/mfbldr/internal/chain"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

const (
	// httpTimeout is the default HTTP request timeout.
	httpTimeout = 30 * time.Second

	// maxResponseBody is the maximum response body size to read (4 MB).
	// Asset pages carry image URLs and metadata, so the cap is generous.
	maxResponseBody = 4 << 20
)

// indexAsset is one asset record as the index returns it.
type indexAsset struct {
	TokenID  string `json:"token_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// indexResponse is the asset index page envelope.
type indexResponse struct {
	Assets []indexAsset `json:"assets"`
}

// Client queries the asset index for tokens owned by an address.
type Client struct {
	baseURL     string
	apiKey      string
	collection  string
	pageSize    int
	httpClient  *http.Client
	rateLimiter *chain.RateLimiter
}

// ClientOptions configures the asset index client.
type ClientOptions struct {
	// APIKey is sent as X-API-KEY when set. Optional for public indexes.
	APIKey string
	// PageSize caps the number of assets per query. Defaults to 50,
	// which is the index's own maximum.
	PageSize int
	// HTTPClient overrides the default HTTP client (useful for testing).
	HTTPClient *http.Client
	// RateLimiter overrides the default limiter.
	RateLimiter *chain.RateLimiter
}

// NewClient creates an asset index client for the given base URL and
// collection slug.
func NewClient(baseURL, collection string, opts *ClientOptions) *Client {
	c := &Client{
		baseURL:    baseURL,
		collection: collection,
		pageSize:   50,
		httpClient: &http.Client{
			Timeout: httpTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		rateLimiter: chain.DefaultRateLimiter(),
	}

	if opts != nil {
		if opts.APIKey != "" {
			c.apiKey = opts.APIKey
		}
		if opts.PageSize > 0 {
			c.pageSize = opts.PageSize
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		if opts.RateLimiter != nil {
			c.rateLimiter = opts.RateLimiter
		}
	}

	return c
}

// Owned returns the collection tokens owned by the address, in the order
// the index reports them. Any transport, HTTP, or schema failure surfaces
// as a resolution failure so the caller can keep prior state intact.
func (c *Client) Owned(ctx context.Context, owner string) ([]Asset, error) {
	if err := c.rateLimiter.Wait(ctx, "assets"); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("owner", owner)
	params.Set("collection", c.collection)
	params.Set("limit", strconv.Itoa(c.pageSize))

	reqURL := fmt.Sprintf("%s/assets?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, mferr.Wrap(err, "creating asset index request")
	}

	// The key goes in a header rather than the URL to keep it out of
	// server and proxy logs.
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, mferr.Wrap(wrapResolution(err), "querying asset index")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, mferr.Wrap(wrapResolution(err), "reading asset index response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mferr.WithDetails(mferr.ErrResolutionFailed, map[string]string{
			"status": strconv.Itoa(resp.StatusCode),
			"body":   truncate(string(body), 512),
		})
	}

	var page indexResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, mferr.WithDetails(mferr.ErrResolutionFailed, map[string]string{
			"reason": "malformed index response",
			"body":   truncate(string(body), 256),
		})
	}

	out := make([]Asset, 0, len(page.Assets))
	for _, a := range page.Assets {
		if a.TokenID == "" {
			return nil, mferr.WithDetails(mferr.ErrResolutionFailed, map[string]string{
				"reason": "asset record missing token_id",
			})
		}
		out = append(out, Asset{
			TokenID:  a.TokenID,
			Name:     a.Name,
			ImageURL: a.ImageURL,
		})
	}

	return out, nil
}

// wrapResolution tags a low-level failure with the resolution error code.
func wrapResolution(cause error) error {
	return &mferr.ClaimError{
		Code:     "ASSET_RESOLUTION_FAILED",
		Message:  mferr.ErrResolutionFailed.Message,
		Cause:    cause,
		ExitCode: mferr.ErrResolutionFailed.ExitCode,
	}
}

// truncate shortens a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
