package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client wraps HTTP operations with site-specific configuration.
//
// Client provides:
//   - A configured User-Agent header (the site rejects unknown agents)
//   - Page fetches that report the URL the redirect chain ended on
//   - Body-less HEAD probes that resolve redirect targets
//
// Example usage:
//
//	client := NewClient("Mozilla/5.0")
//
//	// Fetch a show page
//	page, err := client.GetPage(ctx, "http://www.wefunkradio.com/show/386")
//
//	// Resolve where the stream endpoint redirects to
//	target, err := client.ResolveRedirect(ctx, "https://www.wefunkradio.com/mirror/stream/386")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The client has no overall timeout; page fetches rely on the transport
// defaults and probes carry their own deadline through the context.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  userAgent,
	}
}

// Page is a fetched document together with the URL it was finally served from.
type Page struct {
	// Body is the raw response body.
	Body []byte

	// FinalURL is the URL after following redirects.
	FinalURL *url.URL
}

// GetPage performs a GET request and returns the body and final URL.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx
//   - Reading the body fails
func (c *Client) GetPage(ctx context.Context, rawURL string) (*Page, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Page{Body: body, FinalURL: resp.Request.URL}, nil
}

// ResolveRedirect sends a HEAD request, follows the redirect chain and
// returns the URL it ended on. No body is transferred.
//
// Returns an error if the request fails or the final status is not 2xx.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
//	defer cancel()
//	target, err := client.ResolveRedirect(ctx, streamURL)
//	fmt.Println(path.Base(target.Path))
func (c *Client) ResolveRedirect(ctx context.Context, rawURL string) (*url.URL, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return resp.Request.URL, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	return c.httpClient.Do(req)
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
