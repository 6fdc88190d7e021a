package wefunk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/wefunk-cue/internal/http"
	"github.com/handiism/wefunk-cue/internal/model"
)

// ErrShowNotFound is returned when the site redirects a show page request
// to its show listing or home page instead of serving the show.
var ErrShowNotFound = errors.New("show not found")

// PageFetcher fetches a page and reports where the redirect chain ended.
// *http.Client satisfies it.
type PageFetcher interface {
	GetPage(ctx context.Context, rawURL string) (*http.Page, error)
}

// FetchShowPage downloads the page of a show.
//
// Returns ErrShowNotFound when the final URL is the show listing or the
// site root, and the transport error otherwise.
func FetchShowPage(ctx context.Context, fetcher PageFetcher, site model.SiteConfig, number int) ([]byte, error) {
	page, err := fetcher.GetPage(ctx, site.ShowPageURL(number))
	if err != nil {
		return nil, fmt.Errorf("fetch show %d: %w", number, err)
	}

	if page.FinalURL != nil {
		finalPath := page.FinalURL.Path
		if strings.Contains(finalPath, "/shows") || strings.Trim(finalPath, "/") == "" {
			return nil, fmt.Errorf("show %d redirected to %s: %w", number, page.FinalURL, ErrShowNotFound)
		}
	}

	return page.Body, nil
}
