// Package http provides the HTTP client used to talk to the radio site.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Show page fetches that expose the final redirect target
//   - HEAD probes that resolve stream redirects without downloading audio
//
// # Basic Usage
//
//	client := http.NewClient("Mozilla/5.0")
//
//	page, err := client.GetPage(ctx, site.ShowPageURL(386))
//	fmt.Println(page.FinalURL, len(page.Body))
//
//	target, err := client.ResolveRedirect(ctx, site.StreamProbeURL(386))
package http
