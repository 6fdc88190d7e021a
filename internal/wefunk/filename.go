package wefunk

import (
	"context"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/handiism/wefunk-cue/internal/model"
)

// RedirectResolver follows a redirect chain without transferring a body.
// *http.Client from internal/http satisfies it.
type RedirectResolver interface {
	ResolveRedirect(ctx context.Context, rawURL string) (*url.URL, error)
}

// FilenameResolver determines a show's media filename by probing the
// stream redirect endpoint.
type FilenameResolver struct {
	site   model.SiteConfig
	client RedirectResolver
	logger *zap.Logger
}

// NewFilenameResolver creates a FilenameResolver. A nil logger disables
// diagnostics.
func NewFilenameResolver(site model.SiteConfig, client RedirectResolver, logger *zap.Logger) *FilenameResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilenameResolver{site: site, client: client, logger: logger}
}

// Probe asks the stream endpoint where a show's audio lives and returns the
// base filename of the final URL. The probe is bounded by the site's probe
// timeout.
//
// ok is false when the probe fails for any reason or the filename does not
// look like a show media file (wrong extension or missing brand marker).
// Errors are never returned; callers fall back to model.SynthesizeMedia.
func (r *FilenameResolver) Probe(ctx context.Context, number int) (model.MediaReference, bool) {
	if r.site.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.site.ProbeTimeout)
		defer cancel()
	}

	target, err := r.client.ResolveRedirect(ctx, r.site.StreamProbeURL(number))
	if err != nil {
		r.logger.Debug("stream probe failed", zap.Int("show", number), zap.Error(err))
		return model.MediaReference{}, false
	}

	filename := path.Base(target.EscapedPath())
	if !r.accepts(filename) {
		r.logger.Debug("stream probe rejected",
			zap.Int("show", number),
			zap.String("filename", filename))
		return model.MediaReference{}, false
	}

	return model.MediaReference{Filename: filename, Observed: true}, true
}

func (r *FilenameResolver) accepts(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), strings.ToLower(r.site.MediaExtension)) &&
		strings.Contains(filename, r.site.FilenameMarker)
}
