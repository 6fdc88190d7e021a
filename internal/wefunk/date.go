package wefunk

import (
	"bytes"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/handiism/wefunk-cue/internal/model"
)

const dateLayout = "2006-01-02"

var (
	filenameDateRe = regexp.MustCompile(`_(\d{4}-\d{2}-\d{2})`)
	showdateRe     = regexp.MustCompile(`var\s+showdate\s*=\s*['"](\d{4}-\d{2}-\d{2})['"]`)
	spanIDDateRe   = regexp.MustCompile(`id=['"]sp_(\d{4}-\d{2}-\d{2})['"]`)
	titleDateRe    = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)`)
)

// DateSource names the signal a broadcast date was taken from.
type DateSource string

const (
	DateFromFilename DateSource = "filename"
	DateFromShowdate DateSource = "showdate"
	DateFromSpanID   DateSource = "sp_id"
	DateFromTitle    DateSource = "title"
	DateUnresolved   DateSource = "unresolved"
)

// DateInput is what the date strategies look at.
type DateInput struct {
	// Filename is the resolved media filename, empty when the probe failed.
	Filename string

	// Page is the raw show page.
	Page []byte
}

type dateStrategy struct {
	source  DateSource
	resolve func(DateInput) (time.Time, bool)
}

// DateResolver extracts a show's broadcast date from whichever signal is
// available. Strategies run in priority order and the first valid date
// wins:
//
//  1. "_YYYY-MM-DD" in the resolved media filename
//  2. a `var showdate = "YYYY-MM-DD"` script assignment
//  3. an element id of the form "sp_YYYY-MM-DD"
//  4. "(YYYY-MM-DD)" in the page title
//
// A candidate that is not a real calendar date is ignored and the next
// strategy runs.
type DateResolver struct {
	strategies []dateStrategy
	logger     *zap.Logger
}

// NewDateResolver creates a DateResolver. A nil logger disables diagnostics.
func NewDateResolver(logger *zap.Logger) *DateResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DateResolver{
		strategies: []dateStrategy{
			{DateFromFilename, fromFilename},
			{DateFromShowdate, fromPattern(showdateRe)},
			{DateFromSpanID, fromPattern(spanIDDateRe)},
			{DateFromTitle, fromTitle},
		},
		logger: logger,
	}
}

// Resolve returns the broadcast date and the source it came from. When no
// strategy succeeds it returns model.UnknownShowDate and DateUnresolved;
// callers are expected to warn.
func (r *DateResolver) Resolve(in DateInput) (time.Time, DateSource) {
	for _, s := range r.strategies {
		if date, ok := s.resolve(in); ok {
			r.logger.Debug("resolved show date",
				zap.String("source", string(s.source)),
				zap.String("date", date.Format(dateLayout)))
			return date, s.source
		}
	}
	return model.UnknownShowDate, DateUnresolved
}

func fromFilename(in DateInput) (time.Time, bool) {
	if in.Filename == "" {
		return time.Time{}, false
	}
	m := filenameDateRe.FindStringSubmatch(in.Filename)
	if m == nil {
		return time.Time{}, false
	}
	return parseDate(m[1])
}

func fromPattern(re *regexp.Regexp) func(DateInput) (time.Time, bool) {
	return func(in DateInput) (time.Time, bool) {
		m := re.FindSubmatch(in.Page)
		if m == nil {
			return time.Time{}, false
		}
		return parseDate(string(m[1]))
	}
}

func fromTitle(in DateInput) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(in.Page))
	if err != nil {
		return time.Time{}, false
	}
	title := doc.Find("title").First()
	if title.Length() == 0 {
		return time.Time{}, false
	}
	m := titleDateRe.FindStringSubmatch(title.Text())
	if m == nil {
		return time.Time{}, false
	}
	return parseDate(m[1])
}

func parseDate(s string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
