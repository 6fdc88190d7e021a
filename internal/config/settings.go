package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/handiism/wefunk-cue/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir string `toml:"output_dir"`
	TagMedia  bool   `toml:"tag_media"`
	Verbose   bool   `toml:"verbose"`

	// Site settings
	Site SiteSettings `toml:"site"`
}

// SiteSettings is the file form of model.SiteConfig.
type SiteSettings struct {
	ShowURL             string  `toml:"show_url"`
	StreamURL           string  `toml:"stream_url"`
	UserAgent           string  `toml:"user_agent"`
	ProbeTimeoutSeconds float64 `toml:"probe_timeout_seconds"`

	Brand       string `toml:"brand"`
	Genre       string `toml:"genre"`
	TitleFormat string `toml:"title_format"`

	FilenameMarker string `toml:"filename_marker"`
	MediaExtension string `toml:"media_extension"`
	HQThreshold    int    `toml:"hq_threshold"`
	HQSuffix       string `toml:"hq_suffix"`
	CueExtension   string `toml:"cue_extension"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	site := model.DefaultSiteConfig()
	return &Settings{
		OutputDir: "mp3s",
		TagMedia:  false,
		Verbose:   false,

		Site: SiteSettings{
			ShowURL:             site.ShowURL,
			StreamURL:           site.StreamURL,
			UserAgent:           site.UserAgent,
			ProbeTimeoutSeconds: site.ProbeTimeout.Seconds(),

			Brand:       site.Brand,
			Genre:       site.Genre,
			TitleFormat: site.TitleFormat,

			FilenameMarker: site.FilenameMarker,
			MediaExtension: site.MediaExtension,
			HQThreshold:    site.HQThreshold,
			HQSuffix:       site.HQSuffix,
			CueExtension:   site.CueExtension,
		},
	}
}

// Load reads settings from a TOML file. Keys missing from the file keep
// their default values; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, err
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a TOML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the values the resolvers cannot work without.
func (s *Settings) Validate() error {
	var problems []string
	if strings.TrimSpace(s.OutputDir) == "" {
		problems = append(problems, "output_dir must not be empty")
	}
	if strings.TrimSpace(s.Site.ShowURL) == "" {
		problems = append(problems, "site.show_url must not be empty")
	}
	if strings.TrimSpace(s.Site.StreamURL) == "" {
		problems = append(problems, "site.stream_url must not be empty")
	}
	if s.Site.ProbeTimeoutSeconds < 0 {
		problems = append(problems, "site.probe_timeout_seconds must not be negative")
	}
	if !strings.HasPrefix(s.Site.MediaExtension, ".") {
		problems = append(problems, "site.media_extension must start with a dot")
	}
	if !strings.HasPrefix(s.Site.CueExtension, ".") {
		problems = append(problems, "site.cue_extension must start with a dot")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ToSiteConfig converts settings to the immutable model.SiteConfig.
func (s *Settings) ToSiteConfig() model.SiteConfig {
	return model.SiteConfig{
		ShowURL:        s.Site.ShowURL,
		StreamURL:      s.Site.StreamURL,
		UserAgent:      s.Site.UserAgent,
		ProbeTimeout:   time.Duration(s.Site.ProbeTimeoutSeconds * float64(time.Second)),
		Brand:          s.Site.Brand,
		Genre:          s.Site.Genre,
		TitleFormat:    s.Site.TitleFormat,
		FilenameMarker: s.Site.FilenameMarker,
		MediaExtension: s.Site.MediaExtension,
		HQThreshold:    s.Site.HQThreshold,
		HQSuffix:       s.Site.HQSuffix,
		CueExtension:   s.Site.CueExtension,
	}
}
