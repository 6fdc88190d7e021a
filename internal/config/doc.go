// Package config provides configuration management for wefunk-cue.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Conversion to model.SiteConfig for the resolvers
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Writes cue sheets to ./mp3s
//	// Targets wefunkradio.com
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/wefunk-cue.toml")
//	if err != nil {
//	    // Malformed file; a missing file yields defaults
//	}
//
// # Example File
//
//	output_dir = "/music/wefunk"
//	tag_media = true
//
//	[site]
//	probe_timeout_seconds = 10
package config
