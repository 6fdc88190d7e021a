package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/wefunk-cue/internal/config"
	"github.com/handiism/wefunk-cue/internal/logging"
	"github.com/handiism/wefunk-cue/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
		logPath    string
	)

	cmd := &cobra.Command{
		Use:           "wefunk-cue-tui",
		Short:         "Interactive cue sheet builder for WEFUNK Radio shows",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if configPath != "" {
				var err error
				if settings, err = config.Load(configPath); err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			if cmd.Flags().Changed("output-dir") {
				settings.OutputDir = outputDir
			}

			logger, closeLog, err := openLogger(logPath, settings.Verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			return tui.Run(settings, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (TOML)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "mp3s", "Output directory")
	cmd.Flags().StringVar(&logPath, "log-file", "", "Write diagnostics to this file")

	return cmd
}

// openLogger sends diagnostics to a file, since the terminal belongs to
// the UI. Without a log file diagnostics are dropped.
func openLogger(path string, verbose bool) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := logging.New(logging.Options{Verbose: verbose, Output: file})
	return logger, func() {
		_ = logger.Sync()
		_ = file.Close()
	}, nil
}
