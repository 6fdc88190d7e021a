package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/wefunk-cue/internal/config"
	"github.com/handiism/wefunk-cue/internal/download"
	"github.com/handiism/wefunk-cue/internal/logging"
)

type rootOptions struct {
	start      int
	end        int
	outputDir  string
	configPath string
	verbose    bool
	tag        bool
	summary    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wefunk-cue [show]",
		Short: "Rebuild cue sheets for WEFUNK Radio shows",
		Long: "Downloads show pages from the WEFUNK Radio archive and writes one\n" +
			"cue sheet per show, indexing into the show's MP3.\n\n" +
			"For interactive mode, use: wefunk-cue-tui",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.start, "start", 0, "Start show number (for ranges)")
	flags.IntVar(&opts.end, "end", 0, "End show number (for ranges)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "mp3s", "Output directory")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path (TOML)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose output")
	flags.BoolVar(&opts.tag, "tag", false, "Write ID3 tags to media files already in the output directory")
	flags.BoolVar(&opts.summary, "summary", true, "Print a summary table after the run")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	start, end, err := resolveRange(cmd, args, opts, newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Verbose: settings.Verbose, Output: cmd.ErrOrStderr()})
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	manager := download.NewManager(settings, logger, newProgressPrinter(out, settings.Verbose))

	results, err := manager.Run(cmd.Context(), start, end)
	if results == nil && err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done.")
	if opts.summary && len(results) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderSummary(results))
	}

	if err != nil {
		logger.Debug("run stopped early", zap.Int("processed", len(results)), zap.Error(err))
	}
	return err
}

// loadSettings reads the config file, then applies explicitly set flags.
func loadSettings(cmd *cobra.Command, opts *rootOptions) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		var err error
		settings, err = config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") || opts.configPath == "" {
		settings.OutputDir = opts.outputDir
	}
	if flags.Changed("verbose") {
		settings.Verbose = opts.verbose
	}
	if flags.Changed("tag") {
		settings.TagMedia = opts.tag
	}

	return settings, nil
}

// resolveRange picks the show range from the positional argument, the
// --start/--end flags, or interactive prompts, in that order.
func resolveRange(cmd *cobra.Command, args []string, opts *rootOptions, p prompter) (start, end int, err error) {
	if len(args) == 1 {
		show, err := parseShowNumber(args[0])
		if err != nil {
			return 0, 0, err
		}
		return show, show, download.ValidateRange(show, show)
	}

	flags := cmd.Flags()
	start = opts.start
	if !flags.Changed("start") {
		answer, err := p.Ask("Start Show")
		if err != nil {
			return 0, 0, err
		}
		if start, err = parseShowNumber(answer); err != nil {
			return 0, 0, err
		}
	}

	end = opts.end
	if !flags.Changed("end") {
		answer, err := p.Ask("End Show (Enter for same)")
		if err != nil {
			return 0, 0, err
		}
		if answer == "" {
			end = start
		} else if end, err = parseShowNumber(answer); err != nil {
			return 0, 0, err
		}
	}

	if err := download.ValidateRange(start, end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseShowNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a show number: %w", s, download.ErrInvalidRange)
	}
	return n, nil
}

// newProgressPrinter renders progress events as indented status lines.
func newProgressPrinter(out io.Writer, verbose bool) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !verbose {
			return
		}

		indent := ""
		if event.Show != 0 && !strings.HasPrefix(event.Message, "Processing Show") {
			indent = "   "
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "[Error] "
		case download.LevelWarning:
			prefix = "[Warning] "
		}

		fmt.Fprintln(out, indent+prefix+event.Message)
	}
}
