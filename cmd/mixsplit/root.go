package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mixsplit/internal/filter"
	"mixsplit/internal/logging"
	"mixsplit/internal/services"
	"mixsplit/internal/services/browser"
	"mixsplit/internal/services/ffmpeg"
	"mixsplit/internal/split"
)

const rootLong = `Split polyphonic broadcast-WAV recordings into one file per track.

Every .wav file directly inside the INPUT_DIRs (default: the current
directory) is read, and each selected track is written to OUTPUT_TEMPLATE
with these placeholders expanded:

  {date}              recording date (e.g. 2020-06-01)
  {hour} {h}          hour of the recording
  {min} {m}           minute of the recording
  {sec} {s}           second of the recording
  {scene}             scene name
  {take}              take number
  {tape}              tape / card identifier
  {circled}           CIRCLED for circled takes
  {tracknumber} {n}   track number
  {trackname}         track name as set on the recorder

Filters for --takes and --tracks are comma separated; the last matching
token decides:

  all       everything
  mixdown   the MixL/MixR mixdown tracks
  4         a single track or take
  4-8       a range of tracks or takes
  foo       tracks whose name contains "foo"
  !foo      negates any of the above

Existing output files are never replaced unless --overwrite is given; the
first one found stops the run with ffmpeg's exit status.`

type splitFlags struct {
	overwrite   bool
	onlyCircled bool
	replace     []string
	with        []string
	dryRun      bool
	tracks      string
	takes       string
	open        bool
	flac        bool
	bit24       bool
	bit16       bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var flags splitFlags

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "mixsplit [INPUT_DIR...] OUTPUT_TEMPLATE",
		Short:         "Split polyphonic recordings into per-track files",
		Long:          rootLong,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The split itself loads config only after its flags validate.
			if shouldSkipConfig(cmd) || cmd == cmd.Root() {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, ctx, flags, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")

	f := rootCmd.Flags()
	f.BoolVarP(&flags.overwrite, "overwrite", "y", false, "Overwrite existing files; without it an existing output file stops the run")
	f.BoolVar(&flags.onlyCircled, "only-circled", false, "Use only circled takes")
	f.StringArrayVar(&flags.replace, "replace", nil, "Replace this string in the output path (repeatable)")
	f.StringArrayVar(&flags.with, "with", nil, "Replacement for the matching --replace (repeatable)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Don't write, just print")
	f.StringVar(&flags.tracks, "tracks", "", "Only use these tracks (see filters)")
	f.StringVar(&flags.takes, "takes", "", "Only use these takes (see filters)")
	f.BoolVar(&flags.open, "open", false, "Open the destination folder afterwards")
	f.BoolVar(&flags.flac, "flac", false, "Write FLAC instead of WAV")
	f.BoolVar(&flags.bit24, "24", false, "Output 24 bit audio")
	f.BoolVar(&flags.bit16, "16", false, "Output 16 bit audio")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func runSplit(cmd *cobra.Command, ctx *commandContext, flags splitFlags, args []string) error {
	replacements, err := split.PairReplacements(flags.replace, flags.with)
	if err != nil {
		return err
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	runCtx := services.WithRunID(cmd.Context(), runID)
	runLogger := logging.WithContext(runCtx, logger)

	template := args[len(args)-1]
	dirs := args[:len(args)-1]
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	opts := split.Options{
		Template:     template,
		Takes:        filter.FromOptional(flags.takes, cmd.Flags().Changed("takes")),
		Tracks:       filter.FromOptional(flags.tracks, cmd.Flags().Changed("tracks")),
		OnlyCircled:  flags.onlyCircled,
		Replacements: replacements,
		Format:       split.OutputFormat(flags.flac || cfg.Output.FLAC),
		BitDepth:     split.OutputBitDepth(flags.bit24, flags.bit16, cfg.Output.BitDepth),
		Overwrite:    flags.overwrite || cfg.Output.Overwrite,
		DryRun:       flags.dryRun,
		Open:         flags.open,
	}

	runLogger.Debug("split starting",
		logging.String("template", template),
		logging.Int("input_dirs", len(dirs)),
		logging.String("takes", opts.Takes.String()),
		logging.String("tracks", opts.Tracks.String()),
		logging.Bool("dry_run", opts.DryRun),
	)

	runner := split.NewRunner(opts, ffmpeg.New(cfg.FFmpegBinary(), runLogger), cmd.OutOrStdout(), logger)
	runner.WithOpener(browser.New(cfg.Browser.Command, runLogger))
	_, err = runner.Run(runCtx, dirs)
	return err
}
