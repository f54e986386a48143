package split

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mixsplit/internal/logging"
	"mixsplit/internal/recording"
	"mixsplit/internal/services"
	"mixsplit/internal/services/ffmpeg"
)

// Extractor writes one planned track.
type Extractor interface {
	Extract(ctx context.Context, req ffmpeg.Request) error
}

// Opener shows the written files to the operator and returns the directory
// it opened.
type Opener interface {
	Open(ctx context.Context, written []string) (string, error)
}

// Summary describes a finished run.
type Summary struct {
	Discovered int
	Ignored    int
	Processed  int
	Planned    int
	Written    []string
	Duration   time.Duration
	OpenedDir  string
}

// Runner executes split runs.
type Runner struct {
	opts      Options
	extractor Extractor
	opener    Opener
	report    io.Writer
	logger    *slog.Logger
	read      func(string) (*recording.Recording, error)
	mkdirAll  func(string, os.FileMode) error
}

// NewRunner wires a runner. report receives the operator-facing progress
// lines; nil discards them.
func NewRunner(opts Options, extractor Extractor, report io.Writer, logger *slog.Logger) *Runner {
	if report == nil {
		report = io.Discard
	}
	return &Runner{
		opts:      opts,
		extractor: extractor,
		report:    report,
		logger:    logging.NewComponentLogger(logger, "split"),
		read:      recording.Read,
		mkdirAll:  os.MkdirAll,
	}
}

// WithOpener sets the file browser used when Options.Open is set.
func (r *Runner) WithOpener(o Opener) {
	if r != nil {
		r.opener = o
	}
}

// Run splits every recording found in dirs.
func (r *Runner) Run(ctx context.Context, dirs []string) (Summary, error) {
	var summary Summary
	if err := r.opts.Validate(); err != nil {
		return summary, err
	}
	if r.extractor == nil && !r.opts.DryRun {
		return summary, services.Wrap(services.ErrConfiguration, "split", "run", "no extractor configured", nil)
	}
	logger := logging.WithContext(ctx, r.logger)

	paths, err := Discover(dirs)
	if err != nil {
		return summary, err
	}
	summary.Discovered = len(paths)
	logger.Debug("discovered recordings", logging.Int("count", len(paths)))

	recordings, err := load(paths, r.read)
	if err != nil {
		return summary, err
	}

	kept, ignored := FilterTakes(recordings, r.opts.Takes)
	summary.Ignored = len(ignored)
	for _, rec := range ignored {
		r.reportf("Ignoring Take %d (%s)\n", rec.Take(), FormatDuration(rec.Duration()))
		logger.Debug("take ignored",
			logging.String(logging.FieldEventType, "take_skipped"),
			logging.Int(logging.FieldTake, rec.Take()),
			logging.String("file", rec.FilePath()),
		)
	}

	total := len(kept)
	for _, rec := range kept {
		summary.Duration += rec.Duration()
	}
	r.reportf("Processing %d take(s) with a total duration of %s\n", total, FormatDuration(summary.Duration))

	if r.opts.OnlyCircled {
		kept = OnlyCircled(kept)
	}

	for _, rec := range kept {
		written, planned, err := r.processTake(ctx, rec, total)
		summary.Written = append(summary.Written, written...)
		summary.Planned += planned
		if err != nil {
			return summary, err
		}
		summary.Processed++
	}

	logger.Info("split finished",
		logging.Int("takes", summary.Processed),
		logging.Int("planned", summary.Planned),
		logging.Int("written", len(summary.Written)),
		logging.Bool("dry_run", r.opts.DryRun),
	)

	if r.opts.Open {
		dir, err := r.open(ctx, logger, summary.Written)
		summary.OpenedDir = dir
		if err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (r *Runner) processTake(ctx context.Context, rec *recording.Recording, total int) ([]string, int, error) {
	ctx = services.WithScene(services.WithTake(ctx, rec.Take()), rec.Scene())
	logger := logging.WithContext(ctx, r.logger)

	r.reportf("\n%s (Take [%d/%d] from %s): Splitting %s (%d channels, Duration: %s) ...\n",
		rec.Scene(), rec.Take(), total, rec.DateString(), rec.FileName(),
		rec.Tracks().Len(), FormatDuration(rec.Duration()))

	jobs, err := BuildPlan(rec, r.opts)
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("take planned", logging.Int("jobs", len(jobs)), logging.String("file", rec.FilePath()))

	var written []string
	for _, job := range jobs {
		dest := job.Destination()
		if r.opts.DryRun {
			r.reportf("    [%d] -> %s (Dry Run)\n", job.Channel, dest)
			continue
		}
		if err := r.mkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return written, len(jobs), fmt.Errorf("create output directory: %w", err)
		}
		if err := r.extractor.Extract(ctx, job.Request); err != nil {
			logger.Error("track extraction failed",
				logging.Int("channel", job.Channel),
				logging.String("destination", dest),
				logging.ErrorKind(err),
				logging.Error(err),
			)
			return written, len(jobs), err
		}
		r.reportf("    [%d] -> %s\n", job.Channel, dest)
		logger.Debug("track written",
			logging.String(logging.FieldEventType, "track_written"),
			logging.Int("track", job.TrackIndex),
			logging.String("destination", dest),
		)
		written = append(written, dest)
	}
	return written, len(jobs), nil
}

func (r *Runner) open(ctx context.Context, logger *slog.Logger, written []string) (string, error) {
	if r.opts.DryRun {
		r.reportf("Note: Didn't open filebrowser because no files have been written (dry-run)\n")
		return "", nil
	}
	if len(written) == 0 {
		logger.Info("no files written; file browser not opened")
		return "", nil
	}
	if r.opener == nil {
		return "", services.Wrap(services.ErrConfiguration, "split", "open", "no file browser configured", nil)
	}
	return r.opener.Open(ctx, written)
}

func (r *Runner) reportf(format string, args ...any) {
	fmt.Fprintf(r.report, format, args...)
}
