package split

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mixsplit/internal/filter"
	"mixsplit/internal/logging"
	"mixsplit/internal/pathtemplate"
	"mixsplit/internal/recording"
	"mixsplit/internal/services"
	"mixsplit/internal/services/ffmpeg"
	"mixsplit/internal/testsupport"
)

type recordingExtractor struct {
	requests []ffmpeg.Request
	failAt   int
}

func (e *recordingExtractor) Extract(_ context.Context, req ffmpeg.Request) error {
	e.requests = append(e.requests, req)
	if e.failAt > 0 && len(e.requests) == e.failAt {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", req.Destination, "boom", errors.New("exit status 1"))
	}
	return nil
}

type recordingOpener struct {
	calls   int
	written []string
}

func (o *recordingOpener) Open(_ context.Context, written []string) (string, error) {
	o.calls++
	o.written = append([]string(nil), written...)
	return filepath.Dir(written[0]), nil
}

var eightTracks = []string{"Boom", "Lav1", "Lav2", "Lav3", "Lav4", "Lav5", "Lav6", "Plant"}

func writeTake(t *testing.T, dir, name string, take string, circled bool) string {
	t.Helper()
	path := filepath.Join(dir, name)
	testsupport.WriteBWF(t, path, testsupport.BWFFixture{
		Date:    "2024-05-01",
		Time:    "14:03:22",
		Frames:  24000,
		Scene:   "Forest",
		Take:    take,
		Tape:    "Day1",
		Circled: circled,
		Tracks:  testsupport.MixPreTracks(eightTracks...),
	})
	return path
}

func newOptions(out string) Options {
	return Options{
		Template: filepath.Join(out, "{scene}", "{take}_{tracknumber}_{trackname}"),
		Format:   ffmpeg.FormatWAV,
	}
}

func TestRunEndToEnd(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	source := writeTake(t, in, "T001.WAV", "1", false)
	writeTake(t, in, "T002.WAV", "2", false)

	opts := newOptions(out)
	opts.Takes = filter.Parse("1")
	opts.Tracks = filter.Parse("!8")

	extractor := &recordingExtractor{}
	var report bytes.Buffer
	summary, err := NewRunner(opts, extractor, &report, nil).Run(context.Background(), []string{in})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(extractor.requests) != 9 {
		t.Fatalf("expected 9 extractions, got %d", len(extractor.requests))
	}
	wantChannels := []int{0, 1, 2, 3, 4, 5, 6, 8, 9}
	for i, req := range extractor.requests {
		if req.Channel != wantChannels[i] {
			t.Fatalf("request %d: expected channel %d, got %d", i, wantChannels[i], req.Channel)
		}
		if req.Source != source || req.InputCodec != recording.CodecPCM24 || req.Overwrite {
			t.Fatalf("unexpected request %#v", req)
		}
	}
	if got := extractor.requests[7].Destination; got != filepath.Join(out, "Forest", "1_9_MixL.wav") {
		t.Fatalf("unexpected mixdown destination %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "Forest")); err != nil {
		t.Fatalf("expected output directory to exist: %v", err)
	}

	if summary.Discovered != 2 || summary.Ignored != 1 || summary.Processed != 1 || summary.Planned != 9 {
		t.Fatalf("unexpected summary %#v", summary)
	}
	if len(summary.Written) != 9 || summary.Duration != 500*time.Millisecond {
		t.Fatalf("unexpected summary %#v", summary)
	}

	text := report.String()
	for _, want := range []string{
		"Ignoring Take 2 (0:00:00.500000)\n",
		"Processing 1 take(s) with a total duration of 0:00:00.500000\n",
		"\nForest (Take [1/1] from 2024-05-01): Splitting T001.WAV (10 channels, Duration: 0:00:00.500000) ...\n",
		"    [0] -> " + filepath.Join(out, "Forest", "1_1_Boom.wav") + "\n",
		"    [9] -> " + filepath.Join(out, "Forest", "1_10_MixR.wav") + "\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "1_8_Plant") {
		t.Fatalf("track 8 should be excluded:\n%s", text)
	}
}

func TestRunDryRunMatchesLiveReport(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeTake(t, in, "T001.WAV", "1", false)

	opts := newOptions(out)
	opts.DryRun = true
	dryExtractor := &recordingExtractor{}
	var dryReport bytes.Buffer
	drySummary, err := NewRunner(opts, dryExtractor, &dryReport, nil).Run(context.Background(), []string{in})
	if err != nil {
		t.Fatalf("dry Run: %v", err)
	}
	if len(dryExtractor.requests) != 0 {
		t.Fatalf("dry run must not extract, got %d calls", len(dryExtractor.requests))
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create %s (stat err %v)", out, err)
	}
	if len(drySummary.Written) != 0 || drySummary.Planned != 10 {
		t.Fatalf("unexpected dry summary %#v", drySummary)
	}

	opts.DryRun = false
	var liveReport bytes.Buffer
	if _, err := NewRunner(opts, &recordingExtractor{}, &liveReport, nil).Run(context.Background(), []string{in}); err != nil {
		t.Fatalf("live Run: %v", err)
	}

	if got := strings.ReplaceAll(dryReport.String(), " (Dry Run)", ""); got != liveReport.String() {
		t.Fatalf("dry report differs from live report:\n--- dry\n%s\n--- live\n%s", dryReport.String(), liveReport.String())
	}
	if strings.Count(dryReport.String(), " (Dry Run)\n") != 10 {
		t.Fatalf("expected 10 dry-run lines:\n%s", dryReport.String())
	}
}

func TestRunOnlyCircledKeepsTotal(t *testing.T) {
	in := t.TempDir()
	writeTake(t, in, "T001.WAV", "1", false)
	writeTake(t, in, "T002.WAV", "2", true)

	opts := newOptions(t.TempDir())
	opts.OnlyCircled = true
	opts.DryRun = true
	var report bytes.Buffer
	summary, err := NewRunner(opts, nil, &report, nil).Run(context.Background(), []string{in})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected one circled take, got %d", summary.Processed)
	}
	text := report.String()
	if !strings.Contains(text, "Processing 2 take(s)") || !strings.Contains(text, "(Take [2/2] from") {
		t.Fatalf("unexpected report:\n%s", text)
	}
	if strings.Contains(text, "Take [1/2]") {
		t.Fatalf("uncircled take should be skipped:\n%s", text)
	}
}

func TestRunStopsOnExtractionFailure(t *testing.T) {
	in := t.TempDir()
	writeTake(t, in, "T001.WAV", "1", false)
	writeTake(t, in, "T002.WAV", "2", false)

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	extractor := &recordingExtractor{failAt: 2}
	summary, err := NewRunner(newOptions(t.TempDir()), extractor, nil, logger).Run(context.Background(), []string{in})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if len(extractor.requests) != 2 || len(summary.Written) != 1 {
		t.Fatalf("expected stop after second call, got %d calls and %d written", len(extractor.requests), len(summary.Written))
	}
	if !strings.Contains(logs.String(), `"error_kind":"external_tool"`) {
		t.Fatalf("expected classified failure in logs:\n%s", logs.String())
	}
}

func TestRunMetadataErrorAbortsBeforeExtraction(t *testing.T) {
	in := t.TempDir()
	writeTake(t, in, "T001.WAV", "1", false)
	testsupport.WriteDamagedWAV(t, filepath.Join(in, "T002.wav"), testsupport.TruncatedHeader)

	extractor := &recordingExtractor{}
	var report bytes.Buffer
	_, err := NewRunner(newOptions(t.TempDir()), extractor, &report, nil).Run(context.Background(), []string{in})
	if !errors.Is(err, services.ErrMetadata) {
		t.Fatalf("expected metadata error, got %v", err)
	}
	if len(extractor.requests) != 0 || report.Len() != 0 {
		t.Fatalf("expected no work before metadata is loaded, got %d calls, report %q", len(extractor.requests), report.String())
	}
}

func TestRunOpen(t *testing.T) {
	in := t.TempDir()
	writeTake(t, in, "T001.WAV", "1", false)
	out := t.TempDir()

	opts := newOptions(out)
	opts.Open = true
	opts.Tracks = filter.Parse("1-2")
	opener := &recordingOpener{}
	runner := NewRunner(opts, &recordingExtractor{}, nil, nil)
	runner.WithOpener(opener)
	summary, err := runner.Run(context.Background(), []string{in})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if opener.calls != 1 || len(opener.written) != 2 {
		t.Fatalf("expected opener called with 2 paths, got %d calls %v", opener.calls, opener.written)
	}
	if summary.OpenedDir != filepath.Join(out, "Forest") {
		t.Fatalf("unexpected opened dir %q", summary.OpenedDir)
	}

	opts.DryRun = true
	dryOpener := &recordingOpener{}
	var report bytes.Buffer
	runner = NewRunner(opts, nil, &report, nil)
	runner.WithOpener(dryOpener)
	if _, err := runner.Run(context.Background(), []string{in}); err != nil {
		t.Fatalf("dry Run: %v", err)
	}
	if dryOpener.calls != 0 {
		t.Fatal("dry run must not open a file browser")
	}
	if !strings.HasSuffix(report.String(), "Note: Didn't open filebrowser because no files have been written (dry-run)\n") {
		t.Fatalf("expected dry-run note, got:\n%s", report.String())
	}
}

func TestRunRequiresExtractorForLiveRuns(t *testing.T) {
	_, err := NewRunner(newOptions(t.TempDir()), nil, nil, nil).Run(context.Background(), nil)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func mustRecording(t *testing.T, tracks ...recording.Track) *recording.Recording {
	t.Helper()
	rec, err := recording.New(recording.Fields{
		FilePath:   "/rec/T007.WAV",
		DateString: "2024-05-01",
		TimeString: "14:03:22",
		BitDepth:   32,
		Scene:      "Forest",
		Take:       7,
		Tracks:     tracks,
	})
	if err != nil {
		t.Fatalf("recording.New: %v", err)
	}
	return rec
}

func TestBuildPlanChannelOrigin(t *testing.T) {
	rec := mustRecording(t,
		recording.Track{Index: 3, Name: "A"},
		recording.Track{Index: 4, Name: "B"},
		recording.Track{Index: 5, Name: "C"},
	)
	jobs, err := BuildPlan(rec, Options{Template: "/out/{tracknumber}"})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	for i, job := range jobs {
		if job.Channel != i || job.TrackIndex != i+3 {
			t.Fatalf("job %d: unexpected channel %d for track %d", i, job.Channel, job.TrackIndex)
		}
	}
	if jobs[0].Destination() != "/out/3.wav" {
		t.Fatalf("template must use the track index, got %q", jobs[0].Destination())
	}
	if jobs[0].Request.InputCodec != recording.CodecFloat32 {
		t.Fatalf("unexpected input codec %q", jobs[0].Request.InputCodec)
	}
}

func TestBuildPlanMixdownOnly(t *testing.T) {
	rec := mustRecording(t,
		recording.Track{Index: recording.MixLeftIndex, Name: recording.MixLeftName},
		recording.Track{Index: recording.MixRightIndex, Name: recording.MixRightName},
	)
	jobs, err := BuildPlan(rec, Options{Template: "/out/{trackname}"})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Channel != 0 || jobs[1].Channel != 1 {
		t.Fatalf("expected mixdown channels 0 and 1, got %#v", jobs)
	}
}

func TestBuildPlanPaths(t *testing.T) {
	rec := mustRecording(t,
		recording.Track{Index: 1, Name: "Boom"},
		recording.Track{Index: 2, Name: "Lav1"},
		recording.Track{Index: recording.MixLeftIndex, Name: recording.MixLeftName},
	)
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "existing extension kept",
			opts: Options{Template: "/out/{trackname}.WAV"},
			want: []string{"/out/Boom.WAV", "/out/Lav1.WAV", "/out/MixL.WAV"},
		},
		{
			name: "flac extension",
			opts: Options{Template: "/out/{scene}_{take}_{tracknumber}", Format: ffmpeg.FormatFLAC},
			want: []string{"/out/Forest_7_1.flac", "/out/Forest_7_2.flac", "/out/Forest_7_9.flac"},
		},
		{
			name: "replacements in order",
			opts: Options{
				Template:     "/out/{trackname}",
				Replacements: []pathtemplate.Replacement{{Find: "Lav", With: "Lavalier"}, {Find: "Lavalier1", With: "Alice"}},
			},
			want: []string{"/out/Boom.wav", "/out/Alice.wav", "/out/MixL.wav"},
		},
		{
			name: "mixdown filter",
			opts: Options{Template: "/out/{trackname}", Tracks: filter.Parse("mixdown")},
			want: []string{"/out/MixL.wav"},
		},
		{
			name: "name filter",
			opts: Options{Template: "/out/{trackname}", Tracks: filter.Parse("Lav")},
			want: []string{"/out/Lav1.wav"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := BuildPlan(rec, tt.opts)
			if err != nil {
				t.Fatalf("BuildPlan: %v", err)
			}
			if len(jobs) != len(tt.want) {
				t.Fatalf("expected %d jobs, got %d", len(tt.want), len(jobs))
			}
			for i, job := range jobs {
				if job.Destination() != tt.want[i] {
					t.Fatalf("job %d: expected %q, got %q", i, tt.want[i], job.Destination())
				}
			}
		})
	}
}

func TestBuildPlanBitDepthAndOverwrite(t *testing.T) {
	rec := mustRecording(t, recording.Track{Index: 1, Name: "Boom"})
	jobs, err := BuildPlan(rec, Options{Template: "/out/x", BitDepth: 16, Overwrite: true})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	req := jobs[0].Request
	if req.BitDepth != 16 || !req.Overwrite || req.Format != ffmpeg.FormatWAV {
		t.Fatalf("unexpected request %#v", req)
	}
}

func TestFilterTakes(t *testing.T) {
	var recs []*recording.Recording
	for take := 1; take <= 4; take++ {
		rec, err := recording.New(recording.Fields{
			FilePath: filepath.Join("/rec", "T.WAV"),
			Take:     take,
			Circled:  take%2 == 0,
			Tracks:   []recording.Track{{Index: 1, Name: "Boom"}},
		})
		if err != nil {
			t.Fatalf("recording.New: %v", err)
		}
		recs = append(recs, rec)
	}

	kept, ignored := FilterTakes(recs, filter.Parse("2-3"))
	if len(kept) != 2 || kept[0].Take() != 2 || kept[1].Take() != 3 {
		t.Fatalf("unexpected kept takes %v", takes(kept))
	}
	if len(ignored) != 2 || ignored[0].Take() != 1 || ignored[1].Take() != 4 {
		t.Fatalf("unexpected ignored takes %v", takes(ignored))
	}

	// The last token decides: "!3" includes every take except 3.
	kept, ignored = FilterTakes(recs, filter.Parse("2-4,!3"))
	if len(kept) != 3 || kept[0].Take() != 1 || len(ignored) != 1 || ignored[0].Take() != 3 {
		t.Fatalf("unexpected fold result kept=%v ignored=%v", takes(kept), takes(ignored))
	}

	kept, ignored = FilterTakes(recs, filter.All())
	if len(kept) != 4 || len(ignored) != 0 {
		t.Fatal("inactive filter must keep everything")
	}
	if circled := OnlyCircled(recs); len(circled) != 2 || circled[0].Take() != 2 {
		t.Fatalf("unexpected circled takes %v", takes(circled))
	}
}

func takes(recs []*recording.Recording) []int {
	out := make([]int, len(recs))
	for i, rec := range recs {
		out[i] = rec.Take()
	}
	return out
}

func TestDiscover(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testsupport.WriteDamagedWAV(t, filepath.Join(first, "B.wav"), testsupport.NotWAV)
	testsupport.WriteDamagedWAV(t, filepath.Join(first, "A.WAV"), testsupport.NotWAV)
	testsupport.WriteDamagedWAV(t, filepath.Join(first, "notes.txt"), testsupport.NotWAV)
	if err := os.Mkdir(filepath.Join(first, "folder.wav"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteDamagedWAV(t, filepath.Join(first, "nested", "C.wav"), testsupport.NotWAV)
	testsupport.WriteDamagedWAV(t, filepath.Join(second, "D.Wav"), testsupport.NotWAV)

	got, err := Discover([]string{second, first})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(second, "D.Wav"),
		filepath.Join(first, "A.WAV"),
		filepath.Join(first, "B.wav"),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if _, err := Discover([]string{filepath.Join(first, "missing")}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPairReplacements(t *testing.T) {
	pairs, err := PairReplacements([]string{"a", "b"}, []string{"x", "y"})
	if err != nil {
		t.Fatalf("PairReplacements: %v", err)
	}
	if len(pairs) != 2 || pairs[1] != (pathtemplate.Replacement{Find: "b", With: "y"}) {
		t.Fatalf("unexpected pairs %v", pairs)
	}

	_, err = PairReplacements([]string{"a"}, nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := "Error:    You wrote 1 \"--replace\" and 0 \"--with\" options!\n" +
		"Solution: Use a \"--with\" option for each \"--replace\" option (same count)"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n%s", err.Error())
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (Options{Template: "x"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, opts := range []Options{
		{},
		{Template: "x", BitDepth: 20},
		{Template: "x", Format: "mp3"},
	} {
		if err := opts.Validate(); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation error for %#v, got %v", opts, err)
		}
	}
}

func TestOutputSwitches(t *testing.T) {
	if OutputBitDepth(true, true, 0) != 24 {
		t.Fatal("--24 must win over --16")
	}
	if OutputBitDepth(false, true, 24) != 16 {
		t.Fatal("--16 must override the fallback")
	}
	if OutputBitDepth(false, false, 24) != 24 {
		t.Fatal("fallback expected when no switch is set")
	}
	if OutputFormat(true) != ffmpeg.FormatFLAC || OutputFormat(false) != ffmpeg.FormatWAV {
		t.Fatal("unexpected output format mapping")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{500 * time.Millisecond, "0:00:00.500000"},
		{61 * time.Second, "0:01:01"},
		{3*time.Hour + 4*time.Minute + 5*time.Second + 6*time.Microsecond, "3:04:05.000006"},
		{25 * time.Hour, "1 day, 1:00:00"},
		{50 * time.Hour, "2 days, 2:00:00"},
		{-time.Second, "0:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Fatalf("FormatDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
