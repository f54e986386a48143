package split

import (
	"mixsplit/internal/filter"
	"mixsplit/internal/pathtemplate"
	"mixsplit/internal/recording"
	"mixsplit/internal/services/ffmpeg"
)

// Job is one planned track extraction.
type Job struct {
	TrackIndex int
	TrackName  string
	// Channel is the zero-based channel inside the source file.
	Channel int
	Request ffmpeg.Request
}

// Destination returns the output path of the job.
func (j Job) Destination() string {
	return j.Request.Destination
}

// TakeCandidate adapts a recording's take number for the take filter.
func TakeCandidate(rec *recording.Recording) filter.Candidate {
	return filter.Candidate{Index: rec.Take()}
}

// TrackCandidate adapts a track for the track filter.
func TrackCandidate(track recording.Track) filter.Candidate {
	return filter.Candidate{
		Index:   track.Index,
		Name:    track.Name,
		Mixdown: recording.IsMixdown(track.Name),
	}
}

// FilterTakes splits recordings into kept and ignored, keeping input order.
func FilterTakes(recordings []*recording.Recording, takes filter.Filter) (kept, ignored []*recording.Recording) {
	for _, rec := range recordings {
		if takes.Includes(TakeCandidate(rec)) {
			kept = append(kept, rec)
		} else {
			ignored = append(ignored, rec)
		}
	}
	return kept, ignored
}

// OnlyCircled keeps the circled recordings.
func OnlyCircled(recordings []*recording.Recording) []*recording.Recording {
	out := make([]*recording.Recording, 0, len(recordings))
	for _, rec := range recordings {
		if rec.Circled() {
			out = append(out, rec)
		}
	}
	return out
}

// BuildPlan turns the tracks of rec that pass the track filter into jobs,
// in track order. It does not touch the filesystem.
func BuildPlan(rec *recording.Recording, opts Options) ([]Job, error) {
	format := opts.Format
	if format == "" {
		format = ffmpeg.FormatWAV
	}
	origin := rec.ChannelOrigin()

	var jobs []Job
	for _, track := range rec.Tracks().All() {
		if !opts.Tracks.Includes(TrackCandidate(track)) {
			continue
		}
		path, err := pathtemplate.ExpandTrack(opts.Template, rec, track.Index)
		if err != nil {
			return nil, err
		}
		path = pathtemplate.ApplyReplacements(path, opts.Replacements)
		path = pathtemplate.EnsureExtension(path, format.Extension())

		channel := track.Index - origin
		jobs = append(jobs, Job{
			TrackIndex: track.Index,
			TrackName:  track.Name,
			Channel:    channel,
			Request: ffmpeg.Request{
				Source:      rec.FilePath(),
				InputCodec:  rec.Codec(),
				Channel:     channel,
				Format:      format,
				BitDepth:    opts.BitDepth,
				Destination: path,
				Overwrite:   opts.Overwrite,
			},
		})
	}
	return jobs, nil
}
