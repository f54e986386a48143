package recording

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// PCM codec labels understood by the external codec.
const (
	CodecFloat32 = "pcm_f32le"
	CodecPCM24   = "pcm_s24le"
	CodecPCM16   = "pcm_s16le"
)

// CodecForBitDepth maps a bit depth to its PCM codec label. Unknown depths
// return an empty label.
func CodecForBitDepth(bits int) string {
	switch bits {
	case 32:
		return CodecFloat32
	case 24:
		return CodecPCM24
	case 16:
		return CodecPCM16
	default:
		return ""
	}
}

// Fields is the validated input for New.
type Fields struct {
	FilePath     string
	DateString   string
	TimeString   string
	BitDepth     int
	SampleRate   int
	ChannelCount int
	Scene        string
	Take         int
	Tape         string
	Circled      bool
	Speed        string
	// SampleCount is the total frame count; nil when the source did not report one.
	SampleCount *int64
	Tracks      []Track
}

// Recording is the immutable description of one source file.
type Recording struct {
	filePath     string
	dateString   string
	timeString   string
	codec        string
	bitDepth     int
	sampleRate   int
	channelCount int
	scene        string
	take         int
	tape         string
	circled      bool
	speed        string
	sampleCount  int64
	hasSamples   bool
	tracks       Tracks
}

// New validates fields and builds a Recording.
func New(f Fields) (*Recording, error) {
	if strings.TrimSpace(f.FilePath) == "" {
		return nil, errors.New("recording: file path is required")
	}
	if f.Take <= 0 {
		return nil, fmt.Errorf("recording: take must be positive, got %d", f.Take)
	}
	if f.SampleRate < 0 || f.ChannelCount < 0 {
		return nil, errors.New("recording: sample rate and channel count must not be negative")
	}
	tracks := NewTracks(f.Tracks)
	if tracks.Len() == 0 {
		return nil, errors.New("recording: at least one track is required")
	}
	r := &Recording{
		filePath:     f.FilePath,
		dateString:   f.DateString,
		timeString:   f.TimeString,
		codec:        CodecForBitDepth(f.BitDepth),
		bitDepth:     f.BitDepth,
		sampleRate:   f.SampleRate,
		channelCount: f.ChannelCount,
		scene:        f.Scene,
		take:         f.Take,
		tape:         f.Tape,
		circled:      f.Circled,
		speed:        f.Speed,
		tracks:       tracks,
	}
	if f.SampleCount != nil {
		r.sampleCount = *f.SampleCount
		r.hasSamples = true
	}
	return r, nil
}

func (r *Recording) FilePath() string   { return r.filePath }
func (r *Recording) FileName() string   { return filepath.Base(r.filePath) }
func (r *Recording) Directory() string  { return filepath.Dir(r.filePath) }
func (r *Recording) DateString() string { return r.dateString }
func (r *Recording) TimeString() string { return r.timeString }
func (r *Recording) Codec() string      { return r.codec }
func (r *Recording) BitDepth() int      { return r.bitDepth }
func (r *Recording) SampleRate() int    { return r.sampleRate }
func (r *Recording) ChannelCount() int  { return r.channelCount }
func (r *Recording) Scene() string      { return r.scene }
func (r *Recording) Take() int          { return r.take }
func (r *Recording) Tape() string       { return r.tape }
func (r *Recording) Circled() bool      { return r.circled }
func (r *Recording) Speed() string      { return r.speed }
func (r *Recording) Tracks() Tracks     { return r.tracks }

// SampleCount returns the total frame count when known.
func (r *Recording) SampleCount() (int64, bool) {
	return r.sampleCount, r.hasSamples
}

// TotalSeconds returns sampleCount / sampleRate. The second value is false
// when the frame count is unknown or the sample rate is not positive.
func (r *Recording) TotalSeconds() (float64, bool) {
	if !r.hasSamples || r.sampleRate <= 0 {
		return 0, false
	}
	return float64(r.sampleCount) / float64(r.sampleRate), true
}

// Duration is TotalSeconds rounded to the microsecond; zero when unknown.
func (r *Recording) Duration() time.Duration {
	seconds, ok := r.TotalSeconds()
	if !ok {
		return 0
	}
	return time.Duration(math.Round(seconds*1e6)) * time.Microsecond
}

// TrackName returns the name for a track index.
func (r *Recording) TrackName(index int) (string, bool) {
	return r.tracks.Name(index)
}

// ChannelOrigin returns the lowest track index, the origin of zero-based
// extraction channels.
func (r *Recording) ChannelOrigin() int {
	origin, _ := r.tracks.Min()
	return origin
}
