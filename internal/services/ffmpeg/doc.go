// Package ffmpeg extracts single channels from polyphonic WAV files by
// running the ffmpeg binary.
//
// Each Extract call runs one ffmpeg process to completion. The process is
// given an explicit input codec, a pan filter selecting exactly one source
// channel, the output codec and optional bit-depth conversion, and the
// destination path. A non-zero exit is reported with ffmpeg's own output and
// is never retried.
//
// Tests inject a commandRunner instead of executing ffmpeg.
package ffmpeg
