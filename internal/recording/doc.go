// Package recording models one polyphonic take as read from a field recorder.
//
// A Recording is built once, in a single step, from validated Fields (or from
// a parsed broadcast-WAV via Read/FromInfo) and is read-only afterwards. Its
// Tracks value is an ordered mapping from track index to track name: regular
// tracks are numbered from the recorder's channel index minus two, and the
// stereo mixdown is always appended last at indices 9 (left) and 10 (right).
package recording
