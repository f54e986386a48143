// Package split plans and runs the extraction of single tracks from a batch
// of polyphonic recordings.
//
// A run discovers .wav files in the input directories, reads every
// recording up front, applies the take filter, and then processes one take at
// a time: the track filter selects tracks, each surviving track is turned into
// a Job whose destination comes from the output template, and the Extractor
// writes it. Progress is written to the report writer in a fixed textual
// format that downstream tooling parses.
//
// Metadata errors and extraction failures stop the run. Dry runs produce the
// same report without touching the filesystem or calling the Extractor.
package split
