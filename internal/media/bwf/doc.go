// Package bwf reads the metadata chunks of broadcast-WAV files.
//
// Decoding is done by github.com/cwbudde/wav, which parses "fmt " and
// "bext" and keeps unknown chunks such as "iXML" as raw payloads. This
// package adds what recorders need on top:
//   - Broadcast: the bext chunk plus key=value lookups in its description
//   - IXML: the iXML document (scene, take, tape, track list)
//   - RF64: a ds64-aware scan that feeds the RIFF decoder a metadata image
//
// The data chunk is only measured so callers can derive the frame count.
//
// This package has no mixsplit-specific dependencies.
package bwf
