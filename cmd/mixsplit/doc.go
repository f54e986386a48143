// Package main hosts the mixsplit CLI entrypoint and command graph.
//
// The root command splits polyphonic recordings into one file per track.
// Subcommands inspect recordings, check external binaries, and scaffold the
// configuration file. Configuration resolution and logger setup live here so
// the internal packages stay free of flag handling.
package main
