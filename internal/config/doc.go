// Package config loads, normalizes, and validates mixsplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file from the working
// directory, and honours environment fallbacks such as MIXSPLIT_FFMPEG. The
// values here are defaults only: command-line flags override them.
package config
