package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeFFmpeg()
	c.normalizeBrowser()
	c.normalizeLogging()
}

func (c *Config) normalizeFFmpeg() {
	if value, ok := os.LookupEnv(EnvFFmpeg); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.Binary = value
	}
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeBrowser() {
	if value, ok := os.LookupEnv(EnvOpener); ok && strings.TrimSpace(value) != "" {
		c.Browser.Command = value
	}
	c.Browser.Command = strings.TrimSpace(c.Browser.Command)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
