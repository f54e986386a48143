package config

const (
	defaultConfigPath   = "~/.config/mixsplit/config.toml"
	projectConfigFile   = "mixsplit.toml"
	dotEnvFile          = ".env"
	defaultFFmpegBinary = "ffmpeg"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Environment variables consulted during normalization.
const (
	EnvFFmpeg = "MIXSPLIT_FFMPEG"
	EnvOpener = "MIXSPLIT_OPENER"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
