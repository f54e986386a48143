package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"mixsplit/internal/logging"
	"mixsplit/internal/services"
)

const defaultBinary = "ffmpeg"

// Format selects the output container/codec family.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
)

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatFLAC {
		return ".flac"
	}
	return ".wav"
}

// Request describes one single-channel extraction.
type Request struct {
	Source      string
	InputCodec  string
	Channel     int
	Format      Format
	BitDepth    int
	Destination string
	Overwrite   bool
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client runs ffmpeg extractions.
type Client struct {
	binary string
	logger *slog.Logger
	run    commandRunner
}

// New constructs a client for the given ffmpeg binary ("" means ffmpeg on PATH).
func New(binary string, logger *slog.Logger) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = defaultBinary
	}
	return &Client{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (c *Client) WithCommandRunner(r commandRunner) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Binary returns the executable the client invokes.
func (c *Client) Binary() string {
	return c.binary
}

// Extract runs ffmpeg for req and waits for it to exit.
func (c *Client) Extract(ctx context.Context, req Request) error {
	if c == nil {
		return errors.New("ffmpeg client not initialized")
	}
	if strings.TrimSpace(req.Source) == "" || strings.TrimSpace(req.Destination) == "" {
		return services.Wrap(services.ErrValidation, "ffmpeg", "extract", "source and destination are required", nil)
	}
	if req.Channel < 0 {
		return services.Wrap(services.ErrValidation, "ffmpeg", "extract", fmt.Sprintf("invalid channel %d", req.Channel), nil)
	}

	args := BuildArgs(req)
	c.logger.Debug("executing ffmpeg",
		logging.String("source", req.Source),
		logging.Int("channel", req.Channel),
		logging.String("destination", req.Destination),
		logging.String("args", strings.Join(args, " ")),
	)

	output, err := c.run(ctx, c.binary, args...)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = "no output"
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", req.Destination, detail, err)
	}
	return nil
}

// BuildArgs renders the ffmpeg argument list for req.
func BuildArgs(req Request) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin"}
	if req.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	if req.InputCodec != "" {
		args = append(args, "-c:a", req.InputCodec)
	}
	args = append(args,
		"-i", req.Source,
		"-af", PanFilter(req.Channel),
	)
	args = append(args, outputCodecArgs(req)...)
	args = append(args, req.Destination)
	return args
}

// PanFilter selects exactly one source channel into a mono output.
func PanFilter(channel int) string {
	return fmt.Sprintf("pan=mono|c0=c%d", channel)
}

func outputCodecArgs(req Request) []string {
	if req.Format == FormatFLAC {
		args := []string{"-c:a", "flac"}
		switch req.BitDepth {
		case 24:
			args = append(args, "-sample_fmt", "s32", "-bits_per_raw_sample", "24")
		case 16:
			args = append(args, "-sample_fmt", "s16")
		}
		return args
	}

	codec := req.InputCodec
	switch req.BitDepth {
	case 24:
		codec = "pcm_s24le"
	case 16:
		codec = "pcm_s16le"
	}
	if codec == "" {
		return nil
	}
	return []string{"-c:a", codec}
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	return cmd.CombinedOutput()
}
