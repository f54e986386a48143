// Package browser opens a system file browser on the folder that received
// split output.
package browser

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"mixsplit/internal/logging"
	"mixsplit/internal/services"
)

// DefaultDepth bounds how many parent levels CommonDir climbs.
const DefaultDepth = 5

// CommonDir climbs from the given file paths towards the root until all of
// them share one directory. When no common directory is reached within depth
// levels, the lexically first candidate of the last level is returned.
func CommonDir(paths []string, depth int) string {
	if len(paths) == 0 {
		return ""
	}
	if depth < 1 {
		depth = 1
	}
	current := append([]string(nil), paths...)
	for level := 1; ; level++ {
		seen := make(map[string]struct{}, len(current))
		next := make([]string, 0, len(current))
		for _, p := range current {
			dir := filepath.Dir(p)
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			next = append(next, dir)
		}
		sort.Strings(next)
		if len(next) == 1 || level >= depth {
			return next[0]
		}
		current = next
	}
}

// PlatformCommand returns the opener for goos.
func PlatformCommand(goos string) string {
	switch goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

type commandStarter func(ctx context.Context, name string, args ...string) error

// Opener launches the file browser without waiting for it.
type Opener struct {
	command string
	logger  *slog.Logger
	start   commandStarter
}

// New builds an opener. An empty command selects the platform default.
func New(command string, logger *slog.Logger) *Opener {
	command = strings.TrimSpace(command)
	if command == "" {
		command = PlatformCommand(runtime.GOOS)
	}
	return &Opener{
		command: command,
		logger:  logging.NewComponentLogger(logger, "browser"),
		start:   defaultStarter,
	}
}

// WithCommandStarter allows injecting a custom starter for tests.
func (o *Opener) WithCommandStarter(s commandStarter) {
	if o != nil && s != nil {
		o.start = s
	}
}

// Command returns the opener executable.
func (o *Opener) Command() string {
	return o.command
}

// Open launches the file browser at the common directory of written.
func (o *Opener) Open(ctx context.Context, written []string) (string, error) {
	if o == nil {
		return "", errors.New("browser opener not initialized")
	}
	dir := CommonDir(written, DefaultDepth)
	if dir == "" {
		return "", services.Wrap(services.ErrValidation, "browser", "open", "no written files", nil)
	}
	o.logger.Debug("opening file browser",
		logging.String("command", o.command),
		logging.String("directory", dir),
	)
	if err := o.start(ctx, o.command, dir); err != nil {
		return dir, services.Wrap(services.ErrExternalTool, "browser", o.command, dir, err)
	}
	return dir, nil
}

func defaultStarter(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
