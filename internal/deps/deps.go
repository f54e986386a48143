package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Tool is an external binary mixsplit shells out to.
type Tool struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
	// VersionArgs, when set, are passed to the binary to read its version.
	VersionArgs []string
}

// Status is the outcome of checking one Tool.
type Status struct {
	Tool
	Available bool
	Version   string
	Detail    string
}

// Tools lists the binaries mixsplit uses. The opener is optional since only
// --open needs it.
func Tools(ffmpegBinary, openerCommand string) []Tool {
	return []Tool{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Purpose:     "Extracts single tracks from polyphonic recordings",
			VersionArgs: []string{"-version"},
		},
		{
			Name:     "File browser",
			Command:  openerCommand,
			Purpose:  "Opens the output folder after --open",
			Optional: true,
		},
	}
}

type versionRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Checker resolves tools on PATH and reads their versions.
type Checker struct {
	lookPath func(string) (string, error)
	run      versionRunner
}

// NewChecker returns a Checker backed by exec.LookPath.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath, run: runVersion}
}

// Check reports every tool in order.
func (c *Checker) Check(ctx context.Context, tools []Tool) []Status {
	results := make([]Status, 0, len(tools))
	for _, tool := range tools {
		results = append(results, c.check(ctx, tool))
	}
	return results
}

func (c *Checker) check(ctx context.Context, tool Tool) Status {
	tool.Command = strings.TrimSpace(tool.Command)
	status := Status{Tool: tool}
	if tool.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := c.lookPath(tool.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", tool.Command)
		return status
	}
	status.Available = true
	if len(tool.VersionArgs) == 0 {
		return status
	}

	output, err := c.run(ctx, path, tool.VersionArgs...)
	if err != nil {
		status.Available = false
		status.Detail = "version check failed: " + err.Error()
		return status
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	if scanner.Scan() {
		status.Version = strings.TrimSpace(scanner.Text())
	}
	return status
}

// Missing returns the names of required tools that are unavailable.
func Missing(statuses []Status) []string {
	var names []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			names = append(names, status.Name)
		}
	}
	return names
}

func runVersion(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output() //nolint:gosec
}
