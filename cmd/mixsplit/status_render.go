package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"mixsplit/internal/deps"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusIndent  = "  "
	versionIndent = "    "
	versionLabel  = "Version"
)

// renderDependencyReport lays out one status line per tool, followed by an
// info line with the version when the tool reported one.
func renderDependencyReport(statuses []deps.Status, colorize bool) []string {
	width := len(versionLabel) + 1 + len(versionIndent) - len(statusIndent)
	for _, status := range statuses {
		if n := len(status.Name) + 1; n > width {
			width = n
		}
	}

	lines := renderSectionHeader("Dependencies", colorize)
	for _, status := range statuses {
		kind := dependencyKind(status)
		message := status.Command
		if !status.Available {
			message = status.Detail
		}
		lines = append(lines, renderStatusLine(statusIndent, width, status.Name, kind, message, colorize))
		if status.Version != "" {
			lines = append(lines, renderStatusLine(versionIndent, width-2, versionLabel, statusInfo, status.Version, colorize))
		}
	}
	return lines
}

func dependencyKind(status deps.Status) statusKind {
	switch {
	case status.Available:
		return statusOK
	case status.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func renderStatusLine(indent string, width int, label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", indent, width, label+":", statusText)
	if colorize {
		return statusKindColor(kind) + base + ansiReset
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
