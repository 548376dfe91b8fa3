package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// statusTone classifies a status line for marker and color selection.
type statusTone int

const (
	toneNeutral statusTone = iota
	toneGood
	toneAttention
	toneBad
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

const statusLabelWidth = 18

// renderStatusLine formats one "marker label message" line, padding the label
// so messages line up down a column.
func renderStatusLine(label string, tone statusTone, message string, colorize bool) string {
	marker := statusMarker(tone)
	if colorize {
		if color := statusToneColor(tone); color != "" {
			marker = color + marker + ansiReset
		}
	}
	return fmt.Sprintf("  %s %-*s %s", marker, statusLabelWidth, label, message)
}

func statusMarker(tone statusTone) string {
	switch tone {
	case toneGood:
		return "+"
	case toneAttention:
		return ">"
	case toneBad:
		return "x"
	default:
		return "-"
	}
}

func statusToneColor(tone statusTone) string {
	switch tone {
	case toneGood:
		return ansiGreen
	case toneAttention:
		return ansiYellow
	case toneBad:
		return ansiRed
	default:
		return ""
	}
}

// renderHeading formats a section heading above a block of status lines.
func renderHeading(title string, colorize bool) string {
	line := strings.TrimSpace(title)
	if colorize {
		return ansiBold + line + ansiReset
	}
	return line
}

// shouldColorize reports whether ANSI colors are safe for the writer: a real
// terminal, and the user has not opted out via NO_COLOR.
func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
