package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the conncheck banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                                  _               _    ", "#38bdf8"},
		{"   ___ ___  _ __  _ __   ___ ___| |__   ___  ___| | __", "#22d3ee"},
		{"  / __/ _ \\| '_ \\| '_ \\ / __/ __| '_ \\ / _ \\/ __| |/ /", "#2dd4bf"},
		{" | (_| (_) | | | | | | | (_| (__| | | |  __/ (__|   < ", "#34d399"},
		{"  \\___\\___/|_| |_|_| |_|\\___\\___|_| |_|\\___|\\___|_|\\_\\", "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}

// Status colors a short status word: green for success, red for failure.
func Status(text string, ok bool) string {
	p := termenv.EnvColorProfile()
	color := "#ef4444"
	if ok {
		color = "#22c55e"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
