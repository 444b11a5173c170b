package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/juggler/prefabs"
	"golang.design/x/clipboard"
)

// Clipboard receives the shareable score line.
type Clipboard interface {
	WriteText(s string) error
}

type systemClipboard struct{}

// openClipboard returns the OS clipboard, or an error when the platform
// has none (headless Linux without X11, for one).
func openClipboard() (Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("share: clipboard: %w", err)
	}
	return systemClipboard{}, nil
}

func (systemClipboard) WriteText(s string) error {
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

func shareText(theme *prefabs.ThemeSpec, score int) string {
	title := "FOOTBALL JUGGLING"
	if theme != nil && strings.TrimSpace(theme.Title) != "" {
		title = strings.TrimSpace(theme.Title)
	}
	line := fmt.Sprintf("%s: %s", title, pointsLabel(score))
	if theme != nil {
		if verdict := theme.Verdict(score); verdict != "" {
			line += " - " + verdict
		}
	}
	return line
}
