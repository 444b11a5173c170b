package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/milk9111/juggler/notify"
)

// parseListeners turns the -notify flag into the completion fan-out. "log"
// is the game hearing its own message; "stdout" is the embedding host.
func parseListeners(list string, stdout io.Writer) (notify.Broadcast, error) {
	var out notify.Broadcast
	seen := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		switch name {
		case "none":
		case "log":
			out = append(out, notify.LogNotifier{Logger: log.Default()})
		case "stdout":
			out = append(out, notify.NewStreamNotifier(stdout))
		default:
			return nil, fmt.Errorf("notify: unknown listener %q", name)
		}
	}
	return out, nil
}
