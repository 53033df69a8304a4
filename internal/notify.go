// Package internal has the collaborators that sit between the gi commands and
// the template resolver: notifier, chooser, target locator, merger and output.
package internal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/huangsam/gi/internal/contract"
)

// ConsoleNotifier prints status messages as one-liners.
// It is safe for concurrent use.
type ConsoleNotifier struct {
	mu        sync.Mutex
	w         io.Writer
	useColors bool
}

var _ contract.Notifier = &ConsoleNotifier{} // Compile-time check

// NewConsoleNotifier creates a notifier that writes to w, normally os.Stderr.
func NewConsoleNotifier(w io.Writer, useColors bool) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, useColors: useColors}
}

// Notify implements the Notifier interface.
func (n *ConsoleNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prefix, c := classifyMessage(msg)
	if n.useColors {
		_, _ = c.Fprintf(n.w, "%s %s\n", prefix, msg)
		return
	}
	_, _ = fmt.Fprintf(n.w, "%s %s\n", prefix, msg)
}

// classifyMessage picks the prefix and color for a status message.
func classifyMessage(msg string) (string, *color.Color) {
	switch {
	case strings.HasPrefix(msg, "Failed"), strings.HasPrefix(msg, "An error"):
		return "❌", contract.ErrorColor
	case strings.HasPrefix(msg, "No "), strings.HasSuffix(msg, "canceled"):
		return "⚠️ ", contract.WarnColor
	case strings.HasSuffix(msg, "successfully"):
		return "✅", contract.SuccessColor
	default:
		return "💬", contract.InfoColor
	}
}
