package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"golang.org/x/term"
)

// maxPromptAttempts bounds how often an unreadable answer is asked again.
const maxPromptAttempts = 3

// PromptChooser asks the user to pick a choice on a numbered prompt.
type PromptChooser struct {
	in        *bufio.Reader
	out       io.Writer
	useColors bool
}

var _ contract.Chooser = &PromptChooser{} // Compile-time check

// NewPromptChooser creates a chooser that reads answers from in and prints to out.
func NewPromptChooser(in io.Reader, out io.Writer, useColors bool) *PromptChooser {
	return &PromptChooser{in: bufio.NewReader(in), out: out, useColors: useColors}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PresentChoices implements the Chooser interface.
// An answer is either the 1-based number or the label itself (case-insensitive).
// An empty answer, end of input or cancellation means nothing was selected.
func (c *PromptChooser) PresentChoices(ctx context.Context, choices []schema.Choice) (string, bool) {
	if len(choices) == 0 {
		return "", false
	}

	c.printChoices(choices)
	for range maxPromptAttempts {
		_, _ = fmt.Fprintf(c.out, "Select [1-%d]: ", len(choices))
		answer, ok := c.readLine(ctx)
		if !ok || answer == "" {
			return "", false
		}
		if label, found := matchChoice(choices, answer); found {
			return label, true
		}
		_, _ = fmt.Fprintf(c.out, "Invalid choice %q\n", answer)
	}
	return "", false
}

func (c *PromptChooser) printChoices(choices []schema.Choice) {
	for i, choice := range choices {
		label := choice.Label
		if c.useColors {
			label = contract.InfoColor.Sprint(label)
		}
		if choice.Description == "" {
			_, _ = fmt.Fprintf(c.out, "%3d) %s\n", i+1, label)
			continue
		}
		_, _ = fmt.Fprintf(c.out, "%3d) %s - %s\n", i+1, label, choice.Description)
	}
}

// readLine reads one answer without holding the caller past ctx cancellation.
func (c *PromptChooser) readLine(ctx context.Context) (string, bool) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", false
	case res := <-ch:
		line := strings.TrimSpace(res.line)
		if res.err != nil && line == "" {
			return "", false
		}
		return line, true
	}
}

// matchChoice resolves an answer against the offered choices.
func matchChoice(choices []schema.Choice, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1].Label, true
		}
		return "", false
	}
	for _, choice := range choices {
		if strings.EqualFold(choice.Label, answer) {
			return choice.Label, true
		}
	}
	return "", false
}

// StaticChooser answers with a preset label when it is among the choices and
// defers to Next otherwise. A nil Next selects nothing.
type StaticChooser struct {
	Label string
	Next  contract.Chooser
}

var _ contract.Chooser = StaticChooser{} // Compile-time check

// PresentChoices implements the Chooser interface.
func (c StaticChooser) PresentChoices(ctx context.Context, choices []schema.Choice) (string, bool) {
	if c.Label != "" {
		if label, found := matchChoice(choices, c.Label); found {
			return label, true
		}
	}
	if c.Next == nil {
		return "", false
	}
	return c.Next.PresentChoices(ctx, choices)
}

// NameChoices turns template names into choices without descriptions.
func NameChoices(names []string) []schema.Choice {
	choices := make([]schema.Choice, 0, len(names))
	for _, name := range names {
		choices = append(choices, schema.Choice{Label: name})
	}
	return choices
}
