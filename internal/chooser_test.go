package internal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPromptChooser(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		label  string
		chosen bool
	}{
		{name: "by number", input: "2\n", label: "Overwrite", chosen: true},
		{name: "by label", input: "append\n", label: "Append", chosen: true},
		{name: "no trailing newline", input: "1", label: "Append", chosen: true},
		{name: "retry after invalid", input: "9\n1\n", label: "Append", chosen: true},
		{name: "empty answer", input: "\n", chosen: false},
		{name: "end of input", input: "", chosen: false},
		{name: "too many invalid answers", input: "x\ny\nz\n1\n", chosen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewPromptChooser(strings.NewReader(tt.input), &out, false)

			label, ok := c.PresentChoices(context.Background(), schema.MergeChoices)
			assert.Equal(t, tt.chosen, ok)
			assert.Equal(t, tt.label, label)
			assert.Contains(t, out.String(), "  1) Append - Append to current .gitignore")
			assert.Contains(t, out.String(), "  2) Overwrite - Overwrite current .gitignore")
		})
	}
}

func TestPromptChooserNoChoices(t *testing.T) {
	var out bytes.Buffer
	c := NewPromptChooser(strings.NewReader("1\n"), &out, false)

	_, ok := c.PresentChoices(context.Background(), nil)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestPromptChooserCanceled(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewPromptChooser(r, io.Discard, false)
	_, ok := c.PresentChoices(ctx, schema.MergeChoices)
	assert.False(t, ok)
}

func TestStaticChooser(t *testing.T) {
	t.Run("preset label", func(t *testing.T) {
		c := StaticChooser{Label: "overwrite"}
		label, ok := c.PresentChoices(context.Background(), schema.MergeChoices)
		assert.True(t, ok)
		assert.Equal(t, "Overwrite", label)
	})

	t.Run("defers to next", func(t *testing.T) {
		choices := NameChoices([]string{"go", "node"})
		next := &contract.MockChooser{}
		next.On("PresentChoices", mock.Anything, choices).Return("node", true).Once()

		c := StaticChooser{Label: "Append", Next: next}
		label, ok := c.PresentChoices(context.Background(), choices)
		assert.True(t, ok)
		assert.Equal(t, "node", label)
		next.AssertExpectations(t)
	})

	t.Run("nothing to defer to", func(t *testing.T) {
		c := StaticChooser{}
		_, ok := c.PresentChoices(context.Background(), schema.MergeChoices)
		assert.False(t, ok)
	})
}

func TestNameChoices(t *testing.T) {
	assert.Equal(t, []schema.Choice{{Label: "go"}, {Label: "node"}}, NameChoices([]string{"go", "node"}))
	assert.Empty(t, NameChoices(nil))
}
