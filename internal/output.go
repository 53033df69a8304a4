package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80
	columnPadding    = 4 // Border and cell padding per column
	maxListColumns   = 8
)

// WriteTemplateNames writes the catalog in the configured format to the output
// file, or to stdout when no file is configured.
func WriteTemplateNames(names []string, mode schema.OutputMode, outputFile string) error {
	writer := func(w io.Writer) error {
		return writeTemplateNames(w, names, mode, terminalWidth())
	}
	return writeWithFile(outputFile, writer, fmt.Sprintf("Wrote %d template names", len(names)))
}

func writeTemplateNames(w io.Writer, names []string, mode schema.OutputMode, width int) error {
	switch mode {
	case schema.JSONOut:
		return writeJSON(w, names)
	case schema.CSVOut:
		return writeNamesCSV(w, names)
	default:
		return writeNamesTable(w, names, width)
	}
}

// WriteTemplateContent writes a template body verbatim.
func WriteTemplateContent(content string, outputFile string) error {
	writer := func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	}
	return writeWithFile(outputFile, writer, "Wrote template")
}

// writeWithFile opens the output target, runs writer on it and cleans up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeNamesCSV(w io.Writer, names []string) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{"index", "name"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, name := range names {
		if err := csvWriter.Write([]string{strconv.Itoa(i + 1), name}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// writeNamesTable lays the names out column-major in a grid sized to width.
func writeNamesTable(w io.Writer, names []string, width int) error {
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No templates found.")
		return err
	}

	cols := gridColumns(names, width)
	rows := (len(names) + cols - 1) / cols

	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, rows)
	for r := range rows {
		data[r] = make([]string, cols)
		for c := range cols {
			if i := c*rows + r; i < len(names) {
				data[r][c] = names[i]
			}
		}
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error adding table data: %w", err)
	}
	return table.Render()
}

// gridColumns returns how many columns of the longest name fit in width.
func gridColumns(names []string, width int) int {
	longest := 0
	for _, name := range names {
		longest = max(longest, len(name))
	}
	cols := width / (longest + columnPadding)
	return max(1, min(cols, maxListColumns, len(names)))
}

// terminalWidth returns the stdout terminal width, or a default when stdout
// is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
