package iocache

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/gi/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// timeLayout is used for every timestamp shown by cache commands.
const timeLayout = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(w, "Cache Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format(timeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format(timeLayout))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintCacheEntries renders the cached records as a table.
func PrintCacheEntries(w io.Writer, records []schema.CacheRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Written", "Size(b)"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, record := range records {
		data = append(data, []string{
			record.Key,
			record.Timestamp.Format(timeLayout),
			strconv.FormatInt(record.SizeBytes, 10),
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error adding table data: %w", err)
	}
	return table.Render()
}
