package renderers

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"log-analyzer/internal/models"
)

var tableHeader = []string{"url", "count", "count_perc", "time_avg", "time_max", "time_med", "time_perc", "time_sum"}

// TableRenderer prints report rows as a plain text table, for terminals.
type TableRenderer interface {
	// Render writes at most limit rows; limit < 1 writes all of them.
	Render(w io.Writer, rows []models.ReportRow, limit int)
}

type tableRenderer struct {
	maxURLWidth int
}

func NewTableRenderer() TableRenderer {
	return &tableRenderer{maxURLWidth: 80}
}

func (r *tableRenderer) Render(w io.Writer, rows []models.ReportRow, limit int) {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	for _, row := range rows {
		table.Append([]string{
			r.truncate(row.URL),
			strconv.FormatInt(row.Count, 10),
			formatFloat(row.CountPerc),
			formatFloat(row.TimeAvg),
			formatFloat(row.TimeMax),
			formatFloat(row.TimeMed),
			formatFloat(row.TimePerc),
			formatFloat(row.TimeSum),
		})
	}
	table.Render()
}

func (r *tableRenderer) truncate(url string) string {
	runes := []rune(url)
	if len(runes) <= r.maxURLWidth {
		return url
	}
	return string(runes[:r.maxURLWidth-3]) + "..."
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
