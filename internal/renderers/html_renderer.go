package renderers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"log-analyzer/internal/models"
)

//go:embed templates/report.html
var templatesFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templatesFS, "templates/report.html"))

// HTMLRenderer writes a report as a standalone HTML document. The document carries the rows
// twice: as a static table and as a JSON array driving the client side sorting.
type HTMLRenderer interface {
	Render(w io.Writer, artifact *models.ReportArtifact) error
}

type htmlRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() HTMLRenderer {
	return &htmlRenderer{tmpl: reportTemplate}
}

type reportView struct {
	Date          string
	Rows          []models.ReportRow
	Clients       []models.ClientShare
	SourceLog     string
	TotalRecords  int64
	ParsedRecords int64
	TotalTime     float64
	GeneratedAt   string
}

func (r *htmlRenderer) Render(w io.Writer, artifact *models.ReportArtifact) error {
	rows := artifact.Rows
	if rows == nil {
		rows = []models.ReportRow{}
	}
	view := reportView{
		Date:          artifact.Date.String(),
		Rows:          rows,
		Clients:       artifact.Clients,
		SourceLog:     artifact.SourceLog,
		TotalRecords:  artifact.TotalRecords,
		ParsedRecords: artifact.ParsedRecords,
		TotalTime:     artifact.TotalTime,
		GeneratedAt:   artifact.GeneratedAt.UTC().Format(time.RFC3339),
	}
	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render report for %s: %w", view.Date, err)
	}
	return nil
}
