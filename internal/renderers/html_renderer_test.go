package renderers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-analyzer/internal/models"
)

func sampleArtifact() *models.ReportArtifact {
	return &models.ReportArtifact{
		Date: civil.Date{Year: 2017, Month: 6, Day: 30},
		Rows: []models.ReportRow{
			{URL: "/api/v2/banner/25019354", Count: 3, CountPerc: 37.5, TimeSum: 2.1, TimePerc: 70, TimeAvg: 0.7, TimeMax: 1.2, TimeMed: 0.5},
			{URL: "/api/1/campaigns/?id=<script>", Count: 5, CountPerc: 62.5, TimeSum: 0.9, TimePerc: 30, TimeAvg: 0.18, TimeMax: 0.4, TimeMed: 0.1},
		},
		Clients: []models.ClientShare{
			{Client: "Lynx", Count: 5, CountPerc: 62.5},
			{Client: "Python-urllib", Count: 3, CountPerc: 37.5},
		},
		SourceLog:     "/var/log/nginx/nginx-access-ui.log-20170630.gz",
		TotalRecords:  10,
		ParsedRecords: 8,
		TotalTime:     3,
		GeneratedAt:   time.Date(2017, 7, 1, 4, 0, 0, 0, time.UTC),
	}
}

func render(t *testing.T, artifact *models.ReportArtifact) (*goquery.Document, string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewHTMLRenderer().Render(&buf, artifact))
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return doc, buf.String()
}

func TestHTMLRenderer_Table(t *testing.T) {
	t.Parallel()

	doc, _ := render(t, sampleArtifact())

	var headers []string
	doc.Find("#report thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, s.Text())
	})
	assert.Equal(t, tableHeader, headers)

	rows := doc.Find("#report tbody tr")
	require.Equal(t, 2, rows.Length())

	first := rows.First().Find("td")
	assert.Equal(t, "/api/v2/banner/25019354", first.Eq(0).Text())
	assert.Equal(t, "3", first.Eq(1).Text())
	assert.Equal(t, "37.500", first.Eq(2).Text())
	assert.Equal(t, "0.700", first.Eq(3).Text())
	assert.Equal(t, "2.100", first.Eq(7).Text())

	assert.Equal(t, "/api/1/campaigns/?id=<script>", rows.Eq(1).Find("td.url").Text())
}

func TestHTMLRenderer_Summary(t *testing.T) {
	t.Parallel()

	doc, _ := render(t, sampleArtifact())

	assert.Contains(t, doc.Find("title").Text(), "2017-06-30")
	assert.Equal(t, "/var/log/nginx/nginx-access-ui.log-20170630.gz", doc.Find("#source-log").Text())
	assert.Equal(t, "8", doc.Find("#parsed-records").Text())
	assert.Equal(t, "10", doc.Find("#total-records").Text())
	assert.Equal(t, "3.000", doc.Find("#total-time").Text())
	assert.Equal(t, "2017-07-01T04:00:00Z", doc.Find("#generated-at").Text())
}

func TestHTMLRenderer_EmbedsRowsAsJSON(t *testing.T) {
	t.Parallel()

	doc, raw := render(t, sampleArtifact())

	script := doc.Find("script").Text()
	assert.Contains(t, script, `"url":`)
	assert.Contains(t, script, `"count_perc":37.5`)
	assert.Contains(t, script, `"time_sum":2.1`)

	// the URL with markup must not break out of the script element
	assert.Equal(t, 1, strings.Count(raw, "</script>"))
}

func TestHTMLRenderer_NoRows(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.Rows = nil
	doc, _ := render(t, artifact)

	assert.Equal(t, 0, doc.Find("#report tbody tr").Length())
	assert.Contains(t, doc.Find("script").Text(), "var table = []")
}

func TestHTMLRenderer_Clients(t *testing.T) {
	t.Parallel()

	doc, _ := render(t, sampleArtifact())

	rows := doc.Find("#clients tbody tr")
	require.Equal(t, 2, rows.Length())
	cells := rows.First().Find("td")
	assert.Equal(t, "Lynx", cells.Eq(0).Text())
	assert.Equal(t, "5", cells.Eq(1).Text())
	assert.Equal(t, "62.500", cells.Eq(2).Text())

	artifact := sampleArtifact()
	artifact.Clients = nil
	doc, _ = render(t, artifact)
	assert.Equal(t, 0, doc.Find("#clients").Length())
}
