package rankers

import (
	"sort"

	"github.com/shopspring/decimal"

	"log-analyzer/internal/models"
)

const displayPrecision = 3

// ReportBuilder turns aggregated statistics into the ranked report table.
type ReportBuilder interface {
	// Build returns at most topN rows, descending by time_sum. URLs with equal time_sum keep the
	// order in which they first appeared in the log. Percentages are shares of the whole log.
	Build(result *models.AggregationResult, topN int) []models.ReportRow

	// BuildClients returns at most topN client families, descending by count and then by name.
	BuildClients(result *models.AggregationResult, topN int) []models.ClientShare
}

type reportBuilder struct{}

func NewReportBuilder() ReportBuilder {
	return &reportBuilder{}
}

type urlTotal struct {
	stats   *models.URLStats
	timeSum float64
}

func (b *reportBuilder) Build(result *models.AggregationResult, topN int) []models.ReportRow {
	if result == nil || topN < 1 {
		return []models.ReportRow{}
	}

	totals := make([]urlTotal, 0, len(result.Order))
	for _, url := range result.Order {
		stats := result.PerURL[url]
		totals = append(totals, urlTotal{stats: stats, timeSum: sum(stats.Times)})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].timeSum > totals[j].timeSum
	})
	if len(totals) > topN {
		totals = totals[:topN]
	}

	rows := make([]models.ReportRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, models.ReportRow{
			URL:       t.stats.URL,
			Count:     t.stats.Count,
			CountPerc: round(percent(float64(t.stats.Count), float64(result.ParsedRecords))),
			TimeSum:   round(t.timeSum),
			TimePerc:  round(percent(t.timeSum, result.TotalTime)),
			TimeAvg:   round(ratio(t.timeSum, float64(t.stats.Count))),
			TimeMax:   round(maxOf(t.stats.Times)),
			TimeMed:   round(Median(t.stats.Times)),
		})
	}
	return rows
}

func (b *reportBuilder) BuildClients(result *models.AggregationResult, topN int) []models.ClientShare {
	if result == nil || topN < 1 {
		return []models.ClientShare{}
	}

	shares := make([]models.ClientShare, 0, len(result.Clients))
	for client, count := range result.Clients {
		shares = append(shares, models.ClientShare{Client: client, Count: count})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Client < shares[j].Client
	})
	if len(shares) > topN {
		shares = shares[:topN]
	}
	for i := range shares {
		shares[i].CountPerc = round(percent(float64(shares[i].Count), float64(result.ParsedRecords)))
	}
	return shares
}

// Median returns the middle value of samples, the mean of the two middle values for an even
// count and 0 for no samples. samples is not modified.
func Median(samples []float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func sum(samples []float64) float64 {
	total := 0.0
	for _, s := range samples {
		total += s
	}
	return total
}

func maxOf(samples []float64) float64 {
	m := 0.0
	for _, s := range samples {
		if s > m {
			m = s
		}
	}
	return m
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func percent(part, whole float64) float64 {
	return 100 * ratio(part, whole)
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(displayPrecision).InexactFloat64()
}
