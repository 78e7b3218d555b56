package models

// ParsedRecord is what a matched access log line contributes to the statistics.
type ParsedRecord struct {
	URL         string
	UserAgent   string
	RequestTime float64 // seconds, never negative
}

// URLStats accumulates the samples of one URL in encounter order.
// Count always equals len(Times).
type URLStats struct {
	URL   string
	Count int64
	Times []float64
}

// Add records one request time.
func (s *URLStats) Add(requestTime float64) {
	s.Count++
	s.Times = append(s.Times, requestTime)
}

// AggregationResult is the outcome of a single pass over a log file.
//
// Invariants: ParsedRecords <= TotalRecords and TotalTime equals the sum of all Times in PerURL.
// Order lists every key of PerURL once, in the order the URL was first seen.
type AggregationResult struct {
	TotalRecords  int64
	ParsedRecords int64
	TotalTime     float64
	PerURL        map[string]*URLStats
	Order         []string
	Clients       map[string]int64 // parsed records per client family
}

func NewAggregationResult() *AggregationResult {
	return &AggregationResult{
		PerURL:  make(map[string]*URLStats),
		Clients: make(map[string]int64),
	}
}

// Add folds a parsed record into the result.
func (r *AggregationResult) Add(record ParsedRecord) {
	r.ParsedRecords++
	r.TotalTime += record.RequestTime

	stats, exists := r.PerURL[record.URL]
	if !exists {
		stats = &URLStats{URL: record.URL}
		r.PerURL[record.URL] = stats
		r.Order = append(r.Order, record.URL)
	}
	stats.Add(record.RequestTime)
}

// AddClient counts one parsed record against a client family.
func (r *AggregationResult) AddClient(family string) {
	r.Clients[family]++
}

// ParsedShare returns ParsedRecords/TotalRecords, 0 for an empty log.
func (r *AggregationResult) ParsedShare() float64 {
	if r.TotalRecords == 0 {
		return 0
	}
	return float64(r.ParsedRecords) / float64(r.TotalRecords)
}
