package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// ReportRow holds the statistics of one URL as shown in the report. Percentages are against
// the totals of the whole log; values are rounded for display.
//
// Example JSON:
//
//	{
//	  "url": "/api/v2/banner/25019354",
//	  "count": 3,
//	  "count_perc": 13.636,
//	  "time_sum": 43,
//	  "time_perc": 86.667,
//	  "time_avg": 14.333,
//	  "time_max": 22,
//	  "time_med": 11
//	}
type ReportRow struct {
	URL       string  `json:"url"`
	Count     int64   `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}

// ClientShare is the number of parsed requests sent by one client family.
type ClientShare struct {
	Client    string  `json:"client"`
	Count     int64   `json:"count"`
	CountPerc float64 `json:"count_perc"`
}

// ReportArtifact is everything a rendered report shows. There is at most one per date.
type ReportArtifact struct {
	Date          civil.Date
	Rows          []ReportRow   // descending by TimeSum
	Clients       []ClientShare // descending by Count
	SourceLog     string
	TotalRecords  int64
	ParsedRecords int64
	TotalTime     float64
	GeneratedAt   time.Time
}
