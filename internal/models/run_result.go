package models

import "cloud.google.com/go/civil"

// Outcome tells how a successful analysis run ended.
type Outcome string

const (
	OutcomeNoLogFound          Outcome = "no_log_found"
	OutcomeReportAlreadyExists Outcome = "report_already_exists"
	OutcomeReportGenerated     Outcome = "report_generated"
)

// RunResult describes a successful analysis run. Failed runs return a service error instead.
type RunResult struct {
	RunID         string      `json:"runId"`
	Outcome       Outcome     `json:"outcome"`
	LogFile       string      `json:"logFile,omitempty"`
	ReportDate    *civil.Date `json:"reportDate,omitempty"`
	ReportKey     string      `json:"reportKey,omitempty"`
	TotalRecords  int64       `json:"totalRecords,omitempty"`
	ParsedRecords int64       `json:"parsedRecords,omitempty"`
	Rows          []ReportRow `json:"-"`
}
