package models

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const (
	logDateLayout    = "20060102"
	reportDateLayout = "2006.01.02"

	reportKeyPrefix = "report-"
	reportKeySuffix = ".html"
)

// ParseLogDate parses the YYYYMMDD stamp embedded in rotated log names.
// Calendar-invalid stamps such as 20170231 are rejected.
func ParseLogDate(stamp string) (civil.Date, error) {
	if len(stamp) != len(logDateLayout) {
		return civil.Date{}, fmt.Errorf("invalid log date %q: want YYYYMMDD", stamp)
	}
	t, err := time.Parse(logDateLayout, stamp)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid log date %q: %w", stamp, err)
	}
	return civil.DateOf(t), nil
}

// ReportKey returns the storage key of the report for date, e.g. report-2017.06.30.html.
// One date maps to exactly one key, whatever log file the report was built from.
func ReportKey(date civil.Date) string {
	return reportKeyPrefix + date.In(time.UTC).Format(reportDateLayout) + reportKeySuffix
}

// ParseReportKey is the inverse of ReportKey. ok is false for names that are not report keys.
func ParseReportKey(key string) (date civil.Date, ok bool) {
	if !strings.HasPrefix(key, reportKeyPrefix) || !strings.HasSuffix(key, reportKeySuffix) {
		return civil.Date{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(key, reportKeyPrefix), reportKeySuffix)
	t, err := time.Parse(reportDateLayout, stamp)
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}
