package http

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

// HTTP surface errors
const (
	codeInvalidReportDate = "API_1000"
	codeRunInProgress     = "API_1001"
	codeReportNotFound    = "API_1002"

	codeInternalReportStoreFailed = "API_9000"
)

// errInvalidReportDate returns an error when the {date} path parameter is not YYYY-MM-DD.
func errInvalidReportDate(raw string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidReportDate, fmt.Sprintf("invalid report date %q: want YYYY-MM-DD", raw), cause)
}

// errRunInProgress returns an error when another analysis run holds the run lock.
func errRunInProgress() *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeRunInProgress, "analysis run already in progress", nil)
}

// errReportNotFound returns an error when there is no report for the requested date.
func errReportNotFound(date string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, "no report for "+date, cause)
}

// errInternalReportStoreFailed returns an error when the report store cannot be read.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
