package analyzers

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

// AnalysisService errors
const (
	codeLowParseQuality = "ANL_1000"

	codeInternalLogLocateFailed   = "ANL_9000"
	codeInternalLogReadFailed     = "ANL_9001"
	codeInternalReportStoreFailed = "ANL_9002"
)

// errLowParseQuality returns an error when too few lines of the log could be parsed.
func errLowParseQuality(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnprocessableError(codeLowParseQuality, "too few log lines could be parsed", cause)
}

// errInternalLogLocateFailed returns an error when the log directory cannot be scanned.
func errInternalLogLocateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogLocateFailed, fmt.Errorf("logLocateFailed: %w", cause))
}

// errInternalLogReadFailed returns an error when the located log cannot be opened or read.
func errInternalLogReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogReadFailed, fmt.Errorf("logReadFailed: %w", cause))
}

// errInternalReportStoreFailed returns an error when a report store operation fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
