package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldHttpRoute  = "http_route"
	FieldHttpBytes  = "http_bytes"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldRunID      = "run_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldLogPath       = "log_path"
	FieldReportDate    = "report_date"
	FieldReportKey     = "report_key"
	FieldOutcome       = "outcome"
	FieldTotalRecords  = "total_records"
	FieldParsedRecords = "parsed_records"
	FieldParsedShare   = "parsed_share"
)
