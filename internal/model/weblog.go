package model

// WebLogRecord is one synthetic web server access log entry.
// Timestamps are kept as strings in the on-disk format; parsing happens
// during processing so malformed rows fail the processing stage, not the read.
type WebLogRecord struct {
	Timestamp    string  `csv:"timestamp" json:"timestamp"`
	IPAddress    string  `csv:"ip_address" json:"ip_address"`
	UserID       string  `csv:"user_id" json:"user_id"`
	Method       string  `csv:"method" json:"method"`
	Endpoint     string  `csv:"endpoint" json:"endpoint"`
	StatusCode   int     `csv:"status_code" json:"status_code"`
	ResponseTime float64 `csv:"response_time" json:"response_time"`
	UserAgent    string  `csv:"user_agent" json:"user_agent"`
}

// ProcessedWebLog is a web log record after calendar/flag derivation.
type ProcessedWebLog struct {
	WebLogRecord
	Date    string `csv:"date" json:"date"`
	Hour    int    `csv:"hour" json:"hour"`
	IsError bool   `csv:"is_error" json:"is_error"`
}
