package models

import (
	"cloud.google.com/go/civil"

	"log-analyzer/internal/shared/compressions"
)

// LogFile describes a rotated access log found in the log directory. Values are built once by
// the locator and never mutated afterwards.
type LogFile struct {
	Name  string             // file name, also its key in the log storage
	Path  string             // absolute path, for logs and error messages
	Date  civil.Date         // date embedded in the name
	Codec compressions.Codec // compressions.None for plain text
}

// Compressed reports whether the file has to be decompressed while reading.
func (f LogFile) Compressed() bool {
	return f.Codec != compressions.None
}
