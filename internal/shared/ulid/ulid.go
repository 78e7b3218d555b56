package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Analysis runs and HTTP requests are tagged with one,
// so log lines of a run sort by the time the run started.
var NewULID = func() string {
	return ulid.Make().String()
}
