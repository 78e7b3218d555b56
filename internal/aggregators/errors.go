package aggregators

import "errors"

// ErrLowParseQuality means too few lines of the log matched the expected format to trust the
// statistics built from it.
var ErrLowParseQuality = errors.New("low parse quality")
