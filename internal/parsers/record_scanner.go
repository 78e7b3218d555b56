package parsers

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"log-analyzer/internal/models"
)

const (
	readBufferSize = 64 * 1024
	maxLineLength  = 4 * 1024 * 1024
)

// RecordScanner reads a log line by line and parses each line as it goes. Every line counts as
// a record, including the ones the parser rejects; Record tells them apart. A line longer than
// maxLineLength is drained without being kept and counts as one rejected record.
//
// Typical use:
//
//	scanner := parsers.NewRecordScanner(r, parser)
//	for scanner.Scan() {
//		record, ok := scanner.Record()
//		...
//	}
//	if err := scanner.Err(); err != nil { ... }
type RecordScanner struct {
	reader  *bufio.Reader
	parser  LineParser
	line    []byte
	record  models.ParsedRecord
	matched bool
	err     error
}

func NewRecordScanner(r io.Reader, parser LineParser) *RecordScanner {
	return &RecordScanner{
		reader: bufio.NewReaderSize(r, readBufferSize),
		parser: parser,
	}
}

// Scan advances to the next line. It returns false at the end of input or on a read error.
func (s *RecordScanner) Scan() bool {
	s.record, s.matched = models.ParsedRecord{}, false
	if s.err != nil {
		return false
	}

	line, oversized, err := s.readLine()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
			return false
		}
		if len(line) == 0 && !oversized {
			return false
		}
	}

	if oversized {
		metricOversizedLines.Inc()
		metricUnmatchedRecords.Inc()
		return true
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	s.record, s.matched = s.parser.Parse(string(line))
	if s.matched {
		metricParsedRecords.Inc()
	} else {
		metricUnmatchedRecords.Inc()
	}
	return true
}

// readLine returns the next line with its newline. Once a line outgrows maxLineLength its
// content is dropped and the rest of it is read through to the next newline.
func (s *RecordScanner) readLine() ([]byte, bool, error) {
	s.line = s.line[:0]
	oversized := false
	for {
		chunk, err := s.reader.ReadSlice('\n')
		if !oversized {
			if len(s.line)+len(chunk) > maxLineLength {
				oversized = true
				s.line = s.line[:0]
			} else {
				s.line = append(s.line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return s.line, oversized, err
	}
}

// Record returns the record of the current line, ok is false when the line was rejected.
func (s *RecordScanner) Record() (models.ParsedRecord, bool) {
	return s.record, s.matched
}

// Err returns the first read error, nil at a clean end of input.
func (s *RecordScanner) Err() error {
	return s.err
}
