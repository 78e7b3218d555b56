package compressions

import (
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec identifies how a file on disk is compressed. The zero value means plain text.
type Codec string

const (
	None   Codec = ""
	Gzip   Codec = "gzip"
	Zstd   Codec = "zstd"
	Brotli Codec = "brotli"
)

// registered lists the supported codecs in preference order.
var registered = []struct {
	codec     Codec
	extension string
}{
	{Gzip, ".gz"},
	{Zstd, ".zst"},
	{Brotli, ".br"},
}

// FromExtension maps a file extension (with the leading dot) to its codec.
// An empty extension is plain text.
func FromExtension(ext string) (Codec, bool) {
	if ext == "" {
		return None, true
	}
	for _, r := range registered {
		if r.extension == ext {
			return r.codec, true
		}
	}
	return None, false
}

// Extensions returns the supported extensions in preference order.
func Extensions() []string {
	exts := make([]string, 0, len(registered))
	for _, r := range registered {
		exts = append(exts, r.extension)
	}
	return exts
}

// Extension returns the file extension of the codec, empty for plain text.
func (c Codec) Extension() string {
	for _, r := range registered {
		if r.codec == c {
			return r.extension
		}
	}
	return ""
}

// Rank orders codecs for tie-breaking between files holding the same data: plain text is 0,
// registered codecs follow in preference order, lower wins.
func (c Codec) Rank() int {
	if c == None {
		return 0
	}
	for i, r := range registered {
		if r.codec == c {
			return i + 1
		}
	}
	return len(registered) + 1
}

// Label returns a non-empty name usable as a metric label.
func (c Codec) Label() string {
	if c == None {
		return "plain"
	}
	return string(c)
}

// NewReader wraps r so reads return decompressed bytes. Closing the returned reader does not
// close r.
func NewReader(c Codec, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported codec %q", c)
	}
}
