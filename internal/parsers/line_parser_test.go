package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log-analyzer/internal/models"
)

const sampleLine = `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/25019354 HTTP/1.1" 200 927 "-" "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5" "-" "1498697422-2190034393-4708-9752759" "dc7161be3" 0.390`

func TestParse_Matched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected models.ParsedRecord
	}{
		{
			name:     "production line",
			line:     sampleLine,
			expected: models.ParsedRecord{URL: "/api/v2/banner/25019354", UserAgent: "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5", RequestTime: 0.390},
		},
		{
			name:     "query string kept",
			line:     `1.99.174.176 3b81f63526fa8  - [29/Jun/2017:03:50:22 +0300] "GET /api/1/photogenic_banners/list/?server_name=WIN7RB4 HTTP/1.1" 200 12 "-" "Python-urllib/2.7" "-" "1498697422-32900793-4708-9752770" "-" 0.133`,
			expected: models.ParsedRecord{URL: "/api/1/photogenic_banners/list/?server_name=WIN7RB4", UserAgent: "Python-urllib/2.7", RequestTime: 0.133},
		},
		{
			name:     "post with zero time",
			line:     `1.169.137.128 -  - [29/Jun/2017:03:50:23 +0300] "POST /api/v2/target/12988/list?status=1 HTTP/1.0" 200 2 "-" "Configovod" "-" "1498697423-2118016444-4708-9752777" "712e90144abee9" 0.000`,
			expected: models.ParsedRecord{URL: "/api/v2/target/12988/list?status=1", UserAgent: "Configovod", RequestTime: 0},
		},
		{
			name:     "unescaped space in url",
			line:     `1.200.76.128 f032b48fb33e1e692  - [29/Jun/2017:04:00:01 +0300] "GET /api/1/banners/?campaign=7 seven HTTP/1.1" 200 604 "-" "-" "-" "1498698001-4102637017-4708-9753223" "1835ae0f17f" 0.068`,
			expected: models.ParsedRecord{URL: "/api/1/banners/?campaign=7 seven", UserAgent: "-", RequestTime: 0.068},
		},
		{
			name:     "dash body bytes and trailing spaces",
			line:     `1.126.153.80 -  - [29/Jun/2017:04:00:00 +0300] "HEAD /export/appinstall_raw/2017-06-29/ HTTP/1.1" 304 - "-" "Mozilla/5.0" "-" "-" "-" 1.5  `,
			expected: models.ParsedRecord{URL: "/export/appinstall_raw/2017-06-29/", UserAgent: "Mozilla/5.0", RequestTime: 1.5},
		},
	}

	parser := NewLineParser()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			record, ok := parser.Parse(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected.URL, record.URL)
			assert.Equal(t, tt.expected.UserAgent, record.UserAgent)
			assert.InDelta(t, tt.expected.RequestTime, record.RequestTime, 1e-12)
		})
	}
}

func TestParse_Unmatched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{name: "empty", line: ""},
		{name: "garbage", line: "this is not an access log line"},
		{name: "dash request", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "-" 400 0 "-" "-" "-" "-" "-" 0.001`},
		{name: "request without protocol", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1" 200 927 "-" "-" "-" "-" "-" 0.390`},
		{name: "missing request time", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200 927 "-" "-" "-" "-" "-"`},
		{name: "dash request time", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200 927 "-" "-" "-" "-" "-" -`},
		{name: "negative request time", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200 927 "-" "-" "-" "-" "-" -0.5`},
		{name: "nan request time", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200 927 "-" "-" "-" "-" "-" NaN`},
		{name: "infinite request time", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200 927 "-" "-" "-" "-" "-" +Inf`},
		{name: "truncated line", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200`},
		{name: "missing quoted field", line: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/1 HTTP/1.1" 200 927 "-" "-" "-" "-" 0.390`},
	}

	parser := NewLineParser()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NotPanics(t, func() {
				record, ok := parser.Parse(tt.line)
				assert.False(t, ok)
				assert.Equal(t, models.ParsedRecord{}, record)
			})
		})
	}
}
