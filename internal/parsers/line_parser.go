package parsers

import (
	"math"
	"regexp"
	"strconv"

	"log-analyzer/internal/models"
)

// linePattern follows the ui access log format:
//
//	$remote_addr $remote_user $http_x_real_ip [$time_local] "$request" $status $body_bytes_sent
//	"$http_referer" "$http_user_agent" "$http_x_forwarded_for" "$http_X_REQUEST_ID"
//	"$http_X_RB_USER" $request_time
//
// The request must be METHOD URL PROTOCOL, so "-" and other truncated request lines do not match.
// The URL is everything between the method and the protocol, unescaped spaces included.
var linePattern = regexp.MustCompile(
	`^\S+\s+\S+\s+\S+\s+\[[^\]]*\]\s+` +
		`"[A-Za-z]+\s+(?P<url>[^"]+?)\s+(?i:HTTP)/[0-9.]+"\s+` +
		`\d{3}\s+(?:\d+|-)\s+` +
		`"[^"]*"\s+"(?P<ua>[^"]*)"\s+"[^"]*"\s+"[^"]*"\s+"[^"]*"\s+` +
		`(?P<time>\S+)\s*$`,
)

var (
	urlIndex       = linePattern.SubexpIndex("url")
	userAgentIndex = linePattern.SubexpIndex("ua")
	timeIndex      = linePattern.SubexpIndex("time")
)

// LineParser extracts the URL, the user agent and the request time from a single access log line.
type LineParser interface {
	// Parse returns ok=false for any line that does not follow the format. It never panics.
	Parse(line string) (record models.ParsedRecord, ok bool)
}

type lineParser struct {
	pattern *regexp.Regexp
}

func NewLineParser() LineParser {
	return &lineParser{pattern: linePattern}
}

func (p *lineParser) Parse(line string) (models.ParsedRecord, bool) {
	match := p.pattern.FindStringSubmatch(line)
	if match == nil {
		return models.ParsedRecord{}, false
	}

	requestTime, err := strconv.ParseFloat(match[timeIndex], 64)
	if err != nil || requestTime < 0 || math.IsNaN(requestTime) || math.IsInf(requestTime, 0) {
		return models.ParsedRecord{}, false
	}

	return models.ParsedRecord{
		URL:         match[urlIndex],
		UserAgent:   match[userAgentIndex],
		RequestTime: requestTime,
	}, true
}
