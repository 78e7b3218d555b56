package classifiers

import (
	"strings"

	"github.com/mileusna/useragent"
)

// UnknownClient is the family of requests without a usable user agent.
const UnknownClient = "unknown"

// ClientClassifier reduces a raw user agent to its client family, e.g. "Chrome" or "Lynx".
//
//go:generate mockgen -source=client_classifier.go -destination=./mocks/client_classifier_mock.go -package=mocks
type ClientClassifier interface {
	Classify(userAgent string) string
}

type clientClassifier struct{}

func NewClientClassifier() ClientClassifier {
	return &clientClassifier{}
}

// Classify returns the parsed family, the raw user agent when parsing finds no family, and
// UnknownClient for an empty or "-" user agent.
func (c *clientClassifier) Classify(userAgent string) string {
	ua := strings.TrimSpace(userAgent)
	if ua == "" || ua == "-" {
		return UnknownClient
	}

	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
