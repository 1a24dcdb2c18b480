// Package security flags requests whose path or query carries an attack signature.
// Detection is observational: callers log the match and let the request proceed.
package security

import (
	"net/url"
	"strings"
)

// DefaultPatterns attack signatures checked in order
var DefaultPatterns = []string{
	// script injection
	"script", "alert", "onload", "onerror",
	// SQL injection
	"union", "select", "drop", "insert",
	// path traversal
	"../", "..\\", "etc/passwd",
	// code execution
	"eval(", "exec(", "system(",
}

// Location where a pattern matched
type Location string

const (
	LocationPath  Location = "path"
	LocationQuery Location = "query"
)

// Match first signature found in a request
type Match struct {
	Pattern  string
	Location Location
}

// Detector case-insensitive substring matcher; safe for concurrent use
type Detector struct {
	patterns []string
}

// NewDetector with no patterns uses DefaultPatterns
func NewDetector(patterns ...string) *Detector {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(p); p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Detector{patterns: lowered}
}

// Scan returns the first pattern, in list order, contained in path or query
func (d *Detector) Scan(path, query string) (Match, bool) {
	p := strings.ToLower(path)
	q := strings.ToLower(decodeQuery(query))
	for _, pattern := range d.patterns {
		if strings.Contains(p, pattern) {
			return Match{Pattern: pattern, Location: LocationPath}, true
		}
		if strings.Contains(q, pattern) {
			return Match{Pattern: pattern, Location: LocationQuery}, true
		}
	}
	return Match{}, false
}

// Patterns active signature list
func (d *Detector) Patterns() []string {
	out := make([]string, len(d.patterns))
	copy(out, d.patterns)
	return out
}

func decodeQuery(raw string) string {
	if raw == "" {
		return ""
	}
	if decoded, err := url.QueryUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
