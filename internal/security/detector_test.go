package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_Scan(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name     string
		path     string
		query    string
		pattern  string
		location Location
		matched  bool
	}{
		{"clean request", "/api/v1/tourism/crowd-status", "", "", "", false},
		{"sql in path", "/search/union select", "", "union", LocationPath, true},
		{"case insensitive", "/api/UNION/Select", "", "union", LocationPath, true},
		{"traversal", "/static/../../etc/passwd", "", "../", LocationPath, true},
		{"encoded query", "/api/v1/chat", "q=%3Cscript%3Ealert(1)%3C%2Fscript%3E", "script", LocationQuery, true},
		{"code execution", "/api/v1/yoga", "cmd=eval(payload)", "eval(", LocationQuery, true},
		{"windows traversal", "/files", `p=..\boot.ini`, `..\`, LocationQuery, true},
		{"first in list order wins", "/drop", "q=script", "script", LocationQuery, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := d.Scan(tt.path, tt.query)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.pattern, m.Pattern)
			assert.Equal(t, tt.location, m.Location)
		})
	}
}

func TestNewDetector_CustomPatterns(t *testing.T) {
	d := NewDetector("WP-ADMIN", "")

	assert.Equal(t, []string{"wp-admin"}, d.Patterns())

	m, ok := d.Scan("/wp-admin/setup.php", "")
	assert.True(t, ok)
	assert.Equal(t, "wp-admin", m.Pattern)

	_, ok = d.Scan("/script", "")
	assert.False(t, ok)
}
