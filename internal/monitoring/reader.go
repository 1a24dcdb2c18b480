// Package monitoring reads the rotating log files back for the monitoring
// endpoints: recent entries, request statistics, file health and retention.
package monitoring

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
)

const (
	maxLineBytes       = 1 << 20
	sizeAlertMB        = 100
	recentErrorLines   = 10
	recentErrorLimit   = 5
	errorAlertAbove    = 5
	slowEndpointMillis = 500
	topEndpointLimit   = 5
)

// Entry one structured log record
type Entry struct {
	Timestamp    string   `json:"timestamp"`
	Level        string   `json:"level"`
	Logger       string   `json:"logger"`
	Message      string   `json:"message"`
	RequestID    string   `json:"request_id,omitempty"`
	UserID       string   `json:"user_id,omitempty"`
	Endpoint     string   `json:"endpoint,omitempty"`
	ResponseTime *float64 `json:"response_time,omitempty"`
}

// Reader reads the log directory owned by a logger.Manager
type Reader struct {
	dir     string
	started time.Time
	now     func() time.Time
}

// NewReader reader over dir; uptime is measured from now
func NewReader(dir string) *Reader {
	return &Reader{dir: dir, started: time.Now(), now: time.Now}
}

// WithClock replaces the clock and uptime origin
func (r *Reader) WithClock(started time.Time, now func() time.Time) *Reader {
	r.started = started
	r.now = now
	return r
}

func (r *Reader) path(file string) string {
	return filepath.Join(r.dir, file)
}

// RecentLogs newest-first entries from app.log. Only the last 2*limit lines
// are considered before filtering.
func (r *Reader) RecentLogs(level, endpoint string, limit int) ([]Entry, error) {
	lines, err := tailLines(r.path(logger.AppFile), limit*2)
	if err != nil {
		return nil, err
	}
	level = strings.ToUpper(strings.TrimSpace(level))

	out := make([]Entry, 0, limit)
	for i := len(lines) - 1; i >= 0 && len(out) < limit; i-- {
		rec, ok := decode(lines[i])
		if !ok {
			continue
		}
		e := toEntry(rec)
		if level != "" && e.Level != level {
			continue
		}
		if endpoint != "" && !strings.Contains(e.Endpoint, endpoint) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Uptime time since the reader was created
func (r *Reader) Uptime() time.Duration {
	return r.now().Sub(r.started)
}

// Health file sizes, recent errors and alerts
type Health struct {
	Status            string   `json:"status"`
	UptimeHours       float64  `json:"uptime_hours"`
	LogFilesSizeMB    float64  `json:"log_files_size_mb"`
	RecentErrors      []Entry  `json:"recent_errors"`
	PerformanceAlerts []string `json:"performance_alerts"`
}

// HealthDetailed inspects the log directory
func (r *Reader) HealthDetailed() (*Health, error) {
	size, err := r.Size()
	if err != nil {
		return nil, err
	}
	lines, err := tailLines(r.path(logger.ErrorFile), recentErrorLines)
	if err != nil {
		return nil, err
	}

	h := &Health{
		Status:            "healthy",
		UptimeHours:       round2(r.Uptime().Hours()),
		LogFilesSizeMB:    round2(float64(size) / (1024 * 1024)),
		RecentErrors:      []Entry{},
		PerformanceAlerts: []string{},
	}
	for i := len(lines) - 1; i >= 0 && len(h.RecentErrors) < recentErrorLimit; i-- {
		rec, ok := decode(lines[i])
		if !ok {
			continue
		}
		h.RecentErrors = append(h.RecentErrors, toEntry(rec))
	}

	if h.LogFilesSizeMB > sizeAlertMB {
		h.PerformanceAlerts = append(h.PerformanceAlerts, "Log files size exceeds 100MB - consider rotation")
	}
	if len(lines) > errorAlertAbove {
		h.PerformanceAlerts = append(h.PerformanceAlerts, "High error rate detected in recent logs")
	}
	if len(h.PerformanceAlerts) > 0 {
		h.Status = "warning"
	}
	return h, nil
}

// ClearLogs removes rotated generations last modified before the cutoff.
// Live files are never touched.
func (r *Reader) ClearLogs(daysToKeep int) ([]string, error) {
	cutoff := r.now().AddDate(0, 0, -daysToKeep)
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	removed := []string{}
	for _, de := range entries {
		if de.IsDir() || !isRotated(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(r.path(de.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, err
		}
		removed = append(removed, de.Name())
	}
	sort.Strings(removed)
	return removed, nil
}

// Size bytes used by *.log files, rotated generations included
func (r *Reader) Size() (int64, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	var total int64
	for _, de := range entries {
		if de.IsDir() || !strings.Contains(de.Name(), ".log") {
			continue
		}
		if info, err := de.Info(); err == nil {
			total += info.Size()
		}
	}
	return total, nil
}

// isRotated matches name.log.N
func isRotated(name string) bool {
	i := strings.LastIndex(name, ".log.")
	if i < 0 {
		return false
	}
	suffix := name[i+len(".log."):]
	if suffix == "" {
		return false
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// tailLines last n non-empty lines of path; a missing file reads as empty
func tailLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	// ring[next] is the oldest line once the ring is full
	ring := make([]string, 0, n)
	next := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(ring) < n {
			ring = append(ring, line)
			continue
		}
		ring[next] = line
		next = (next + 1) % n
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return append(ring[next:], ring[:next]...), nil
}

// readAll every line of the live file and its rotated generations, oldest first
func (r *Reader) readAll(file string) ([]map[string]any, error) {
	paths, err := filepath.Glob(r.path(file) + ".*")
	if err != nil {
		return nil, err
	}
	paths = filterRotated(paths)
	// file.log.3 is older than file.log.1
	sort.Slice(paths, func(i, j int) bool { return paths[i] > paths[j] })
	paths = append(paths, r.path(file))

	var out []map[string]any
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			if rec, ok := decode(sc.Text()); ok {
				out = append(out, rec)
			}
		}
		err = sc.Err()
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func filterRotated(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if isRotated(filepath.Base(p)) {
			out = append(out, p)
		}
	}
	return out
}

func decode(line string) (map[string]any, bool) {
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, false
	}
	return rec, true
}

func toEntry(rec map[string]any) Entry {
	e := Entry{
		Timestamp: str(rec["timestamp"]),
		Level:     str(rec["level"]),
		Logger:    str(rec["logger"]),
		Message:   str(rec["message"]),
		RequestID: str(rec[logger.KeyRequestID]),
		UserID:    str(rec[logger.KeyUserID]),
		Endpoint:  str(rec[logger.KeyEndpoint]),
	}
	if e.Endpoint == "" {
		e.Endpoint = str(rec[logger.KeyPath])
	}
	if v, ok := rec[logger.KeyResponseTime].(float64); ok {
		e.ResponseTime = &v
	}
	return e
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
