package monitoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
)

// sample one finished request from access.log
type sample struct {
	at       time.Time
	endpoint string
	status   int
	millis   float64
	failed   bool
}

func (s sample) isError() bool { return s.failed || s.status >= 500 }

// EndpointCount request volume for one path
type EndpointCount struct {
	Endpoint string  `json:"endpoint"`
	Count    int     `json:"count"`
	AvgTime  float64 `json:"avg_time"`
}

// Stats aggregate over a trailing window
type Stats struct {
	TotalRequests   int             `json:"total_requests"`
	ErrorCount      int             `json:"error_count"`
	WarningCount    int             `json:"warning_count"`
	AvgResponseTime float64         `json:"avg_response_time"`
	TopEndpoints    []EndpointCount `json:"top_endpoints"`
	ErrorRate       float64         `json:"error_rate"`
	LastUpdated     time.Time       `json:"last_updated"`
}

// Stats counts completed and failed requests of the last window. 5xx and
// unhandled failures are errors, 4xx are warnings.
func (r *Reader) Stats(window time.Duration) (*Stats, error) {
	samples, err := r.samples(window, "")
	if err != nil {
		return nil, err
	}

	st := &Stats{TopEndpoints: []EndpointCount{}, LastUpdated: r.now().UTC()}
	st.TotalRequests = len(samples)
	groups := map[string][]float64{}
	var times []float64
	for _, s := range samples {
		switch {
		case s.isError():
			st.ErrorCount++
		case s.status >= 400:
			st.WarningCount++
		}
		times = append(times, s.millis)
		groups[s.endpoint] = append(groups[s.endpoint], s.millis)
	}
	st.AvgResponseTime = round2(mean(times))
	st.ErrorRate = percent(st.ErrorCount, st.TotalRequests)

	for ep, ts := range groups {
		st.TopEndpoints = append(st.TopEndpoints, EndpointCount{Endpoint: ep, Count: len(ts), AvgTime: round2(mean(ts))})
	}
	sort.Slice(st.TopEndpoints, func(i, j int) bool {
		a, b := st.TopEndpoints[i], st.TopEndpoints[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Endpoint < b.Endpoint
	})
	if len(st.TopEndpoints) > topEndpointLimit {
		st.TopEndpoints = st.TopEndpoints[:topEndpointLimit]
	}
	return st, nil
}

// PerformanceSummary totals for the last 24 hours
type PerformanceSummary struct {
	TotalRequests24h int     `json:"total_requests_24h"`
	AvgResponseTime  float64 `json:"avg_response_time"`
	P95ResponseTime  float64 `json:"p95_response_time"`
	P99ResponseTime  float64 `json:"p99_response_time"`
	ErrorRate        float64 `json:"error_rate"`
}

// EndpointPerformance per path figures
type EndpointPerformance struct {
	Endpoint        string  `json:"endpoint"`
	Requests24h     int     `json:"requests_24h"`
	AvgResponseTime float64 `json:"avg_response_time"`
	P95ResponseTime float64 `json:"p95_response_time"`
	ErrorRate       float64 `json:"error_rate"`
	Status          string  `json:"status"`
}

// Alert raised for a slow endpoint
type Alert struct {
	Type      string  `json:"type"`
	Endpoint  string  `json:"endpoint"`
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

// Performance report returned by PerformanceMetrics
type Performance struct {
	Summary     PerformanceSummary    `json:"summary"`
	Endpoints   []EndpointPerformance `json:"endpoints"`
	Alerts      []Alert               `json:"alerts"`
	LastUpdated time.Time             `json:"last_updated"`
}

// PerformanceMetrics latency percentiles for the last 24 hours, optionally
// restricted to paths containing endpoint
func (r *Reader) PerformanceMetrics(endpoint string) (*Performance, error) {
	samples, err := r.samples(24*time.Hour, endpoint)
	if err != nil {
		return nil, err
	}

	p := &Performance{Endpoints: []EndpointPerformance{}, Alerts: []Alert{}, LastUpdated: r.now().UTC()}
	groups := map[string][]sample{}
	var times []float64
	errs := 0
	for _, s := range samples {
		times = append(times, s.millis)
		if s.isError() {
			errs++
		}
		groups[s.endpoint] = append(groups[s.endpoint], s)
	}
	sort.Float64s(times)
	p.Summary = PerformanceSummary{
		TotalRequests24h: len(samples),
		AvgResponseTime:  round2(mean(times)),
		P95ResponseTime:  round2(percentile(times, 95)),
		P99ResponseTime:  round2(percentile(times, 99)),
		ErrorRate:        percent(errs, len(samples)),
	}

	for ep, ss := range groups {
		ts := make([]float64, 0, len(ss))
		e := 0
		for _, s := range ss {
			ts = append(ts, s.millis)
			if s.isError() {
				e++
			}
		}
		sort.Float64s(ts)
		avg := mean(ts)
		perf := EndpointPerformance{
			Endpoint:        ep,
			Requests24h:     len(ss),
			AvgResponseTime: round2(avg),
			P95ResponseTime: round2(percentile(ts, 95)),
			ErrorRate:       percent(e, len(ss)),
			Status:          "healthy",
		}
		if avg > slowEndpointMillis {
			perf.Status = "warning"
			p.Alerts = append(p.Alerts, Alert{
				Type:      "slow_endpoint",
				Endpoint:  ep,
				Message:   ep + " average response time exceeds 500ms",
				Value:     round2(avg),
				Threshold: slowEndpointMillis,
			})
		}
		p.Endpoints = append(p.Endpoints, perf)
	}
	sort.Slice(p.Endpoints, func(i, j int) bool { return p.Endpoints[i].Endpoint < p.Endpoints[j].Endpoint })
	sort.Slice(p.Alerts, func(i, j int) bool { return p.Alerts[i].Endpoint < p.Alerts[j].Endpoint })
	return p, nil
}

func (r *Reader) samples(window time.Duration, endpoint string) ([]sample, error) {
	recs, err := r.readAll(logger.AccessFile)
	if err != nil {
		return nil, err
	}
	since := r.now().Add(-window)

	var out []sample
	for _, rec := range recs {
		ev := str(rec[logger.KeyEventType])
		if ev != logger.EventRequestComplete && ev != logger.EventRequestError {
			continue
		}
		at, err := time.Parse(time.RFC3339Nano, str(rec["timestamp"]))
		if err != nil || at.Before(since) {
			continue
		}
		path := str(rec[logger.KeyPath])
		if endpoint != "" && !containsFold(path, endpoint) {
			continue
		}
		s := sample{at: at, endpoint: path, failed: ev == logger.EventRequestError}
		if v, ok := rec[logger.KeyStatusCode].(float64); ok {
			s.status = int(v)
		}
		if v, ok := rec[logger.KeyResponseTime].(float64); ok {
			s.millis = v
		}
		out = append(out, s)
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile nearest-rank over sorted xs
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(n) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
