package metrics

import (
	"database/sql"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SystemSources values sampled on every scrape. Nil fields are skipped.
type SystemSources struct {
	DB             *sql.DB
	DBName         string
	TrackedClients func() int // rate limiter counters held in memory
	LogDirBytes    func() int64
}

// RegisterSystemCollectors exposes connection pool statistics and the
// pull-only gauges in src. Collectors already registered are left as is.
func RegisterSystemCollectors(reg prometheus.Registerer, src SystemSources) error {
	var cs []prometheus.Collector

	if src.DB != nil {
		name := src.DBName
		if name == "" {
			name = "deep_shiva"
		}
		cs = append(cs, collectors.NewDBStatsCollector(src.DB, name))
	}
	if src.TrackedClients != nil {
		cs = append(cs, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "deep_shiva_rate_limit_tracked_clients",
			Help: "Client counters held by the in-memory rate limiter",
		}, func() float64 { return float64(src.TrackedClients()) }))
	}
	if src.LogDirBytes != nil {
		cs = append(cs, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "deep_shiva_log_files_bytes",
			Help: "Total size of the log directory",
		}, func() float64 { return float64(src.LogDirBytes()) }))
	}

	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
