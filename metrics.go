package freqgen

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
)

const (
	metricsNamespace = "freqgen"
)

// Metrics holds the run counters, labelled by mode, in a private registry.
type Metrics struct {
	registry *prometheus.Registry
	drawn    *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	runs     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	object := &Metrics{
		registry: prometheus.NewRegistry(),
		drawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tokens_drawn_total",
			Help:      "Number of tokens drawn from the sampler.",
		}, []string{"mode"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "table_rows_dropped_total",
			Help:      "Number of malformed table rows dropped while loading.",
		}, []string{"mode"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "workload_runs_total",
			Help:      "Number of finished workloads by status.",
		}, []string{"mode", "status"}),
	}
	object.registry.MustRegister(object.drawn, object.dropped, object.runs)
	return object
}

func (self *Metrics) AddDrawn(mode string, n int) {
	self.drawn.WithLabelValues(mode).Add(float64(n))
}

func (self *Metrics) AddDropped(mode string, n int) {
	self.dropped.WithLabelValues(mode).Add(float64(n))
}

func (self *Metrics) ReportRun(mode string, status StatusType) {
	self.runs.WithLabelValues(mode, status.String()).Inc()
}

func (self *Metrics) Registry() *prometheus.Registry {
	return self.registry
}

// WriteFile writes the counters in the prometheus text exposition format.
func (self *Metrics) WriteFile(fs afero.Fs, path string) error {
	families, err := self.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return errors.Wrapf(err, "write metrics to %s", path)
		}
	}
	return f.Close()
}
