package freqgen

import (
	"testing"

	"github.com/hhkbp2/testify/require"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.AddDrawn("word", 10)
	m.AddDrawn("word", 5)
	m.AddDropped("bigram", 2)
	m.ReportRun("word", StatusOK)
	require.Equal(t, 15.0, testutil.ToFloat64(m.drawn.WithLabelValues("word")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.dropped.WithLabelValues("bigram")))

	fs := afero.NewMemMapFs()
	require.Nil(t, m.WriteFile(fs, "Results/metrics.prom"))
	b, err := afero.ReadFile(fs, "Results/metrics.prom")
	require.Nil(t, err)
	s := string(b)
	require.Contains(t, s, "# TYPE freqgen_tokens_drawn_total counter")
	require.Contains(t, s, `freqgen_tokens_drawn_total{mode="word"} 15`)
	require.Contains(t, s, `freqgen_table_rows_dropped_total{mode="bigram"} 2`)
	require.Contains(t, s, `freqgen_workload_runs_total{mode="word",status="OK"} 1`)
}
