package freqgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hhkbp2/freqgen/generator"
	"github.com/hhkbp2/testify/require"
)

func newTestReport(t *testing.T, text string) *Report {
	table, err := generator.NewFrequencyTable([]generator.FrequencyEntry{
		{Token: "a", Weight: 50},
		{Token: "b", Weight: 30},
		{Token: "c", Weight: 20},
	})
	require.Nil(t, err)
	analysis, err := generator.Analyze(text, generator.ModeWord)
	require.Nil(t, err)
	report, err := NewReport(table, analysis)
	require.Nil(t, err)
	return report
}

func TestReportRows(t *testing.T) {
	// a=4/10, b=3/10, x=2/10, c=1/10
	report := newTestReport(t, "a a a a b b b x x c")
	require.Equal(t, 4, len(report.Rows))
	tokens := make([]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		tokens = append(tokens, r.Token)
	}
	require.Equal(t, []string{"a", "b", "c", "x"}, tokens)

	a := report.Rows[0]
	require.InDelta(t, 50, a.Expected, 1e-9)
	require.InDelta(t, 40, a.Actual, 1e-9)
	require.InDelta(t, -10, a.Deviation, 1e-9)
	require.Equal(t, 4, a.Count)
	require.True(t, a.Known)

	x := report.Rows[3]
	require.False(t, x.Known)
	require.InDelta(t, 20, x.Actual, 1e-9)
	require.InDelta(t, 20, x.Deviation, 1e-9)

	s := report.Summary
	require.Equal(t, 3, s.Tokens)
	require.Equal(t, 10, s.Generated)
	require.Equal(t, 1, s.Unknown)
	// |−10| + |0| + |−10| + |20| over 4 rows
	require.InDelta(t, 10, s.MeanAbsDeviation, 1e-9)
	require.InDelta(t, 20, s.MaxAbsDeviation, 1e-9)
	require.True(t, s.Correlation < 1)
}

func TestReportPerfectMatch(t *testing.T) {
	report := newTestReport(t, "a a a a a b b b c c")
	s := report.Summary
	require.Equal(t, 0, s.Unknown)
	require.InDelta(t, 0, s.MaxAbsDeviation, 1e-9)
	require.InDelta(t, 1, s.Correlation, 1e-9)
	require.Equal(t, 0, len(report.Violations(2, 5)))
}

func TestReportViolations(t *testing.T) {
	report := newTestReport(t, "a a a a b b b x x c")
	v := report.Violations(2, 5)
	require.Equal(t, 2, len(v))
	require.Equal(t, "a", v[0].Token)
	require.Equal(t, "c", v[1].Token)
	// unknown tokens have no expected share
	v = report.Violations(2, 25)
	require.Equal(t, 1, len(v))
	require.Equal(t, "a", v[0].Token)
}

func TestReportInvalid(t *testing.T) {
	_, err := NewReport(nil, nil)
	require.True(t, generator.IsInvalidArgument(err))
}

func TestReportCSV(t *testing.T) {
	report := newTestReport(t, "a a a a b b b x x c")
	var buf bytes.Buffer
	require.Nil(t, report.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, 5, len(lines))
	require.Equal(t, "token,expected_percent,actual_percent,deviation,count,known", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "a,50,40,"))
	require.True(t, strings.HasSuffix(lines[4], ",2,false"))
}

func TestReportTable(t *testing.T) {
	report := newTestReport(t, "a a a a b b b x x c")
	var buf bytes.Buffer
	report.WriteTable(&buf, 2)
	s := buf.String()
	require.Contains(t, s, "EXPECTED %")
	require.Contains(t, s, "50.000")
	require.Contains(t, s, "-10.000")
	require.NotContains(t, s, "\"x (?)\"")
	require.Contains(t, report.String(), "Unknown=1")
}
