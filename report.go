package freqgen

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/hhkbp2/freqgen/generator"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// ReportRow compares the expected and the observed share of one token.
// Shares are in percent; Deviation is Actual minus Expected.
type ReportRow struct {
	Token     string  `csv:"token"`
	Expected  float64 `csv:"expected_percent"`
	Actual    float64 `csv:"actual_percent"`
	Deviation float64 `csv:"deviation"`
	Count     int     `csv:"count"`
	Known     bool    `csv:"known"`
}

type ReportSummary struct {
	Tokens           int
	Generated        int
	Correlation      float64
	MeanAbsDeviation float64
	MaxAbsDeviation  float64
	// Distinct generated tokens missing from the table.
	Unknown int
}

type Report struct {
	Mode    generator.Mode
	Rows    []ReportRow
	Summary ReportSummary
}

// NewReport joins a table with the analysis of a text generated from it.
func NewReport(table *generator.FrequencyTable, analysis *generator.FrequencyAnalysis) (*Report, error) {
	if table == nil || analysis == nil {
		return nil, errors.Wrap(generator.ErrInvalidArgument, "report needs both a table and an analysis")
	}
	if table.Len() == 0 {
		return nil, errors.Wrap(generator.ErrInvalidState, "report on an empty table")
	}
	rows := make([]ReportRow, 0, table.Len()+len(analysis.Counts))
	total := table.TotalWeight()
	for _, e := range table.Entries() {
		actual := analysis.Percentage(e.Token)
		expected := e.Weight / total * 100
		rows = append(rows, ReportRow{
			Token:     e.Token,
			Expected:  expected,
			Actual:    actual,
			Deviation: actual - expected,
			Count:     analysis.Counts[e.Token],
			Known:     true,
		})
	}
	unknown := 0
	for token, count := range analysis.Counts {
		if table.Contains(token) {
			continue
		}
		unknown++
		actual := analysis.Percentage(token)
		rows = append(rows, ReportRow{
			Token:     token,
			Actual:    actual,
			Deviation: actual,
			Count:     count,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Expected != rows[j].Expected {
			return rows[i].Expected > rows[j].Expected
		}
		if rows[i].Actual != rows[j].Actual {
			return rows[i].Actual > rows[j].Actual
		}
		return rows[i].Token < rows[j].Token
	})

	summary, err := summarize(rows)
	if err != nil {
		return nil, err
	}
	summary.Tokens = table.Len()
	summary.Generated = analysis.Total
	summary.Unknown = unknown
	return &Report{
		Mode:    analysis.Mode,
		Rows:    rows,
		Summary: summary,
	}, nil
}

func summarize(rows []ReportRow) (ReportSummary, error) {
	var summary ReportSummary
	expected := make(stats.Float64Data, 0, len(rows))
	actual := make(stats.Float64Data, 0, len(rows))
	deviations := make(stats.Float64Data, 0, len(rows))
	for _, r := range rows {
		expected = append(expected, r.Expected)
		actual = append(actual, r.Actual)
		deviations = append(deviations, math.Abs(r.Deviation))
	}
	if len(rows) == 0 {
		return summary, nil
	}
	var err error
	if len(rows) > 1 {
		summary.Correlation, err = stats.Pearson(expected, actual)
		if err != nil {
			return summary, errors.Wrap(err, "correlation")
		}
	}
	summary.MeanAbsDeviation, err = stats.Mean(deviations)
	if err != nil {
		return summary, errors.Wrap(err, "mean deviation")
	}
	summary.MaxAbsDeviation, err = stats.Max(deviations)
	if err != nil {
		return summary, errors.Wrap(err, "max deviation")
	}
	return summary, nil
}

// Violations returns the rows expected at no less than minWeight percent
// whose absolute deviation exceeds tolerance percentage points.
func (self *Report) Violations(tolerance, minWeight float64) []ReportRow {
	ret := make([]ReportRow, 0)
	for _, r := range self.Rows {
		if r.Expected >= minWeight && math.Abs(r.Deviation) > tolerance {
			ret = append(ret, r)
		}
	}
	return ret
}

// WriteTable renders the first n rows, or all of them if n <= 0.
func (self *Report) WriteTable(w io.Writer, n int) {
	rows := self.Rows
	if n > 0 && n < len(rows) {
		rows = rows[:n]
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Token", "Expected %", "Actual %", "Deviation", "Count"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range rows {
		token := r.Token
		if !r.Known {
			token += " (?)"
		}
		table.Append([]string{
			fmt.Sprintf("%q", token),
			fmt.Sprintf("%.3f", r.Expected),
			fmt.Sprintf("%.3f", r.Actual),
			fmt.Sprintf("%+.3f", r.Deviation),
			fmt.Sprintf("%d", r.Count),
		})
	}
	table.Render()
}

// WriteCSV writes every row with a header line.
func (self *Report) WriteCSV(w io.Writer) error {
	rows := self.Rows
	return errors.Wrap(gocsv.Marshal(&rows, w), "write report csv")
}

func (self *Report) String() string {
	s := self.Summary
	return fmt.Sprintf("[%s: Tokens=%d, Generated=%d, Correlation=%.4f, MeanAbsDeviation=%.4f, MaxAbsDeviation=%.4f, Unknown=%d]",
		self.Mode, s.Tokens, s.Generated, s.Correlation, s.MeanAbsDeviation, s.MaxAbsDeviation, s.Unknown)
}
