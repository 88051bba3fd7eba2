package freqgen

import (
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hhkbp2/freqgen/chart"
	"github.com/hhkbp2/freqgen/generator"
	strftime "github.com/hhkbp2/go-strftime"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	timeFormat = "%Y-%m-%d %H:%M:%S"
)

func timestamp() string {
	return strftime.Format(timeFormat, time.Now())
}

// Result holds everything produced by one workload.
type Result struct {
	Workload   *Workload
	Table      *generator.FrequencyTable
	Sampler    *generator.DiscreteGenerator
	Text       string
	Analysis   *generator.FrequencyAnalysis
	Report     *Report
	Violations []ReportRow
}

// drawRecorder measures the 1-based rank of every drawn token.
type drawRecorder struct {
	measurements Measurements
	operation    string
}

func (self *drawRecorder) ObserveDraw(rank int) {
	self.measurements.Measure(self.operation, int64(rank+1))
}

type Runner struct {
	fs           afero.Fs
	source       TableSource
	workloads    []*Workload
	measurements *DefaultMeasurements
	metrics      *Metrics
	seed         int64
	resultsDir   string
	exporter     string
	exportFile   string
	metricsFile  string
	charts       bool
	reportRows   int
	tolerance    float64
	minWeight    float64
}

func NewRunner(fs afero.Fs, p Properties) (*Runner, error) {
	className := p.GetDefault(PropertySource, PropertySourceDefault)
	source, err := NewTableSource(className, fs, p)
	if err != nil {
		return nil, err
	}
	workloads, err := NewWorkloads(p)
	if err != nil {
		return nil, err
	}
	measurements, err := NewDefaultMeasurements(p)
	if err != nil {
		return nil, err
	}
	seed, err := p.GetInt(PropertySeed, PropertySeedDefault)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = generator.NewTimeSeed()
	}
	charts, err := p.GetBool(PropertyCharts, PropertyChartsDefault)
	if err != nil {
		return nil, err
	}
	reportRows, err := p.GetInt(PropertyReportRows, PropertyReportRowsDefault)
	if err != nil {
		return nil, err
	}
	tolerance, err := p.GetFloat(PropertyValidationTolerance, PropertyValidationToleranceDefault)
	if err != nil {
		return nil, err
	}
	minWeight, err := p.GetFloat(PropertyValidationMinWeight, PropertyValidationMinWeightDefault)
	if err != nil {
		return nil, err
	}
	exporter := p.GetDefault(PropertyExporter, PropertyExporterDefault)
	if _, ok := MeasurementExporters[exporter]; !ok {
		return nil, generator.NewErrorf("unsupported measurement exporter: %s", exporter)
	}
	return &Runner{
		fs:           fs,
		source:       source,
		workloads:    workloads,
		measurements: measurements,
		metrics:      NewMetrics(),
		seed:         seed,
		resultsDir:   p.GetDefault(PropertyResultsDir, PropertyResultsDirDefault),
		exporter:     exporter,
		exportFile:   p.GetDefault(PropertyExportFile, PropertyExportFileDefault),
		metricsFile:  p.GetDefault(PropertyMetricsFile, PropertyMetricsFileDefault),
		charts:       charts,
		reportRows:   int(reportRows),
		tolerance:    tolerance,
		minWeight:    minWeight,
	}, nil
}

func (self *Runner) Seed() int64 {
	return self.seed
}

func (self *Runner) Workloads() []*Workload {
	return self.workloads
}

func (self *Runner) Measurements() Measurements {
	return self.measurements
}

func (self *Runner) Metrics() *Metrics {
	return self.metrics
}

func (self *Runner) path(name string) string {
	return filepath.Join(self.resultsDir, name)
}

// Close releases the table source when it holds external resources.
func (self *Runner) Close() error {
	if c, ok := self.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Run executes every workload in order, then exports the measurements and
// the counters. It stops at the first failing workload. The table source
// is closed on return.
func (self *Runner) Run() (results []*Result, err error) {
	defer func() {
		if cerr := self.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close table source")
		}
	}()
	Printf("%s starting, seed %d, results in %s", timestamp(), self.seed, self.resultsDir)
	if err := self.fs.MkdirAll(self.resultsDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create results directory %s", self.resultsDir)
	}
	results = make([]*Result, 0, len(self.workloads))
	for _, w := range self.workloads {
		r, err := self.RunWorkload(w)
		self.metrics.ReportRun(w.Mode.String(), StatusOf(err))
		if err != nil {
			return results, errors.WithMessagef(err, "workload %s", w.Name)
		}
		results = append(results, r)
	}
	if err := self.export(); err != nil {
		return results, err
	}
	Printf("%s finished %s workloads", timestamp(), humanize.Comma(int64(len(results))))
	if s := self.measurements.GetSummary(); len(s) > 0 {
		Infof("%s", s)
	}
	return results, nil
}

func (self *Runner) export() error {
	f, err := self.fs.Create(self.path(self.exportFile))
	if err != nil {
		return errors.Wrap(err, "create measurement export")
	}
	exporter, err := NewMeasurementExporter(self.exporter, f)
	if err != nil {
		f.Close()
		return err
	}
	err = self.measurements.ExportMeasurements(exporter)
	if cerr := exporter.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if len(self.metricsFile) > 0 {
		return self.metrics.WriteFile(self.fs, self.path(self.metricsFile))
	}
	return nil
}

func (self *Runner) load(w *Workload) (*generator.FrequencyTable, error) {
	op := w.Operation(OperationLoad)
	start := time.Now().UnixNano()
	table, err := self.source.Load(w.Mode)
	self.measurements.Measure(op, NanosecondToMicrosecond(time.Now().UnixNano()-start))
	self.measurements.ReportStatus(op, StatusOf(err))
	if err != nil {
		return nil, err
	}
	if dropped := table.DroppedRows(); dropped > 0 {
		Warnf("%s table: dropped %s malformed rows", w.Mode, humanize.Comma(int64(dropped)))
		self.metrics.AddDropped(w.Mode.String(), dropped)
	}
	Debugf("%s table: %s tokens, total weight %g", w.Mode, humanize.Comma(int64(table.Len())), table.TotalWeight())
	return table, nil
}

// RunWorkload loads the table of w, generates its text, validates it and
// writes the artifacts into the results directory.
func (self *Runner) RunWorkload(w *Workload) (*Result, error) {
	table, err := self.load(w)
	if err != nil {
		return nil, err
	}
	// each sampler owns its random source
	seed := self.seed + int64(w.Mode) - 1
	sampler, err := generator.NewDiscreteGenerator(table, generator.NewRandom(seed))
	if err != nil {
		return nil, err
	}
	Debugf("%s sampler seeded with %d", w.Mode, seed)

	tg := generator.NewTextGenerator(sampler, w.Mode)
	tg.SetObserver(&drawRecorder{
		measurements: self.measurements,
		operation:    w.Operation(OperationDrawRank),
	})
	op := w.Operation(OperationGenerate)
	start := time.Now().UnixNano()
	generated, err := tg.Generate(w.Count)
	self.measurements.Measure(op, NanosecondToMicrosecond(time.Now().UnixNano()-start))
	self.measurements.ReportStatus(op, StatusOf(err))
	if err != nil {
		return nil, err
	}
	self.metrics.AddDrawn(w.Mode.String(), generated.Len())

	text := generated.String()
	textPath := self.path(w.TextFile())
	if err := afero.WriteFile(self.fs, textPath, []byte(text), 0644); err != nil {
		return nil, errors.Wrapf(err, "write %s", textPath)
	}
	Printf("%s %s: wrote %s %ss to %s", timestamp(), w.Name, humanize.Comma(int64(generated.Len())), w.Mode, textPath)

	analysis, err := generator.Analyze(text, w.Mode)
	if err != nil {
		return nil, err
	}
	report, err := NewReport(table, analysis)
	if err != nil {
		return nil, err
	}
	Printf("%s", w.Title)
	report.WriteTable(OutputDest, self.reportRows)
	Printf("%s", report)
	if err := self.writeReport(w, report); err != nil {
		return nil, err
	}
	violations := report.Violations(self.tolerance, self.minWeight)
	for _, v := range violations {
		Warnf("%s %q: expected %.3f%%, actual %.3f%%", w.Mode, v.Token, v.Expected, v.Actual)
	}

	if self.charts {
		chartPath := self.path(w.ChartFile())
		err = chart.CreateFrequencyPlot(self.fs, table.Expected(), analysis.Counts, w.Title, chartPath)
		if err != nil {
			return nil, err
		}
		cdfPath := self.path(w.CumulativeChartFile())
		err = chart.CreateCumulativePlot(self.fs, sampler.Cumulative(), w.Title+" (cumulative)", cdfPath)
		if err != nil {
			return nil, err
		}
		Printf("%s %s: charts written to %s and %s", timestamp(), w.Name, chartPath, cdfPath)
	}
	return &Result{
		Workload:   w,
		Table:      table,
		Sampler:    sampler,
		Text:       text,
		Analysis:   analysis,
		Report:     report,
		Violations: violations,
	}, nil
}

func (self *Runner) writeReport(w *Workload, report *Report) error {
	path := self.path(w.ReportFile())
	f, err := self.fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := report.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
