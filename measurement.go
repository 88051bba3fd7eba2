package freqgen

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/hhkbp2/freqgen/generator"
	"github.com/pkg/errors"
)

const (
	// Measured operations. Each is suffixed with the mode, e.g. "GENERATE-word".
	OperationLoad     = "LOAD"
	OperationGenerate = "GENERATE"
	OperationDrawRank = "DRAW-RANK"
)

type MeasurementType uint8

const (
	MeasurementHDRHistogram MeasurementType = 1 + iota
	MeasurementRaw
)

type StatusType uint8

const (
	StatusOK StatusType = 1 + iota
	StatusError
	StatusFileNotFound
	StatusInvalidState
	StatusInvalidArgument
)

func (self StatusType) String() string {
	switch self {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	case StatusFileNotFound:
		return "FILE_NOT_FOUND"
	case StatusInvalidState:
		return "INVALID_STATE"
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	default:
		return "UNKNOW_STATUS"
	}
}

// StatusOf classifies the outcome of an operation.
func StatusOf(err error) StatusType {
	switch {
	case err == nil:
		return StatusOK
	case generator.IsFileNotFound(err):
		return StatusFileNotFound
	case generator.IsInvalidState(err):
		return StatusInvalidState
	case generator.IsInvalidArgument(err):
		return StatusInvalidArgument
	default:
		return StatusError
	}
}

// Used to export the collected measurements into a useful format, for example
// human readable text or machine readable JSON.
type MeasurementExporter interface {
	// Write a measurement to the exported format. v should be int64 or float64
	Write(metric string, measurement string, v interface{}) error
	io.Closer
}

type MakeMeasurementExporterFunc func(w io.WriteCloser) MeasurementExporter

var (
	MeasurementExporters map[string]MakeMeasurementExporterFunc
)

func init() {
	MeasurementExporters = map[string]MakeMeasurementExporterFunc{
		"TextMeasurementExporter": func(w io.WriteCloser) MeasurementExporter {
			return NewTextMeasurementExporter(w)
		},
		"JSONArrayMeasurementExporter": func(w io.WriteCloser) MeasurementExporter {
			return NewJSONArrayMeasurementExporter(w)
		},
	}
}

func NewMeasurementExporter(className string, w io.WriteCloser) (MeasurementExporter, error) {
	f, ok := MeasurementExporters[className]
	if !ok {
		return nil, generator.NewErrorf("unsupported measurement exporter: %s", className)
	}
	e := f(w)
	return e, nil
}

// A single measured metric (such as GENERATE latency).
type OneMeasurement interface {
	Measure(value int64)
	GetName() string
	GetSummary() string
	// Report a return code.
	ReportStatus(status StatusType)
	// Exports the current measurements to a suitable format.
	ExportMeasurements(exporter MeasurementExporter) error
}

type OneMeasurementBase struct {
	Name            string
	MeasureLock     *sync.Mutex
	ReturnCodes     map[StatusType]uint32
	ReturnCodesLock *sync.Mutex
}

func NewOneMeasurementBase(name string) *OneMeasurementBase {
	return &OneMeasurementBase{
		Name:            name,
		MeasureLock:     &sync.Mutex{},
		ReturnCodes:     make(map[StatusType]uint32),
		ReturnCodesLock: &sync.Mutex{},
	}
}

func (self *OneMeasurementBase) GetName() string {
	return self.Name
}

func (self *OneMeasurementBase) ReportStatus(status StatusType) {
	self.ReturnCodesLock.Lock()
	defer self.ReturnCodesLock.Unlock()
	count, _ := self.ReturnCodes[status]
	self.ReturnCodes[status] = count + 1
}

func (self *OneMeasurementBase) ExportStatusCounts(exporter MeasurementExporter) error {
	self.ReturnCodesLock.Lock()
	defer self.ReturnCodesLock.Unlock()
	statuses := make([]StatusType, 0, len(self.ReturnCodes))
	for status := range self.ReturnCodes {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	for _, status := range statuses {
		err := exporter.Write(self.GetName(), fmt.Sprintf("Return=%s", status), self.ReturnCodes[status])
		if err != nil {
			return err
		}
	}
	return nil
}

// Collects measurements, and reports them when requested.
type Measurements interface {
	// Report a single value of a single metric. E.g. for generation latency,
	// operation="GENERATE-word" and value is the measured latency.
	Measure(operation string, value int64)

	// Return a one line summary of the measurements.
	GetSummary() string

	// Report a return code for a single operation.
	ReportStatus(operation string, status StatusType)

	// Export the current measurements to a suitable format.
	ExportMeasurements(exporter MeasurementExporter) error
}

type DefaultMeasurements struct {
	props              Properties
	measurementType    MeasurementType
	opToMeasurementMap map[string]OneMeasurement
	lock               *sync.RWMutex
}

func NewDefaultMeasurements(props Properties) (*DefaultMeasurements, error) {
	var measurementType MeasurementType
	propStr := props.GetDefault(PropertyMeasurementType, PropertyMeasurementTypeDefault)
	switch propStr {
	case "hdrhistogram":
		measurementType = MeasurementHDRHistogram
	case "raw":
		measurementType = MeasurementRaw
	default:
		return nil, generator.NewErrorf("unknown %s=%s", PropertyMeasurementType, propStr)
	}
	// validate the histogram settings once instead of on every new operation
	if _, err := NewOneMeasurementHdrHistogram("", props); err != nil {
		return nil, err
	}
	return &DefaultMeasurements{
		props:              props,
		measurementType:    measurementType,
		opToMeasurementMap: make(map[string]OneMeasurement),
		lock:               &sync.RWMutex{},
	}, nil
}

func MustNewMeasurement(m OneMeasurement, err error) OneMeasurement {
	if err != nil {
		panic(fmt.Sprintf("unexpected error: %s", err))
	}
	return m
}

func (self *DefaultMeasurements) constructOneMeasurement(name string) OneMeasurement {
	switch self.measurementType {
	case MeasurementHDRHistogram:
		return MustNewMeasurement(NewOneMeasurementHdrHistogram(name, self.props))
	case MeasurementRaw:
		return NewOneMeasurementRaw(name)
	default:
		panic("impossible to be here. Dead code reached. Bugs?")
	}
}

func (self *DefaultMeasurements) Measure(operation string, value int64) {
	m := self.getOpMeasurement(operation)
	m.Measure(value)
}

func (self *DefaultMeasurements) GetSummary() string {
	self.lock.RLock()
	defer self.lock.RUnlock()
	parts := make([]string, 0, len(self.opToMeasurementMap))
	for _, name := range self.operations() {
		if s := self.opToMeasurementMap[name].GetSummary(); len(s) > 0 {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (self *DefaultMeasurements) ReportStatus(operation string, status StatusType) {
	m := self.getOpMeasurement(operation)
	m.ReportStatus(status)
}

func (self *DefaultMeasurements) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)
	self.lock.RLock()
	defer self.lock.RUnlock()
	for _, name := range self.operations() {
		try(self.opToMeasurementMap[name].ExportMeasurements(exporter))
	}
	return
}

// operations returns the measured operation names in sorted order.
// The caller must hold the lock.
func (self *DefaultMeasurements) operations() []string {
	ret := make([]string, 0, len(self.opToMeasurementMap))
	for k := range self.opToMeasurementMap {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func (self *DefaultMeasurements) getOpMeasurement(operation string) OneMeasurement {
	self.lock.RLock()
	m, ok := self.opToMeasurementMap[operation]
	self.lock.RUnlock()
	if !ok {
		self.lock.Lock()
		if m, ok = self.opToMeasurementMap[operation]; !ok {
			m = self.constructOneMeasurement(operation)
			self.opToMeasurementMap[operation] = m
		}
		self.lock.Unlock()
	}
	return m
}

// Write human readable text.
type TextMeasurementExporter struct {
	io.WriteCloser
	buf *bufio.Writer
}

func NewTextMeasurementExporter(w io.WriteCloser) *TextMeasurementExporter {
	return &TextMeasurementExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
	}
}

func (self *TextMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	_, err := self.buf.WriteString(fmt.Sprintf("[%s], %s, %v\n", metric, measurement, v))
	return err
}

func (self *TextMeasurementExporter) Close() error {
	err := self.buf.Flush()
	err2 := self.WriteCloser.Close()
	if err != nil {
		return err
	}
	return err2
}

type innerJSONMeasurement struct {
	Metric      string      `json:"metric"`
	Measurement string      `json:"measurement"`
	Value       interface{} `json:"value"`
}

// Export measurements into a machine readable JSON Array of measurement objects.
type JSONArrayMeasurementExporter struct {
	io.WriteCloser
	buf        *bufio.Writer
	afterFirst bool
}

func NewJSONArrayMeasurementExporter(w io.WriteCloser) *JSONArrayMeasurementExporter {
	object := &JSONArrayMeasurementExporter{
		WriteCloser: w,
		buf:         bufio.NewWriter(w),
		afterFirst:  false,
	}
	object.buf.WriteString("[")
	return object
}

func (self *JSONArrayMeasurementExporter) Write(metric string, measurement string, v interface{}) error {
	b, err := json.Marshal(&innerJSONMeasurement{
		Metric:      metric,
		Measurement: measurement,
		Value:       v,
	})
	if err != nil {
		return err
	}
	if self.afterFirst {
		_, err = self.buf.WriteString(",")
		if err != nil {
			return err
		}
	} else {
		self.afterFirst = true
	}
	_, err = self.buf.Write(b)
	return err
}

func (self *JSONArrayMeasurementExporter) Close() error {
	_, err := self.buf.WriteString("]")
	if err != nil {
		return err
	}
	err = self.buf.Flush()
	err2 := self.WriteCloser.Close()
	if err != nil {
		return err
	}
	return err2
}

func try(err error) {
	if err != nil {
		panic(errors.Wrap(err, "export measurements"))
	}
}

func catch(err *error) {
	if p := recover(); p != nil {
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		*err = e
	}
}

// Record a series of measurements as raw values without down sampling.
type OneMeasurementRaw struct {
	*OneMeasurementBase
	values []int64
	total  int64
	// A window of stats to print summary for at the next GetSummary() call.
	windowOperations int64
	windowTotal      int64
}

func NewOneMeasurementRaw(name string) *OneMeasurementRaw {
	return &OneMeasurementRaw{
		OneMeasurementBase: NewOneMeasurementBase(name),
		values:             make([]int64, 0),
	}
}

func (self *OneMeasurementRaw) Measure(value int64) {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	self.total += value
	self.windowTotal += value
	self.windowOperations++
	self.values = append(self.values, value)
}

func (self *OneMeasurementRaw) GetSummary() string {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()
	if self.windowOperations == 0 {
		return ""
	}
	ret := fmt.Sprintf("[%s count: %d, average: %.2f]",
		self.GetName(), self.windowOperations, float64(self.windowTotal)/float64(self.windowOperations))
	self.windowOperations = 0
	self.windowTotal = 0
	return ret
}

func (self *OneMeasurementRaw) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	name := self.GetName()
	total := len(self.values)
	try(exporter.Write(name, "Operations", total))
	if total > 0 {
		s := make([]int64, total)
		copy(s, self.values)
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
		try(exporter.Write(name, "Average", float64(self.total)/float64(total)))
		try(exporter.Write(name, "Min", s[0]))
		try(exporter.Write(name, "Max", s[total-1]))
		try(exporter.Write(name, "p50", s[int(float64(total)*0.5)]))
		try(exporter.Write(name, "p90", s[int(float64(total)*0.9)]))
		try(exporter.Write(name, "p99", s[int(float64(total)*0.99)]))
	}
	try(self.ExportStatusCounts(exporter))
	return
}

// Take measurements and maintain a HdrHistogram of a given metric.
type OneMeasurementHdrHistogram struct {
	*OneMeasurementBase
	histogram   *hdrhistogram.Histogram
	percentiles []int64
	overflows   int64
}

// Helper function to parse the given percentile value string.
func parsePercentileValues(prop, defaultValue string) []int64 {
	parts := strings.Split(prop, ",")
	ret := make([]int64, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.ParseInt(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return parsePercentileValues(defaultValue, defaultValue)
		}
		ret = append(ret, int64(i))
	}
	return ret
}

func NewOneMeasurementHdrHistogram(name string, props Properties) (*OneMeasurementHdrHistogram, error) {
	prop := props.GetDefault(PropertyPercentiles, PropertyPercentilesDefault)
	percentiles := parsePercentileValues(prop, PropertyPercentilesDefault)
	max, err := props.GetInt(PropertyHdrHistogramMax, PropertyHdrHistogramMaxDefault)
	if err != nil {
		return nil, err
	}
	sig, err := props.GetInt(PropertyHdrHistogramSig, PropertyHdrHistogramSigDefault)
	if err != nil {
		return nil, err
	}
	if sig < 1 || sig > 5 {
		return nil, generator.NewErrorf("%s must be within [1, 5], got %d", PropertyHdrHistogramSig, sig)
	}
	object := &OneMeasurementHdrHistogram{
		OneMeasurementBase: NewOneMeasurementBase(name),
		histogram:          hdrhistogram.New(1, max, int(sig)),
		percentiles:        percentiles,
	}
	return object, nil
}

func (self *OneMeasurementHdrHistogram) Measure(value int64) {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	if err := self.histogram.RecordValue(value); err != nil {
		// value is outside the trackable range
		if self.overflows == 0 {
			Debugf("%s: %s", self.GetName(), err)
		}
		self.overflows++
	}
}

func (self *OneMeasurementHdrHistogram) GetSummary() string {
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()
	if self.histogram.TotalCount() == 0 {
		return ""
	}
	format := "[%s: Count=%d, Max=%d, Min=%d, Avg=%.2f, 90=%d, 99=%d]"
	return fmt.Sprintf(format,
		self.GetName(),
		self.histogram.TotalCount(),
		self.histogram.Max(),
		self.histogram.Min(),
		self.histogram.Mean(),
		self.histogram.ValueAtQuantile(90),
		self.histogram.ValueAtQuantile(99))
}

var (
	Suffixes = []string{"th", "st", "nd", "rd", "th", "th", "th", "th", "th", "th"}
)

func ordinal(p int64) string {
	switch p % 100 {
	case 11, 12, 13:
		return fmt.Sprintf("%dth", p)
	default:
		return fmt.Sprintf("%d%s", p, Suffixes[p%10])
	}
}

func (self *OneMeasurementHdrHistogram) ExportMeasurements(exporter MeasurementExporter) (err error) {
	defer catch(&err)
	self.MeasureLock.Lock()
	defer self.MeasureLock.Unlock()

	name := self.GetName()
	try(exporter.Write(name, "Operations", self.histogram.TotalCount()))
	try(exporter.Write(name, "Average", self.histogram.Mean()))
	try(exporter.Write(name, "Min", self.histogram.Min()))
	try(exporter.Write(name, "Max", self.histogram.Max()))

	for _, p := range self.percentiles {
		try(exporter.Write(name, ordinal(p)+"Percentile", self.histogram.ValueAtQuantile(float64(p))))
	}
	if self.overflows > 0 {
		try(exporter.Write(name, "Overflow", self.overflows))
	}
	try(self.ExportStatusCounts(exporter))
	return
}
