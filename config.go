package freqgen

const (
	// Sources
	// The table source class to be used. Options are "file" and, once the
	// bindings are added, "sql".
	PropertySource        = "source"
	PropertySourceDefault = "file"
	// The path of the bigram frequency table.
	PropertyBigramTable        = "bigram.table"
	PropertyBigramTableDefault = "bigrams.txt"
	// The path of the word frequency table.
	PropertyWordTable        = "word.table"
	PropertyWordTableDefault = "words.txt"
	// The character encoding of table files, e.g. "utf-8", "windows-1251"
	// or "koi8-r".
	PropertyTableEncoding        = "table.encoding"
	PropertyTableEncodingDefault = "utf-8"

	// Generation
	// The number of bigrams to draw.
	PropertyBigramCount        = "bigram.count"
	PropertyBigramCountDefault = "1000"
	// The number of words to draw.
	PropertyWordCount        = "word.count"
	PropertyWordCountDefault = "1000"
	// Seed of the random source. Zero means a seed derived from the clock.
	PropertySeed        = "seed"
	PropertySeedDefault = "0"
	// The modes to run, comma separated, in order.
	PropertyModes        = "modes"
	PropertyModesDefault = "bigram,word"

	// Outputs
	// The directory receiving the generated artifacts.
	PropertyResultsDir        = "results.dir"
	PropertyResultsDirDefault = "Results"
	// Whether or not to render the comparison and cumulative charts.
	PropertyCharts        = "charts"
	PropertyChartsDefault = "true"
	// The number of report rows printed to the console.
	PropertyReportRows        = "report.rows"
	PropertyReportRowsDefault = "20"

	// Validation
	// Allowed deviation in percentage points between expected and actual
	// shares.
	PropertyValidationTolerance        = "validation.tolerance"
	PropertyValidationToleranceDefault = "2.0"
	// Only tokens whose expected share in percent is at least this value
	// are validated.
	PropertyValidationMinWeight        = "validation.minweight"
	PropertyValidationMinWeightDefault = "5.0"

	// Logging
	PropertyLogLevel        = "log.level"
	PropertyLogLevelDefault = "info"

	// measurement
	PropertyMeasurementType        = "measurementtype"
	PropertyMeasurementTypeDefault = "hdrhistogram"
	// The exporter class to be used. The default is TextMeasurementExporter.
	PropertyExporter        = "exporter"
	PropertyExporterDefault = "TextMeasurementExporter"
	// The file the measurements are exported to, relative to the results
	// directory.
	PropertyExportFile        = "exportfile"
	PropertyExportFileDefault = "measurements.txt"
	// The file the prometheus counters are written to, relative to the
	// results directory. Empty disables it.
	PropertyMetricsFile        = "metrics.file"
	PropertyMetricsFileDefault = "metrics.prom"

	// The name of the property for deciding what percentile values to output.
	PropertyPercentiles = "hdrhistogram.percentiles"
	// The default value of `PropertyPercentiles`
	PropertyPercentilesDefault = "50,95,99"
	// The largest value tracked by a hdrhistogram.
	PropertyHdrHistogramMax        = "hdrhistogram.max"
	PropertyHdrHistogramMaxDefault = "3600000000"
	// The number of significant figures kept by a hdrhistogram.
	PropertyHdrHistogramSig        = "hdrhistogram.sig"
	PropertyHdrHistogramSigDefault = "3"
)
