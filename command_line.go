package freqgen

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	ProgramName = ""
)

func init() {
	ProgramName = filepath.Base(os.Args[0])
}

type Arguments struct {
	PropertyFiles []string `arg:"-P,--property-file,separate" help:"specify a property file in YAML"`
	Properties    []string `arg:"-p,--property,separate" help:"specify a property value as name=value"`
	Seed          *int64   `arg:"--seed" help:"seed of the random source, 0 derives one from the clock"`
	Count         *int     `arg:"--count" help:"number of tokens to draw in every mode"`
	Results       string   `arg:"--results" help:"directory receiving the generated files"`
	LogLevel      string   `arg:"--log-level" help:"one of verbose, debug, info, warn, error, quiet"`
	Status        bool     `arg:"-s" help:"print status to stderr"`
}

func (Arguments) Description() string {
	return "Generates bigram and word text from frequency tables and validates the output distribution."
}

// ParseArgs parses argv without the program name. It returns arg.ErrHelp
// when help is requested.
func ParseArgs(argv []string) (*Arguments, *arg.Parser, error) {
	args := &Arguments{}
	parser, err := arg.NewParser(arg.Config{Program: ProgramName}, args)
	if err != nil {
		return nil, nil, err
	}
	if err := parser.Parse(argv); err != nil {
		return nil, parser, err
	}
	return args, parser, nil
}

// BuildProperties merges property files, then the named flags, and finally
// the -p pairs.
func BuildProperties(fs afero.Fs, args *Arguments) (Properties, error) {
	props := NewProperties()
	for _, file := range args.PropertyFiles {
		p, err := LoadProperties(fs, file)
		if err != nil {
			return nil, err
		}
		props.Merge(p)
	}
	if args.Seed != nil {
		props.Add(PropertySeed, strconv.FormatInt(*args.Seed, 10))
	}
	if args.Count != nil {
		count := strconv.Itoa(*args.Count)
		props.Add(PropertyBigramCount, count)
		props.Add(PropertyWordCount, count)
	}
	if len(args.Results) > 0 {
		props.Add(PropertyResultsDir, args.Results)
	}
	if len(args.LogLevel) > 0 {
		props.Add(PropertyLogLevel, args.LogLevel)
	}
	for _, kv := range args.Properties {
		// it's a property, should be in `k=v` form
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || len(strings.TrimSpace(parts[0])) == 0 {
			return nil, errors.Errorf("invalid property: %s", kv)
		}
		props.Add(strings.TrimSpace(parts[0]), parts[1])
	}
	return props, nil
}

// Run parses argv and runs every configured workload on fs.
func Run(fs afero.Fs, argv []string) ([]*Result, error) {
	args, parser, err := ParseArgs(argv)
	if err == arg.ErrHelp {
		parser.WriteHelp(OutputDest)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse arguments")
	}
	if args.Status {
		OutputDest = os.Stderr
	}
	props, err := BuildProperties(fs, args)
	if err != nil {
		return nil, err
	}
	if err := SetLogLevel(props.GetDefault(PropertyLogLevel, PropertyLogLevelDefault)); err != nil {
		return nil, err
	}
	if GetLogLevel() >= LevelVerbose {
		Verbosef("arguments: %s", pretty.Sprint(args))
	}
	if GetLogLevel() >= LevelDebug {
		OutputProperties(props)
	}
	runner, err := NewRunner(fs, props)
	if err != nil {
		return nil, err
	}
	return runner.Run()
}

// runCatching runs f and turns a panic into an error.
func runCatching(f func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = errors.WithStack(e)
			} else {
				err = errors.Errorf("panic: %v", p)
			}
		}
	}()
	return f()
}

// Main is the single place reporting failures, panics included. It prints
// the message and the stack trace, and returns normally.
func Main() {
	defer SyncLog()
	err := runCatching(func() error {
		_, err := Run(afero.NewOsFs(), os.Args[1:])
		return err
	})
	if err != nil {
		EPrintf("Error: %s", err)
		EPrintf("Details: %+v", err)
	}
}
