package freqgen

import (
	"bytes"
	"testing"

	"github.com/hhkbp2/freqgen/generator"
	"github.com/hhkbp2/testify/require"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func TestParseArgs(t *testing.T) {
	args, _, err := ParseArgs([]string{
		"-P", "a.yaml", "-P", "b.yaml",
		"-p", "word.count=5", "-p", "sql.dsn=file:x.db?mode=ro",
		"--seed", "42", "--results", "out", "-s",
	})
	require.Nil(t, err)
	require.Equal(t, []string{"a.yaml", "b.yaml"}, args.PropertyFiles)
	require.Equal(t, 2, len(args.Properties))
	require.True(t, args.Seed != nil)
	require.Equal(t, int64(42), *args.Seed)
	require.True(t, args.Count == nil)
	require.Equal(t, "out", args.Results)
	require.True(t, args.Status)
}

func TestBuildProperties(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "a.yaml", []byte("seed: 1\nword.count: 10\nresults.dir: a\n"), 0644))
	require.Nil(t, afero.WriteFile(fs, "b.yaml", []byte("seed: 2\n"), 0644))
	args, _, err := ParseArgs([]string{
		"-P", "a.yaml", "-P", "b.yaml",
		"--count", "3", "--log-level", "warn",
		"-p", "word.count=5", "-p", "sql.dsn=file:x.db?mode=ro",
	})
	require.Nil(t, err)
	props, err := BuildProperties(fs, args)
	require.Nil(t, err)
	require.Equal(t, "2", props.Get(PropertySeed))
	require.Equal(t, "a", props.Get(PropertyResultsDir))
	require.Equal(t, "3", props.Get(PropertyBigramCount))
	// -p pairs are merged last
	require.Equal(t, "5", props.Get(PropertyWordCount))
	require.Equal(t, "warn", props.Get(PropertyLogLevel))
	require.Equal(t, "file:x.db?mode=ro", props.Get("sql.dsn"))
}

func TestBuildPropertiesInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := BuildProperties(fs, &Arguments{Properties: []string{"novalue"}})
	require.NotNil(t, err)
	_, err = BuildProperties(fs, &Arguments{PropertyFiles: []string{"missing.yaml"}})
	require.NotNil(t, err)
}

func TestRunHelp(t *testing.T) {
	var buf bytes.Buffer
	old := OutputDest
	OutputDest = &buf
	defer func() { OutputDest = old }()

	results, err := Run(afero.NewMemMapFs(), []string{"--help"})
	require.Nil(t, err)
	require.True(t, results == nil)
	require.Contains(t, buf.String(), "--seed")
}

func TestRunBadArguments(t *testing.T) {
	_, err := Run(afero.NewMemMapFs(), []string{"--seed", "soon"})
	require.NotNil(t, err)
	_, err = Run(afero.NewMemMapFs(), []string{"--log-level", "loud"})
	require.NotNil(t, err)
}

func TestRunCatching(t *testing.T) {
	require.Nil(t, runCatching(func() error { return nil }))

	err := runCatching(func() error {
		var m map[string]int
		m["x"] = 1
		return nil
	})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "nil map")

	err = runCatching(func() error {
		panic("table exhausted")
	})
	require.NotNil(t, err)
	require.Equal(t, "panic: table exhausted", err.Error())

	err = runCatching(func() error {
		panic(generator.ErrInvalidState)
	})
	require.Equal(t, generator.ErrInvalidState, errors.Cause(err))
}
