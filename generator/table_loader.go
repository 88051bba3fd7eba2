package generator

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// Minimum number of fields in a table row: index, token, weight.
	minRowFields = 3
	maxLineSize  = 1024 * 1024
)

// Decoder wraps the raw table stream before it is parsed, e.g. to decompress
// or transcode it.
type Decoder func(r io.Reader) (io.Reader, error)

// ParseWeight parses a weight written with either '.' or ',' as the decimal
// separator.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrParseFailure, "invalid weight %q", s)
	}
	return v, nil
}

// SplitRow splits a table line into fields. Bigram tables are tab separated;
// word tables are separated by runs of spaces or tabs.
func SplitRow(line string, mode Mode) []string {
	if mode == ModeWord {
		return strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t'
		})
	}
	return strings.Split(line, "\t")
}

// ParseRow extracts the token and weight of a single non-blank row.
func ParseRow(line string, mode Mode) (string, float64, error) {
	parts := SplitRow(line, mode)
	if len(parts) < minRowFields {
		return "", 0, errors.Wrapf(ErrParseFailure,
			"expect at least %d fields, got %d", minRowFields, len(parts))
	}
	weight, err := ParseWeight(parts[2])
	if err != nil {
		return "", 0, err
	}
	return parts[1], weight, nil
}

// ReadFrequencyTable parses a table from r. Malformed rows are dropped and
// counted; the load fails only if nothing usable remains.
func ReadFrequencyTable(r io.Reader, mode Mode) (*FrequencyTable, error) {
	b := NewTableBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		token, weight, err := ParseRow(line, mode)
		if err != nil {
			b.Drop()
			continue
		}
		b.Add(token, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read frequency table")
	}
	return b.Build()
}

// LoadFrequencyTable reads the table stored at path on fs, passing the stream
// through decoders in order.
func LoadFrequencyTable(fs afero.Fs, path string, mode Mode, decoders ...Decoder) (*FrequencyTable, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "file %s not found", path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	var r io.Reader = f
	for _, d := range decoders {
		r, err = d(r)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
	}
	table, err := ReadFrequencyTable(r, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return table, nil
}
