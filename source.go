package freqgen

import (
	"io"
	"strings"

	"github.com/hhkbp2/freqgen/generator"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/htmlindex"
)

// TableSource yields the frequency table of a mode.
// Sources are created through the Sources factory map so that bindings can
// register their own, and are configured from Properties.
type TableSource interface {
	Load(mode generator.Mode) (*generator.FrequencyTable, error)
}

type MakeSourceFunc func(fs afero.Fs, p Properties) (TableSource, error)

var (
	Sources map[string]MakeSourceFunc
)

func init() {
	Sources = map[string]MakeSourceFunc{
		"file": func(fs afero.Fs, p Properties) (TableSource, error) {
			return NewFileSource(fs, p), nil
		},
	}
}

func NewTableSource(className string, fs afero.Fs, p Properties) (TableSource, error) {
	f, ok := Sources[className]
	if !ok {
		return nil, generator.NewErrorf("unsupported table source: %s", className)
	}
	return f(fs, p)
}

// FileSource reads tables in the delimited text format. Files ending in
// ".xz" are decompressed, and files in a legacy charset are transcoded to
// UTF-8 as configured by PropertyTableEncoding.
type FileSource struct {
	fs    afero.Fs
	paths map[generator.Mode]string
	// The encoding name of the table files.
	encoding string
}

func NewFileSource(fs afero.Fs, p Properties) *FileSource {
	return &FileSource{
		fs: fs,
		paths: map[generator.Mode]string{
			generator.ModeBigram: p.GetDefault(PropertyBigramTable, PropertyBigramTableDefault),
			generator.ModeWord:   p.GetDefault(PropertyWordTable, PropertyWordTableDefault),
		},
		encoding: p.GetDefault(PropertyTableEncoding, PropertyTableEncodingDefault),
	}
}

func (self *FileSource) Path(mode generator.Mode) string {
	return self.paths[mode]
}

func (self *FileSource) Load(mode generator.Mode) (*generator.FrequencyTable, error) {
	path, ok := self.paths[mode]
	if !ok {
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "no table configured for mode %s", mode)
	}
	decoders := make([]generator.Decoder, 0, 2)
	if strings.HasSuffix(path, ".xz") {
		decoders = append(decoders, XZDecoder)
	}
	d, err := CharsetDecoder(self.encoding)
	if err != nil {
		return nil, err
	}
	if d != nil {
		decoders = append(decoders, d)
	}
	return generator.LoadFrequencyTable(self.fs, path, mode, decoders...)
}

// XZDecoder decompresses an xz stream.
func XZDecoder(r io.Reader) (io.Reader, error) {
	return xz.NewReader(r)
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// CharsetDecoder returns a decoder transcoding the named charset into UTF-8,
// or nil for UTF-8 itself.
func CharsetDecoder(name string) (generator.Decoder, error) {
	if isUTF8(name) {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "unsupported encoding %q", name)
	}
	return func(r io.Reader) (io.Reader, error) {
		return enc.NewDecoder().Reader(r), nil
	}, nil
}
