package binding

import (
	"github.com/hhkbp2/freqgen"
	"github.com/spf13/afero"
)

// AddBindings registers the table sources backed by external services.
func AddBindings() {
	freqgen.Sources["sql"] = func(fs afero.Fs, p freqgen.Properties) (freqgen.TableSource, error) {
		return NewSQLSource(p)
	}
}
