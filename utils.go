package freqgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

type Properties map[string]string

func NewProperties() Properties {
	return make(Properties)
}

func (self Properties) Get(key string) string {
	v, _ := self[key]
	return v
}

func (self Properties) GetDefault(key string, defaultValue string) string {
	if v, ok := self[key]; ok {
		return v
	}
	return defaultValue
}

func (self Properties) Add(key, value string) {
	self[key] = value
}

func (self Properties) Merge(other map[string]string) {
	for k, v := range other {
		self[k] = v
	}
}

func (self Properties) GetInt(key string, defaultValue string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(self.GetDefault(key, defaultValue)), 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "property %s", key)
	}
	return v, nil
}

func (self Properties) GetFloat(key string, defaultValue string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(self.GetDefault(key, defaultValue)), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "property %s", key)
	}
	return v, nil
}

func (self Properties) GetBool(key string, defaultValue string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(self.GetDefault(key, defaultValue)))
	if err != nil {
		return false, errors.Wrapf(err, "property %s", key)
	}
	return v, nil
}

// Keys returns the property names in sorted order.
func (self Properties) Keys() []string {
	ret := make([]string, 0, len(self))
	for k := range self {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// LoadProperties reads a flat YAML mapping of property names to values.
// Non-string scalars are kept in their YAML spelling.
func LoadProperties(fs afero.Fs, filename string) (Properties, error) {
	b, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read property file %s", filename)
	}
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse property file %s", filename)
	}
	props := NewProperties()
	for k, v := range raw {
		switch x := v.(type) {
		case nil:
			props.Add(k, "")
		case string:
			props.Add(k, x)
		case map[interface{}]interface{}, []interface{}:
			return nil, errors.Errorf("property %s in %s is not a scalar", k, filename)
		default:
			props.Add(k, fmt.Sprintf("%v", x))
		}
	}
	return props, nil
}

func Output(format string, args ...interface{}) {
	fmt.Fprintf(OutputDest, format, args...)
	fmt.Fprintln(OutputDest, "")
}

func OutputProperties(p Properties) {
	Output("***************** properties *****************")
	if p != nil {
		for _, k := range p.Keys() {
			Output("\"%s\"=\"%s\"", k, p[k])
		}
	}
	Output("**********************************************")
}

func MillisecondToNanosecond(millis int64) int64 {
	return millis * 1000 * 1000
}

func MillisecondToSecond(millis int64) int64 {
	return millis / 1000
}

func SecondToNanosecond(second int64) int64 {
	return second * 1000 * 1000 * 1000
}

func NanosecondToMicrosecond(nanos int64) int64 {
	return nanos / 1000
}

func NanosecondToMillisecond(nanos int64) int64 {
	return nanos / 1000 / 1000
}
