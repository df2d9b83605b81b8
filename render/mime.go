// Package render turns notebook cells into page markup. Each cell gets its
// highlighted input with the ink overlay positioned over it, plus the best
// available representation of every output chosen from its content-type
// bundle.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Content-type identifiers recognized by the output selector.
const (
	MimeSVG   = "image/svg+xml"
	MimePNG   = "image/png"
	MimeJPEG  = "image/jpeg"
	MimeHTML  = "text/html"
	MimePlain = "text/plain"
)

// rasterMimes is the raster rendering order: PNG before JPEG.
var rasterMimes = []string{MimePNG, MimeJPEG}

// Policy classifies output bundles. A bundle whose content-type keys start
// with any widget prefix came from an interactive charting library and
// prefers its static raster form for portability.
type Policy struct {
	WidgetPrefixes []string `yaml:"widget_prefixes"`
}

// DefaultPolicy returns the built-in widget prefix set.
func DefaultPolicy() Policy {
	return Policy{
		WidgetPrefixes: []string{
			"application/vnd.plotly",
			"application/vnd.vega",
			"application/vnd.vegalite",
			"application/vnd.bokehjs",
		},
	}
}

// WithPrefixes returns a copy of the policy with extra widget prefixes
// appended, deduplicated.
func (p Policy) WithPrefixes(prefixes ...string) Policy {
	return Policy{WidgetPrefixes: lo.Uniq(append(append([]string{}, p.WidgetPrefixes...), prefixes...))}
}

// LoadPolicy reads a YAML policy file and extends the default policy with
// its widget prefixes. The file shape is `widget_prefixes: [..]`.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}
	var file Policy
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return DefaultPolicy().WithPrefixes(file.WidgetPrefixes...), nil
}

// IsWidget reports whether any content-type key in the bundle carries a
// widget prefix. Detection looks at keys only; the widget payload itself is
// never rendered.
func (p Policy) IsWidget(data map[string]string) bool {
	return lo.SomeBy(lo.Keys(data), func(key string) bool {
		return lo.SomeBy(p.WidgetPrefixes, func(prefix string) bool {
			return strings.HasPrefix(key, prefix)
		})
	})
}
