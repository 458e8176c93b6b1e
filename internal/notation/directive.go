// Package notation serializes charts into the two plain-text formats
// consumed by rhythm-game engines: the legacy single-difficulty format
// and the modern multi-difficulty format.
//
// Both encoders compose their entire output in memory as an ordered
// list of directives and note blocks, then serialize once; formatting
// never interleaves with generation logic.
package notation

import (
	"strings"

	"github.com/okian/stepforge/internal/domain/quantize"
)

// Directive is one `#KEY:value;` header entry.
type Directive struct {
	Key   string
	Value string
}

// builder accumulates directives and raw lines in emission order.
type builder struct {
	lines []string
}

func (b *builder) directive(key, value string) {
	b.lines = append(b.lines, "#"+key+":"+value+";")
}

func (b *builder) directives(ds []Directive) {
	for _, d := range ds {
		b.directive(d.Key, d.Value)
	}
}

func (b *builder) raw(line string) {
	b.lines = append(b.lines, line)
}

func (b *builder) blank() {
	b.lines = append(b.lines, "")
}

func (b *builder) String() string {
	return strings.Join(b.lines, "\n")
}

// measuresText renders quantized measures as newline-joined grid lines
// with measures separated by comma lines.
func measuresText(measures []quantize.Measure) string {
	parts := make([]string, 0, len(measures))
	for _, m := range measures {
		lines := make([]string, 0, len(m.Lines))
		for _, l := range m.Lines {
			lines = append(lines, l.String())
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, ",\n")
}
