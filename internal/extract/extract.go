// Package extract runs a rule set's field extractors over a message
// body. It is a pure function of its inputs and safe to call
// concurrently across messages.
package extract

import (
	"github.com/smsledger-dev/smsledger/internal/model"
	"github.com/smsledger-dev/smsledger/internal/rules"
)

// Captures holds raw captured substrings keyed by field. A missing key
// means the field is absent; captured values are never empty.
type Captures map[model.FieldKind]string

// Get returns the raw capture for a field and whether one was found.
func (c Captures) Get(kind model.FieldKind) (string, bool) {
	v, ok := c[kind]
	return v, ok
}

// Extract attempts each extractor in declared order. The first
// extractor yielding a non-empty capture wins its field; later
// extractors for that field are skipped. A capture that transforms to
// the empty string counts as no capture, so fallbacks still run.
func Extract(rs *rules.RuleSet, body string) Captures {
	caps := make(Captures)
	for _, ex := range rs.Extractors {
		if _, done := caps[ex.Field]; done {
			continue
		}
		m := ex.Pattern.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		group := ex.Group
		if group == 0 {
			group = 1
		}
		v := ex.Transform.Apply(m[group])
		if v == "" {
			continue
		}
		caps[ex.Field] = v
	}
	return caps
}
