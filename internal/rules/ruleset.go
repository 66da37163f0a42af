package rules

import (
	"regexp"
	"strings"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// MatchKind discriminates sender predicates, in decreasing specificity.
type MatchKind string

const (
	MatchExact  MatchKind = "exact"  // sender equals value
	MatchPrefix MatchKind = "prefix" // sender starts with value
	MatchBody   MatchKind = "body"   // body contains value (content heuristic)
)

// SenderPredicate selects the messages a rule set claims.
type SenderPredicate struct {
	Kind  MatchKind
	Value string
}

// Matches tests a predicate against a message. Sender comparison is
// case-insensitive; bodies are already canonical lowercase.
func (p SenderPredicate) Matches(sender, body string) bool {
	switch p.Kind {
	case MatchExact:
		return strings.EqualFold(sender, p.Value)
	case MatchPrefix:
		return len(sender) > 0 && strings.HasPrefix(strings.ToLower(sender), strings.ToLower(p.Value))
	case MatchBody:
		return strings.Contains(body, p.Value)
	default:
		return false
	}
}

// Transform names an optional post-capture cleanup applied to a raw
// captured substring before it is handed to the normalizer.
type Transform string

const (
	TransformNone           Transform = ""
	TransformTrim           Transform = "trim"
	TransformCollapseSpaces Transform = "collapse-spaces"
	TransformStripPunct     Transform = "strip-punct" // trailing .,;:
)

var multiSpace = regexp.MustCompile(`\s+`)

// Apply runs the transform. Unknown transforms are rejected at
// registry build time, so this never sees one.
func (t Transform) Apply(s string) string {
	switch t {
	case TransformTrim:
		return strings.TrimSpace(s)
	case TransformCollapseSpaces:
		return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
	case TransformStripPunct:
		return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ".,;:"))
	default:
		return s
	}
}

func validField(k model.FieldKind) bool {
	switch k {
	case model.FieldAmount, model.FieldDate, model.FieldType, model.FieldCounterparty,
		model.FieldAccountRef, model.FieldRefNo, model.FieldBalance:
		return true
	}
	return false
}

func validTransform(t Transform) bool {
	switch t {
	case TransformNone, TransformTrim, TransformCollapseSpaces, TransformStripPunct:
		return true
	}
	return false
}

// FieldExtractor locates one field in a message body. Extractors for
// the same field are tried in declared order; the first non-empty
// capture wins.
type FieldExtractor struct {
	Field     model.FieldKind
	Pattern   *regexp.Regexp
	Group     int // capture group index, 1 if zero
	Transform Transform
}

// RuleSet bundles everything needed to decode one bank's messages.
// Immutable after registration.
type RuleSet struct {
	Label       string
	Match       SenderPredicate
	Extractors  []FieldExtractor
	DateLayouts []string // Go reference layouts, tried in declared order

	// Direction vocabulary, checked in declared order.
	DebitWords  []string
	CreditWords []string

	// Transaction gate: a body containing any skip word, or none of
	// the require words, is not a transaction notification.
	RequireWords []string
	SkipWords    []string

	// UseReceivedAt permits falling back to the message's received
	// timestamp when no date field is captured at all.
	UseReceivedAt bool
}

// IsTransaction reports whether a body looks like a transaction
// notification rather than promotional/OTP/advisory traffic.
func (rs *RuleSet) IsTransaction(body string) bool {
	for _, w := range rs.SkipWords {
		if strings.Contains(body, w) {
			return false
		}
	}
	if len(rs.RequireWords) == 0 {
		return true
	}
	for _, w := range rs.RequireWords {
		if strings.Contains(body, w) {
			return true
		}
	}
	return false
}
