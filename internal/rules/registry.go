package rules

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a malformed or conflicting rule set.
// It can only occur while the registry is being built.
type ConfigurationError struct {
	Label  string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("rule set %q: %s", e.Label, e.Reason)
}

// Registry holds all registered rule sets. Built once before decoding
// starts; lookups are read-only and safe for concurrent use.
type Registry struct {
	exact  map[string]*RuleSet
	prefix []*RuleSet
	body   []*RuleSet
	all    []*RuleSet // registration order, for listing
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{exact: make(map[string]*RuleSet)}
}

// Register adds a rule set, validating it first. Two rule sets may not
// claim the same predicate.
func (r *Registry) Register(rs *RuleSet) error {
	if err := validate(rs); err != nil {
		return err
	}

	switch rs.Match.Kind {
	case MatchExact:
		key := strings.ToLower(rs.Match.Value)
		if _, ok := r.exact[key]; ok {
			return ConfigurationError{Label: rs.Label, Reason: "duplicate exact sender " + key}
		}
		r.exact[key] = rs
	case MatchPrefix:
		for _, other := range r.prefix {
			if strings.EqualFold(other.Match.Value, rs.Match.Value) {
				return ConfigurationError{Label: rs.Label, Reason: "duplicate sender prefix " + rs.Match.Value}
			}
		}
		r.prefix = append(r.prefix, rs)
	case MatchBody:
		for _, other := range r.body {
			if other.Match.Value == rs.Match.Value {
				return ConfigurationError{Label: rs.Label, Reason: "duplicate body keyword " + rs.Match.Value}
			}
		}
		r.body = append(r.body, rs)
	default:
		return ConfigurationError{Label: rs.Label, Reason: fmt.Sprintf("unknown match kind %q", rs.Match.Kind)}
	}

	r.all = append(r.all, rs)
	return nil
}

// Lookup selects the rule set for a message, or nil if none claims it.
// Exact sender matches win over prefixes, prefixes over body keywords;
// within a tier, registration order decides. Deterministic for a given
// registry regardless of call order or concurrency.
func (r *Registry) Lookup(sender, body string) *RuleSet {
	if sender != "" {
		if rs, ok := r.exact[strings.ToLower(sender)]; ok {
			return rs
		}
		for _, rs := range r.prefix {
			if rs.Match.Matches(sender, body) {
				return rs
			}
		}
	}
	for _, rs := range r.body {
		if rs.Match.Matches(sender, body) {
			return rs
		}
	}
	return nil
}

// RuleSets returns all rule sets in registration order.
func (r *Registry) RuleSets() []*RuleSet {
	return r.all
}

func validate(rs *RuleSet) error {
	if rs.Label == "" {
		return ConfigurationError{Label: rs.Label, Reason: "missing label"}
	}
	if rs.Match.Value == "" {
		return ConfigurationError{Label: rs.Label, Reason: "missing match value"}
	}
	if len(rs.Extractors) == 0 {
		return ConfigurationError{Label: rs.Label, Reason: "no field extractors declared"}
	}
	for i, ex := range rs.Extractors {
		if ex.Pattern == nil {
			return ConfigurationError{Label: rs.Label, Reason: fmt.Sprintf("extractor %d has no pattern", i)}
		}
		group := ex.Group
		if group == 0 {
			group = 1
		}
		if group > ex.Pattern.NumSubexp() {
			return ConfigurationError{
				Label:  rs.Label,
				Reason: fmt.Sprintf("extractor %d (%s) wants group %d but pattern has %d", i, ex.Field, group, ex.Pattern.NumSubexp()),
			}
		}
		if !validField(ex.Field) {
			return ConfigurationError{Label: rs.Label, Reason: fmt.Sprintf("extractor %d has unknown field %q", i, ex.Field)}
		}
		if !validTransform(ex.Transform) {
			return ConfigurationError{Label: rs.Label, Reason: fmt.Sprintf("extractor %d has unknown transform %q", i, ex.Transform)}
		}
	}
	return nil
}
