package rules

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// File is the top-level structure of a rule set YAML file.
type File struct {
	RuleSets []RuleSetConfig `yaml:"rule_sets"`
}

// RuleSetConfig is the declarative form of one rule set.
type RuleSetConfig struct {
	Label         string            `yaml:"label"`
	Match         MatchConfig       `yaml:"match"`
	Fields        []ExtractorConfig `yaml:"fields"`
	DateLayouts   []string          `yaml:"date_layouts,omitempty"`
	DebitWords    []string          `yaml:"debit_words,omitempty"`
	CreditWords   []string          `yaml:"credit_words,omitempty"`
	RequireWords  []string          `yaml:"require_words,omitempty"`
	SkipWords     []string          `yaml:"skip_words,omitempty"`
	UseReceivedAt bool              `yaml:"use_received_at,omitempty"`
}

// MatchConfig is the declarative form of a sender predicate.
type MatchConfig struct {
	Kind  string `yaml:"kind"` // exact, prefix, body
	Value string `yaml:"value"`
}

// ExtractorConfig is the declarative form of one field extractor.
type ExtractorConfig struct {
	Field     string `yaml:"field"`
	Pattern   string `yaml:"pattern"`
	Group     int    `yaml:"group,omitempty"`
	Transform string `yaml:"transform,omitempty"`
}

// LoadFile reads rule sets from a YAML file and compiles their
// patterns. Malformed declarations surface as ConfigurationError.
func LoadFile(path string) ([]*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rule file: %w", err)
	}

	sets := make([]*RuleSet, 0, len(f.RuleSets))
	for _, cfg := range f.RuleSets {
		rs, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

// Build compiles a declarative rule set into a runtime one.
func (c RuleSetConfig) Build() (*RuleSet, error) {
	rs := &RuleSet{
		Label:         c.Label,
		Match:         SenderPredicate{Kind: MatchKind(c.Match.Kind), Value: c.Match.Value},
		DateLayouts:   c.DateLayouts,
		DebitWords:    c.DebitWords,
		CreditWords:   c.CreditWords,
		RequireWords:  c.RequireWords,
		SkipWords:     c.SkipWords,
		UseReceivedAt: c.UseReceivedAt,
	}

	for i, fc := range c.Fields {
		pat, err := regexp.Compile(fc.Pattern)
		if err != nil {
			return nil, ConfigurationError{
				Label:  c.Label,
				Reason: fmt.Sprintf("field %d (%s): invalid pattern: %v", i, fc.Field, err),
			}
		}
		rs.Extractors = append(rs.Extractors, FieldExtractor{
			Field:     model.FieldKind(fc.Field),
			Pattern:   pat,
			Group:     fc.Group,
			Transform: Transform(fc.Transform),
		})
	}
	return rs, nil
}
