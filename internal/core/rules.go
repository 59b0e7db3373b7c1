package core

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Check is one validation rule variant. The set is closed: NotEmpty,
// NumberRange, Email, Pattern, OneOf. Every switch over Check must handle
// all five and panic on anything else, so a new variant cannot slip past
// an evaluation site silently.
type Check interface {
	isCheck()
}

// NotEmpty fails when a value is empty after trimming whitespace.
type NotEmpty struct{}

// NumberRange fails when a value does not parse as a float or falls
// outside the optional inclusive bounds.
type NumberRange struct {
	Min *float64
	Max *float64
}

// Email fails when a value does not look like local@domain.tld.
type Email struct{}

// Pattern fails when a value does not match the regular expression
// anywhere. An expression that does not compile yields a check that never
// fails for any value; that behavior is load-bearing, see ParseRules.
type Pattern struct {
	Expression string
	re         *regexp.Regexp
}

// OneOf fails when a value is not exactly equal to one of the options.
// Comparison is case-sensitive with no trimming.
type OneOf struct {
	Options []string
}

func (NotEmpty) isCheck()    {}
func (NumberRange) isCheck() {}
func (Email) isCheck()       {}
func (Pattern) isCheck()     {}
func (OneOf) isCheck()       {}

// NewPattern compiles expr into a Pattern check. An expression that fails
// to compile produces a check that never fails, matching ParseRules.
func NewPattern(expr string) Pattern {
	re, err := regexp.Compile(expr)
	if err != nil {
		re = nil
	}
	return Pattern{Expression: expr, re: re}
}

// ColumnRule binds a column name to its ordered list of checks.
type ColumnRule struct {
	Column string
	Checks []Check
}

// RuleSet is the validated rule configuration: the ordered rule list plus
// a derived name lookup used during scanning. A column absent from the
// lookup is simply unchecked. If the same column appears twice in the
// list, the later entry wins in the lookup.
type RuleSet struct {
	Rules  []ColumnRule
	lookup map[string][]Check
}

// ChecksFor returns the checks for a column, or nil when the column has
// no rules.
func (rs *RuleSet) ChecksFor(column string) []Check {
	return rs.lookup[column]
}

// checkSpec mirrors one entry of the wire format:
// {"type": "number", "min": 0, "max": 10}. Fields not used by the named
// type are ignored.
type checkSpec struct {
	Type    string   `json:"type"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Pattern string   `json:"pattern"`
	Options []string `json:"options"`
}

// columnSpec mirrors one column entry of the wire format.
type columnSpec struct {
	Column string      `json:"column"`
	Rules  []checkSpec `json:"rules"`
}

// ParseRules parses the rule definition JSON into a RuleSet.
//
// Malformed JSON and unknown rule types fail with RuleDefinitionError
// carrying the underlying cause. Pattern and the built-in email check are
// compiled here, once per load; a Pattern expression that fails to compile
// is kept as a never-failing check rather than rejected. Downstream
// tooling depends on bad patterns being inert, so do not turn them into
// errors here.
func ParseRules(rulesJSON string) (*RuleSet, error) {
	var specs []columnSpec
	if err := json.Unmarshal([]byte(rulesJSON), &specs); err != nil {
		return nil, &RuleDefinitionError{Err: err}
	}

	rs := &RuleSet{lookup: make(map[string][]Check, len(specs))}

	for _, cs := range specs {
		checks := make([]Check, 0, len(cs.Rules))
		for _, spec := range cs.Rules {
			check, err := buildCheck(spec)
			if err != nil {
				return nil, &RuleDefinitionError{Err: err}
			}
			checks = append(checks, check)
		}

		rs.Rules = append(rs.Rules, ColumnRule{Column: cs.Column, Checks: checks})
		rs.lookup[cs.Column] = checks
	}

	return rs, nil
}

// buildCheck converts one wire entry to its Check variant.
func buildCheck(spec checkSpec) (Check, error) {
	switch spec.Type {
	case "notempty":
		return NotEmpty{}, nil
	case "number":
		return NumberRange{Min: spec.Min, Max: spec.Max}, nil
	case "email":
		return Email{}, nil
	case "regex":
		return NewPattern(spec.Pattern), nil
	case "oneof":
		return OneOf{Options: spec.Options}, nil
	default:
		return nil, fmt.Errorf("unknown rule type %q", spec.Type)
	}
}
