package profile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxSlots is the number of measure slots the Treesta format offers.
const MaxSlots = 5

// UnknownUrgencyRank sorts urgencies missing from the order table after
// every known one.
const UnknownUrgencyRank = 9

// Policy holds the business rules for collecting measures. Every field
// can be overridden from a YAML file; a field left out keeps its default.
// Maps are replaced as a whole, not merged.
//
//	measure_prefix: massnahme_
//	named_measures:
//	  massnahme_hoch: high
//	  massnahme_optional: optional
//	urgency_order:
//	  high: 0
//	  "": 4
//	max_measure_slots: 5
type Policy struct {
	// MeasurePrefix starts every BK4 measure column name.
	MeasurePrefix string `yaml:"measure_prefix"`

	// NamedMeasures maps a BK4 measure column (lowercase) to its urgency.
	NamedMeasures map[string]string `yaml:"named_measures"`

	// RemarkSuffixes mark BK4 measure side columns that are dropped.
	RemarkSuffixes []string `yaml:"remark_suffixes"`

	// UrgencyOrder ranks urgencies; lower ranks take earlier slots.
	UrgencyOrder map[string]int `yaml:"urgency_order"`

	// MaxMeasureSlots is how many urgency groups are written.
	MaxMeasureSlots int `yaml:"max_measure_slots"`
}

// DefaultPolicy returns the rules the converter ships with.
//
// massnahme_optional is mapped to "low" as the last released converter
// did; whether it should be "optional" is an open business decision, see
// OptionalIsDowngraded.
func DefaultPolicy() Policy {
	return Policy{
		MeasurePrefix: "massnahme_",
		NamedMeasures: map[string]string{
			"massnahme_hoch":     "high",
			"massnahme_normal":   "normal",
			"massnahme_niedrig":  "low",
			"massnahme_sofort":   "high",
			"massnahme_optional": "low",
		},
		RemarkSuffixes: []string{"_bemerkung", "_datum", "_name", "_comment", "_date"},
		UrgencyOrder: map[string]int{
			"high":     0,
			"normal":   1,
			"medium":   1,
			"mittel":   1,
			"low":      2,
			"niedrig":  2,
			"optional": 3,
			"":         4,
		},
		MaxMeasureSlots: MaxSlots,
	}
}

// LoadPolicyFile loads a policy from a YAML file.
func LoadPolicyFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	return ParsePolicy(data)
}

// ParsePolicy parses YAML data into a Policy on top of the defaults.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()

	var raw Policy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Policy{}, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	applyOverrides(&p, raw)

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}

	return p, nil
}

// applyOverrides copies every field set in raw onto p.
func applyOverrides(p *Policy, raw Policy) {
	if raw.MeasurePrefix != "" {
		p.MeasurePrefix = raw.MeasurePrefix
	}

	if raw.NamedMeasures != nil {
		p.NamedMeasures = make(map[string]string, len(raw.NamedMeasures))
		for k, v := range raw.NamedMeasures {
			p.NamedMeasures[strings.ToLower(k)] = v
		}
	}

	if raw.RemarkSuffixes != nil {
		p.RemarkSuffixes = raw.RemarkSuffixes
	}

	if raw.UrgencyOrder != nil {
		p.UrgencyOrder = raw.UrgencyOrder
	}

	if raw.MaxMeasureSlots != 0 {
		p.MaxMeasureSlots = raw.MaxMeasureSlots
	}
}

// Validate checks the policy for values the writer cannot honor.
func (p Policy) Validate() error {
	if p.MaxMeasureSlots < 1 || p.MaxMeasureSlots > MaxSlots {
		return fmt.Errorf("max_measure_slots must be between 1 and %d, got %d", MaxSlots, p.MaxMeasureSlots)
	}

	if strings.TrimSpace(p.MeasurePrefix) == "" {
		return errors.New("measure_prefix must not be empty")
	}

	for column := range p.NamedMeasures {
		if !p.IsMeasureColumn(column) {
			return fmt.Errorf("named_measures column %q does not start with measure_prefix %q", column, p.MeasurePrefix)
		}
	}

	return nil
}

// Rank returns the precedence of an urgency; lower comes first.
func (p Policy) Rank(urgency string) int {
	if r, ok := p.UrgencyOrder[urgency]; ok {
		return r
	}

	return UnknownUrgencyRank
}

// NamedUrgency returns the urgency label of a BK4 measure column.
func (p Policy) NamedUrgency(column string) (string, bool) {
	u, ok := p.NamedMeasures[strings.ToLower(column)]
	return u, ok
}

// IsMeasureColumn reports whether column carries the BK4 measure prefix.
func (p Policy) IsMeasureColumn(column string) bool {
	return strings.HasPrefix(strings.ToLower(column), strings.ToLower(p.MeasurePrefix))
}

// IsRemarkColumn reports whether a BK4 measure column is a side column
// (remark, date, name) rather than a measure.
func (p Policy) IsRemarkColumn(column string) bool {
	lc := strings.ToLower(column)
	for _, suffix := range p.RemarkSuffixes {
		if strings.Contains(lc, suffix) {
			return true
		}
	}

	return false
}

// OptionalIsDowngraded reports whether massnahme_optional is filed under
// an urgency other than "optional". Callers surface this so the rule is
// confirmed rather than silently applied.
func (p Policy) OptionalIsDowngraded() bool {
	u, ok := p.NamedMeasures[strings.ToLower(p.MeasurePrefix)+"optional"]
	return ok && u != "optional"
}
