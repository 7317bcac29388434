package epidemic

import "fmt"

// Severity captures consistency-rule outcomes.
type Severity string

const (
	// SeverityBlock rejects the derivation that produced the dates.
	SeverityBlock Severity = "block"
	// SeverityWarn flags the dates but lets them stand.
	SeverityWarn Severity = "warn"
)

// Violation reports a failed consistency check.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
}

// Result aggregates violations from rule evaluation.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking reports whether any violation is blocking.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// ConsistencyRule validates freshly derived transition dates against their
// trajectory. Rules are pure and safe for concurrent use.
type ConsistencyRule interface {
	Name() string
	Evaluate(dates TransitionDates, t *Trajectory) Result
}

// RuleSet orchestrates consistency-rule evaluation.
type RuleSet struct {
	rules []ConsistencyRule
}

// NewRuleSet returns a rule set preloaded with the standard date rules.
func NewRuleSet() *RuleSet {
	rs := &RuleSet{}
	rs.Register(DateOrderingRule())
	rs.Register(ImmunityWindowRule())
	return rs
}

// Register appends a rule.
func (rs *RuleSet) Register(rule ConsistencyRule) {
	rs.rules = append(rs.rules, rule)
}

// Evaluate runs all registered rules and aggregates their results.
func (rs *RuleSet) Evaluate(dates TransitionDates, t *Trajectory) Result {
	var combined Result
	for _, rule := range rs.rules {
		combined.Merge(rule.Evaluate(dates, t))
	}
	return combined
}

// DateOrderingRule blocks derivations whose dates violate the monotonic
// ordering invariants: infectious start precedes infectious end, and a
// symptomatic window lies within the infectious one.
func DateOrderingRule() ConsistencyRule { return dateOrderingRule{} }

type dateOrderingRule struct{}

func (dateOrderingRule) Name() string { return "date_ordering" }

func (dateOrderingRule) Evaluate(d TransitionDates, _ *Trajectory) Result {
	var res Result
	block := func(format string, args ...any) {
		res.Violations = append(res.Violations, Violation{
			Rule:     "date_ordering",
			Severity: SeverityBlock,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if d.InfectiousStart != Never && d.InfectiousEnd != Never && d.InfectiousStart > d.InfectiousEnd {
		block("infectious start %d after infectious end %d", d.InfectiousStart, d.InfectiousEnd)
	}
	if d.SymptomsStart != Never {
		if d.InfectiousStart != Never && d.SymptomsStart < d.InfectiousStart {
			block("symptoms start %d before infectious start %d", d.SymptomsStart, d.InfectiousStart)
		}
		if d.SymptomsEnd != Never && d.SymptomsStart > d.SymptomsEnd {
			block("symptoms start %d after symptoms end %d", d.SymptomsStart, d.SymptomsEnd)
		}
		if d.SymptomsEnd != Never && d.InfectiousEnd != Never && d.SymptomsEnd > d.InfectiousEnd {
			block("symptoms end %d after infectious end %d", d.SymptomsEnd, d.InfectiousEnd)
		}
	}
	if d.AsymptomaticOnset != Never && d.AsymptomaticOnset != d.InfectiousStart {
		block("asymptomatic onset %d differs from infectious start %d", d.AsymptomaticOnset, d.InfectiousStart)
	}
	return res
}

// ImmunityWindowRule blocks derivations where an immunity end exists without
// a recovery, or precedes it.
func ImmunityWindowRule() ConsistencyRule { return immunityWindowRule{} }

type immunityWindowRule struct{}

func (immunityWindowRule) Name() string { return "immunity_window" }

func (immunityWindowRule) Evaluate(d TransitionDates, _ *Trajectory) Result {
	var res Result
	if d.ImmunityEnd == Never {
		return res
	}
	if d.InfectiousEnd == Never {
		res.Violations = append(res.Violations, Violation{
			Rule:     "immunity_window",
			Severity: SeverityBlock,
			Message:  "immunity end set on a never-infectious course",
		})
		return res
	}
	if d.ImmunityEnd < d.InfectiousEnd {
		res.Violations = append(res.Violations, Violation{
			Rule:     "immunity_window",
			Severity: SeverityBlock,
			Message:  fmt.Sprintf("immunity end %d precedes infectious end %d", d.ImmunityEnd, d.InfectiousEnd),
		})
	}
	return res
}
