package services

import (
	"github.com/shopspring/decimal"
)

// FeeRangeRule maps a named fee bucket to an inclusive numeric range. Max is
// nil for the open-ended top bucket. A college matches a rule when any of its
// course rows has a MinFee inside the range.
type FeeRangeRule struct {
	Name string
	Min  decimal.Decimal
	Max  *decimal.Decimal
}

// DefaultFeeRangeRules returns the static rule table. Loaded once at startup
// and treated as immutable for the process lifetime.
func DefaultFeeRangeRules() []FeeRangeRule {
	return []FeeRangeRule{
		{Name: "below50k", Min: decimal.Zero, Max: decimalPtr(50000)},
		{Name: "50kTo100k", Min: decimal.NewFromInt(50000), Max: decimalPtr(100000)},
		{Name: "100kTo200k", Min: decimal.NewFromInt(100000), Max: decimalPtr(200000)},
		{Name: "200kTo300k", Min: decimal.NewFromInt(200000), Max: decimalPtr(300000)},
		{Name: "300kTo500k", Min: decimal.NewFromInt(300000), Max: decimalPtr(500000)},
		{Name: "above500k", Min: decimal.NewFromInt(500000), Max: nil},
	}
}

// SelectFeeRangeRules resolves requested bucket names against the rule table.
// Unknown names are ignored rather than rejected.
func SelectFeeRangeRules(rules []FeeRangeRule, names []string) []FeeRangeRule {
	if len(names) == 0 {
		return nil
	}

	byName := make(map[string]FeeRangeRule, len(rules))
	for _, rule := range rules {
		byName[rule.Name] = rule
	}

	selected := make([]FeeRangeRule, 0, len(names))
	for _, name := range names {
		if rule, ok := byName[name]; ok {
			selected = append(selected, rule)
		}
	}
	return selected
}

// Contains reports whether a single fee value falls inside the rule's range.
func (r FeeRangeRule) Contains(fee decimal.Decimal) bool {
	if fee.LessThan(r.Min) {
		return false
	}
	if r.Max != nil && fee.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// AnyFeeMatches reports whether any of the given fee values falls inside any
// of the given rules. This mirrors the SQL predicate: OR across rules, EXISTS
// across a college's fee rows.
func AnyFeeMatches(rules []FeeRangeRule, fees []decimal.Decimal) bool {
	for _, rule := range rules {
		for _, fee := range fees {
			if rule.Contains(fee) {
				return true
			}
		}
	}
	return false
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
