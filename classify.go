package gainers

import "slices"

// Rule decides the membership of a Snapshot in one watchlist.
type Rule struct {
	Tag Tag
	// Description is the human readable threshold, e.g. "52W: 10-20%, Mo: >5%".
	Description string
	match       func(week52, monthly float64) bool
}

// Match reports whether s belongs to the rule's watchlist.
// A rule never matches when one of the returns it reads is unknown.
func (r Rule) Match(s Snapshot) bool {
	week52, ok := s.Week52Return.Get()
	if !ok {
		return false
	}
	monthly, ok := s.MonthlyReturn.Get()
	if !ok {
		return false
	}
	return r.match(week52, monthly)
}

var rules = []Rule{
	{
		Tag:         SimmeringGrowth,
		Description: "52W: 10-20%, Mo: >5%",
		match: func(week52, monthly float64) bool {
			return week52 >= 10 && week52 <= 20 && monthly > 5
		},
	},
	{
		Tag:         Rockets,
		Description: "52W: >50%, Mo: >10%",
		match: func(week52, monthly float64) bool {
			return week52 > 50 && monthly > 10
		},
	},
	{
		Tag:         Turnarounds,
		Description: "52W: <0%, Mo: >10%",
		match: func(week52, monthly float64) bool {
			return week52 < 0 && monthly > 10
		},
	},
}

// Rules returns the classification rules in display order.
func Rules() []Rule { return slices.Clone(rules) }

// RuleFor returns the rule of a watchlist.
func RuleFor(t Tag) (Rule, bool) {
	for _, r := range rules {
		if r.Tag == t {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify returns every watchlist s belongs to. Rules are evaluated
// independently, so more than one tag may be returned.
func Classify(s Snapshot) TagSet {
	var set TagSet
	for _, r := range rules {
		if r.Match(s) {
			set = set.With(r.Tag)
		}
	}
	return set
}
