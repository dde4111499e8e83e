package gainers

import (
	"fmt"
	"strings"
)

// Tag names a watchlist a ticker may belong to.
type Tag int

const (
	// SimmeringGrowth holds moderate yearly gainers with a good month: the sweet spot.
	SimmeringGrowth Tag = iota + 1
	// Rockets holds extreme momentum stocks.
	Rockets
	// Turnarounds holds stocks down over a year but performing well recently.
	Turnarounds
)

// AllTags lists the watchlists in display order.
var AllTags = []Tag{SimmeringGrowth, Rockets, Turnarounds}

func (t Tag) String() string {
	switch t {
	case SimmeringGrowth:
		return "Simmering Growth"
	case Rockets:
		return "Rockets"
	case Turnarounds:
		return "Turnarounds"
	default:
		return "unknown"
	}
}

// ParseTag parses a watchlist name. It accepts "Simmering Growth",
// "SimmeringGrowth" or "simmering-growth".
func ParseTag(s string) (Tag, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "simmeringgrowth":
		return SimmeringGrowth, nil
	case "rockets":
		return Rockets, nil
	case "turnarounds":
		return Turnarounds, nil
	default:
		return 0, fmt.Errorf("unknown watchlist: %q", s)
	}
}

// TagSet is a set of Tags. The zero value is the empty set.
type TagSet uint8

// NewTagSet returns the set of tags.
func NewTagSet(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// With returns s plus t.
func (s TagSet) With(t Tag) TagSet { return s | 1<<uint(t) }

// Has reports whether t is in s.
func (s TagSet) Has(t Tag) bool { return s&(1<<uint(t)) != 0 }

// Len returns the number of tags in s.
func (s TagSet) Len() int {
	n := 0
	for _, t := range AllTags {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no tag is in s.
func (s TagSet) IsEmpty() bool { return s == 0 }

// Tags returns the tags in display order.
func (s TagSet) Tags() []Tag {
	tags := make([]Tag, 0, len(AllTags))
	for _, t := range AllTags {
		if s.Has(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

// otherList is the list name of a scanned ticker in no watchlist.
const otherList = "Other"

// String joins the tag names with ";", or returns "Other" for the empty set.
func (s TagSet) String() string {
	if s.IsEmpty() {
		return otherList
	}
	names := make([]string, 0, len(AllTags))
	for _, t := range s.Tags() {
		names = append(names, t.String())
	}
	return strings.Join(names, ";")
}

// ParseTagSet reads what String writes.
func ParseTagSet(str string) (TagSet, error) {
	var s TagSet
	str = strings.TrimSpace(str)
	if str == "" || str == otherList {
		return s, nil
	}
	for _, name := range strings.Split(str, ";") {
		t, err := ParseTag(name)
		if err != nil {
			return 0, err
		}
		s = s.With(t)
	}
	return s, nil
}
