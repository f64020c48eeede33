package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/launchdeck/pkg/launch"
)

// Apply returns the records matching every predicate of spec, ordered by
// spec.SortBy in spec.SortOrder. The input slice is not modified.
func Apply(records []launch.Launch, spec FilterSpec) []launch.Launch {
	m := newMatcher(spec)
	out := make([]launch.Launch, 0, len(records))
	for _, l := range records {
		if m.match(l) {
			out = append(out, l)
		}
	}

	compare := comparator(ParseSortBy(string(spec.SortBy)))
	if ParseSortOrder(string(spec.SortOrder)) == Asc {
		slices.SortStableFunc(out, compare)
	} else {
		// Negating the comparison (not the result) keeps ties in input order.
		slices.SortStableFunc(out, func(a, b launch.Launch) int { return compare(b, a) })
	}
	return out
}

// Matches reports whether l satisfies every predicate of spec.
func (f FilterSpec) Matches(l launch.Launch) bool {
	return newMatcher(f).match(l)
}

type matcher struct {
	spec   FilterSpec
	needle string
}

func newMatcher(spec FilterSpec) matcher {
	return matcher{spec: spec, needle: strings.ToLower(spec.Search)}
}

func (m matcher) match(l launch.Launch) bool {
	s := m.spec
	if m.needle != "" && !m.matchSearch(l) {
		return false
	}
	if s.Outcome != nil && l.Success != *s.Outcome {
		return false
	}
	if s.Upcoming != nil && l.Upcoming != *s.Upcoming {
		return false
	}
	if s.DateFrom != nil && l.DateUTC.Before(*s.DateFrom) {
		return false
	}
	if s.DateTo != nil && l.DateUTC.After(*s.DateTo) {
		return false
	}
	if s.Rocket != "" && l.Rocket.ID != s.Rocket {
		return false
	}
	if s.Launchpad != "" && l.Launchpad.ID != s.Launchpad {
		return false
	}
	return true
}

func (m matcher) matchSearch(l launch.Launch) bool {
	for _, field := range [...]string{l.Name, l.Rocket.Name, l.Launchpad.Name, l.DetailsText()} {
		if strings.Contains(strings.ToLower(field), m.needle) {
			return true
		}
	}
	return false
}

func comparator(field SortField) func(a, b launch.Launch) int {
	switch field {
	case SortName:
		return func(a, b launch.Launch) int { return strings.Compare(a.Name, b.Name) }
	case SortFlightNumber:
		return func(a, b launch.Launch) int { return cmp.Compare(a.FlightNumber, b.FlightNumber) }
	default:
		return func(a, b launch.Launch) int { return a.DateUTC.Compare(b.DateUTC) }
	}
}
