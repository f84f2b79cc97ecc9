// Package tzexpand materializes tzdata Rule lines, which describe a
// recurring transition across a range of years, into one concrete
// RuleLine per year the rule actually fires in. This mirrors vzic's
// expand_and_sort_rule_array: the transition builder only ever reasons
// about a single concrete firing at a time.
package tzexpand

import (
	"sort"
	"time"

	"github.com/vzic-go/vzic/internal/daymath"
	"github.com/vzic-go/vzic/internal/unixtime"
	"github.com/vzic-go/vzic/tzdata"
)

// Moment is a point in time with the day-of-month already resolved,
// used to bound rule expansion.
type Moment struct {
	Year  int
	Month time.Month
	Day   int
	Time  tzdata.Time
}

// Epoch boundaries used to bound "minimum"/"maximum" rule years when a
// zone's own segment bounds don't already supply tighter ones.
var (
	EpochMin = Moment{Year: 1900, Month: time.January, Day: 1}
	Epoch0   = Moment{Year: 1970, Month: time.January, Day: 1}
	// EpochMax is the horizon beyond which this module does not expand
	// open-ended rules. Firings of a rule whose TO is "max" are marked
	// OpenEnded, and the recurrence collapser turns such a firing into an
	// open-ended RRULE; a run of at least 100 identical yearly firings of
	// a bounded rule becomes a finite RRULE with an UNTIL instead.
	EpochMax = Moment{Year: 2037, Month: time.December, Day: 31}
)

// ExpandedRule is one concrete yearly firing of a Rule line.
type ExpandedRule struct {
	Rule tzdata.RuleLine // From == To == the concrete year this fires in
	// OpenEnded is true when the source rule's TO column was "max": this
	// firing is part of a run that, in the real tzdata, continues forever,
	// truncated here at the expansion horizon.
	OpenEnded bool
	// SourceOn is the ON column's day specifier exactly as written in the
	// source Rule line ("lastSun", "Sun>=8", a plain day number, ...),
	// kept alongside Rule.On (which is always a resolved day number) so
	// the recurrence collapser can recognize that two firings in
	// consecutive years came from the same recurring rule even though
	// their resolved calendar days differ.
	SourceOn tzdata.Day
}

// Earliest returns the earliest Unix instant at or after which u's
// condition no longer holds, resolving any omitted trailing UNTIL fields
// to their earliest possible values.
func Earliest(u tzdata.Until) int64 {
	e := earliest(u)
	h := int(e.Time.Duration / time.Hour)
	m := int((e.Time.Duration % time.Hour) / time.Minute)
	s := int((e.Time.Duration % time.Minute) / time.Second)
	return unixtime.FromDateTime(e.Year, int(e.Month), e.Day.Num, h, m, s)
}

func earliest(u tzdata.Until) tzdata.Until {
	if !u.Defined {
		return u
	}
	if !u.Parts.Has(tzdata.UntilMonth) {
		u.Month = time.January
	}
	if u.Parts.Has(tzdata.UntilDay) {
		if u.Day.Form != tzdata.DayFormDayNum {
			var num int
			u.Year, u.Month, num = daymath.Resolve(u.Year, u.Month, u.Day)
			u.Day = tzdata.NewDayNum(num)
		}
	} else {
		u.Day = tzdata.NewDayNum(1)
	}
	if !u.Parts.Has(tzdata.UntilTime) {
		u.Time = tzdata.Time{Form: tzdata.WallClock}
	}
	return u
}

// ExpandRules materializes every Rule line named in rules into one
// ExpandedRule per year it fires in, bounded by [min, max]. Rules whose
// FROM is "minimum" are clamped to min.Year; rules whose TO is "maximum"
// are clamped to max.Year and marked OpenEnded. The result is sorted by
// firing order (year, month, then day); each firing's ON is already
// resolved to a concrete day number, so "lastX" rules sort by their
// actual date in that year.
func ExpandRules(min, max Moment, rules []tzdata.RuleLine) []ExpandedRule {
	var out []ExpandedRule
	for _, rule := range rules {
		out = append(out, expandRule(min, max, rule)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rule, out[j].Rule
		if ri.From != rj.From {
			return ri.From < rj.From
		}
		if ri.In != rj.In {
			return ri.In < rj.In
		}
		return daymath.SortDay(ri.On) < daymath.SortDay(rj.On)
	})
	return out
}

func expandRule(min, max Moment, rl tzdata.RuleLine) []ExpandedRule {
	openEnded := rl.To == tzdata.MaxYear

	from := rl.From
	if from == tzdata.MinYear {
		from = tzdata.Year(min.Year)
	}
	to := rl.To
	if to == tzdata.MaxYear {
		to = tzdata.Year(max.Year)
	}

	var out []ExpandedRule
	for year := from; year <= to; year++ {
		y, m, d := daymath.Resolve(int(year), rl.In, rl.On)

		if y < min.Year || y > max.Year {
			continue
		}
		if y == max.Year && m > max.Month {
			continue
		}
		if y == min.Year && m < min.Month {
			continue
		}
		if y == max.Year && m == max.Month && d > max.Day {
			continue
		}
		if y == min.Year && m == min.Month && d < min.Day {
			continue
		}

		out = append(out, ExpandedRule{
			Rule: tzdata.RuleLine{
				Name:   rl.Name,
				From:   tzdata.Year(y),
				To:     tzdata.Year(y),
				In:     m,
				On:     tzdata.NewDayNum(d),
				At:     rl.At,
				Save:   rl.Save,
				Letter: rl.Letter,
			},
			OpenEnded: openEnded && year == to,
			SourceOn:  rl.On,
		})
	}
	return out
}
