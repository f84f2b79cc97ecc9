// Package recurrence collapses a zone's ordered transition vector into a
// smaller set of VTIMEZONE STANDARD/DAYLIGHT components, each either
// governed by an RRULE, carrying a trailing RDATE list, or standing
// alone. Grounded on vzic-output.c's two-pass output_rrule/output_zone
// algorithm (original_source/vzic/vzic-output.c).
package recurrence

import (
	"time"

	"github.com/vzic-go/vzic/internal/transition"
	"github.com/vzic-go/vzic/tzdata"
)

// MinRRuleOccurrences is the minimum length of a consecutive-year run
// (counting its first match) before it is collapsed into a finite RRULE
// with an UNTIL; in practice this means only an infinite rule (one whose
// source Rule line has TO=maximum) reliably reaches RRULE form, since few
// real zones repeat the exact same rule for 100 straight years without a
// zone redefinition in between.
const MinRRuleOccurrences = 100

// RRuleStartYear is the anchor year an infinite RRULE is backdated to in
// compatibility mode, so that consumers treating the VTIMEZONE as
// "this has always applied" see a stable, far-past DTSTART.
const RRuleStartYear = 1970

// RDateYear is the placeholder year a standalone compatibility-mode
// fallback component's DTSTART is normalized to.
const RDateYear = 1970

// Component is one STANDARD or DAYLIGHT block to be emitted.
type Component struct {
	IsDST        bool
	TZOffsetFrom time.Duration
	TZOffsetTo   time.Duration
	TZName       string
	DTStart      transition.VzicTime
	RRule        *RRule
	RDates       []transition.VzicTime
}

// RRule is the normalized form of a recurring component's RRULE, left
// for RRule.Render (rrule.go) to render to text.
type RRule struct {
	Month time.Month
	Day   tzdata.Day           // realized day specifier (see Day-code realisation)
	Until *transition.VzicTime // nil for an open-ended (infinite) RRULE
}

// Options configures Collapse beyond the compat/pure mode split, for
// the CLI's --no-rrules/--no-rdates overrides (spec §6's minimally
// specified CLI surface).
type Options struct {
	Compat   bool
	NoRRules bool // skip Pass 1 entirely; every transition reaches Pass 2
	NoRDates bool // Pass 2 pure mode never absorbs later transitions as RDATEs
}

// Collapse runs the two-pass collapser over txs (already in ascending
// Unix order, as returned by transition.BuildZone) and returns the
// components to emit. compat selects Outlook-compatible Pass 2 behavior
// (a single synthetic fallback STANDARD component) over pure-mode
// behavior (every remaining transition emitted, standalone or grouped
// into RDATEs).
func Collapse(txs []transition.Transition, compat bool) []Component {
	return CollapseWithOptions(txs, Options{Compat: compat})
}

// CollapseWithOptions is Collapse with the CLI's --no-rrules/--no-rdates
// overrides available.
func CollapseWithOptions(txs []transition.Transition, opts Options) []Component {
	emitted := make([]bool, len(txs))
	var out []Component

	// Pass 1: RRULEs.
	for i, t := range txs {
		if opts.NoRRules {
			break
		}
		if emitted[i] {
			continue
		}
		if t.IsInfinite {
			start := t.Wall
			if opts.Compat {
				start = transition.VzicTime{Year: RRuleStartYear, Month: t.Wall.Month, Day: t.Wall.Day, TimeOfDay: t.Wall.TimeOfDay, Frame: t.Wall.Frame}
			}
			out = append(out, Component{
				IsDST:        t.IsDST,
				TZOffsetFrom: t.PrevUTCOffset,
				TZOffsetTo:   t.UTCOffset,
				TZName:       t.TZName,
				DTStart:      start,
				RRule:        &RRule{Month: t.Wall.Month, Day: realizeDay(t)},
			})
			emitted[i] = true
			continue
		}
		if isRuleDerived(t) {
			run := []int{i}
			lastYear := t.Wall.Year
			for j := i + 1; j < len(txs); j++ {
				if emitted[j] || txs[j].Wall.Year != lastYear+1 {
					continue
				}
				if !sameRecurrence(t, txs[j]) {
					continue
				}
				run = append(run, j)
				lastYear = txs[j].Wall.Year
			}
			if len(run) >= MinRRuleOccurrences {
				last := txs[run[len(run)-1]]
				until, _ := last.Wall.ToUniversal(last.UTCOffset, 0)
				out = append(out, Component{
					IsDST:        t.IsDST,
					TZOffsetFrom: t.PrevUTCOffset,
					TZOffsetTo:   t.UTCOffset,
					TZName:       t.TZName,
					DTStart:      t.Wall,
					RRule:        &RRule{Month: t.Wall.Month, Day: realizeDay(t), Until: &until},
				})
				for _, idx := range run {
					emitted[idx] = true
				}
			}
		}
	}

	if opts.Compat {
		out = append(out, pass2Compat(txs, emitted)...)
	} else {
		out = append(out, pass2Pure(txs, emitted, opts.NoRDates)...)
	}
	return out
}

func isRuleDerived(t transition.Transition) bool {
	return t.SourceOn != (tzdata.Day{}) || t.SourceAt != (tzdata.Time{})
}

// sameRecurrence reports whether b is the next year's firing of the same
// recurring rule as a: same month, day specifier, AT spec, and resulting
// offsets/name.
func sameRecurrence(a, b transition.Transition) bool {
	return a.Wall.Month == b.Wall.Month &&
		a.SourceOn == b.SourceOn &&
		a.SourceAt == b.SourceAt &&
		a.PrevUTCOffset == b.PrevUTCOffset &&
		a.UTCOffset == b.UTCOffset &&
		a.TZName == b.TZName
}

func pass2Compat(txs []transition.Transition, emitted []bool) []Component {
	for i := len(txs) - 1; i >= 0; i-- {
		if emitted[i] || txs[i].IsDST {
			continue
		}
		t := txs[i]
		dtstart := transition.VzicTime{Year: RDateYear, Month: time.January, Day: 1, TimeOfDay: 0, Frame: tzdata.WallClock}
		emitted[i] = true
		return []Component{{
			IsDST:        false,
			TZOffsetFrom: t.UTCOffset,
			TZOffsetTo:   t.UTCOffset,
			TZName:       t.TZName,
			DTStart:      dtstart,
		}}
	}
	return nil
}

func pass2Pure(txs []transition.Transition, emitted []bool, noRDates bool) []Component {
	// vzic's own pass 2 skips index 0 because its transition vector
	// always begins with a synthetic -infinity sentinel with no real
	// data of its own; transition.BuildZone never constructs such a
	// placeholder, so every element here is real and eligible.
	var out []Component
	for i := 0; i < len(txs); i++ {
		if emitted[i] {
			continue
		}
		t := txs[i]
		emitted[i] = true
		c := Component{
			IsDST:        t.IsDST,
			TZOffsetFrom: t.PrevUTCOffset,
			TZOffsetTo:   t.UTCOffset,
			TZName:       t.TZName,
			DTStart:      t.Wall,
		}
		if !noRDates {
			for j := i + 1; j < len(txs); j++ {
				if emitted[j] {
					continue
				}
				u := txs[j]
				if u.IsDST == t.IsDST && u.PrevUTCOffset == t.PrevUTCOffset && u.UTCOffset == t.UTCOffset && u.TZName == t.TZName {
					c.RDates = append(c.RDates, u.Wall)
					emitted[j] = true
				}
			}
		}
		out = append(out, c)
	}
	return out
}

// realizeDay implements calculate_actual_time's day-code realisation:
// the day specifier that survives into the RRULE is the one the source
// Rule line wrote (lastSun, Sun>=N, Sun<=N, or a plain day number), with
// any ±1 day carry from resolving the AT value to an instant and then to
// its displayed wall-clock reading already folded into Transition.Wall
// before the transition reached this package, which is precisely why
// Transition carries the original Wall moment rather than re-deriving it
// here.
func realizeDay(t transition.Transition) tzdata.Day {
	if t.SourceOn == (tzdata.Day{}) {
		return tzdata.NewDayNum(t.Wall.Day)
	}
	return t.SourceOn
}
