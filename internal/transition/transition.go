// Package transition builds the ordered sequence of UTC offset changes for
// a single IANA zone, by walking its Zone continuation lines ("segments")
// in order and, within each segment, the Rule firings that apply to it.
//
// This is grounded in vzic's output_zone_components/add_rule_changes
// (vzic-output.c), adapted to Go value semantics: rather than mutating a
// shared array of changes in place, BuildZone returns an immutable slice
// of Transition values.
package transition

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vzic-go/vzic/internal/tzexpand"
	"github.com/vzic-go/vzic/tzdata"
)

// Segment is one Zone or zone-continuation line, with its UNTIL column
// already resolved to a VzicTime (Start is the previous line's UNTIL, or
// the zero Moment for the zone's first line; End is nil for the zone's
// last, open-ended line).
type Segment struct {
	Offset time.Duration // STDOFF: added to UT to get standard time
	Rules  tzdata.ZoneRules
	Format string
	Start  VzicTime
	End    *VzicTime
}

// Transition is one change in a zone's observed UTC offset.
type Transition struct {
	Unix           int64
	UTCOffset      time.Duration // total offset from UT after this transition
	PrevUTCOffset  time.Duration // total offset from UT before this transition
	StdOffset      time.Duration
	Save           time.Duration
	IsDST          bool
	TZName         string
	IsSegmentStart bool

	// Wall is the moment actually displayed on local clocks once this
	// transition takes effect: the source AT/UNTIL value, converted from
	// whatever frame it was written in to the wall-clock reading under
	// this transition's own (post-transition) offset. This is what the
	// emitted component's DTSTART/RDATE print.
	Wall VzicTime

	// The following describe the originating Rule firing, if any (the
	// zero value for segment-start transitions that have no Rule behind
	// them). They let the recurrence collapser recognize that two
	// transitions a year apart came from the same recurring Rule even
	// though their resolved calendar days differ from year to year.
	SourceOn   tzdata.Day
	SourceAt   tzdata.Time
	IsInfinite bool
}

// BuildZone returns the ordered transitions for a zone made up of segments,
// consulting rulesByName for the expanded, per-year firings of any named
// rule set a segment references. rulesByName must already be sorted in
// firing order, as returned by tzexpand.ExpandRules.
func BuildZone(zoneName string, segments []Segment, rulesByName map[string][]tzexpand.ExpandedRule) ([]Transition, error) {
	var (
		out           []Transition
		prevUTCOffset time.Duration
		prevStdOffset time.Duration
		prevSave      time.Duration
		haveAny       bool
	)

	for i, seg := range segments {
		save := time.Duration(0)
		if seg.Rules.Form == tzdata.ZoneRulesFixedSave {
			save = seg.Rules.Save.Duration
		}

		var firings []tzexpand.ExpandedRule
		if seg.Rules.Form == tzdata.ZoneRulesName {
			firings = rulesByName[seg.Rules.Name]
		}

		segStartUniv, segStartKnown := segmentStartUniversal(i, seg, prevStdOffset, prevSave)
		var segStartUnix int64
		if segStartKnown {
			segStartUnix = segStartUniv.Unix()
		}

		// Segment-start transition, unless this is the zone's very first
		// segment (nothing to transition from) or the first rule firing
		// happens to coincide with the segment start exactly.
		firstFiringUnix, haveFirstFiring := firstFiringAt(firings, seg, save, segStartUnix, segStartKnown)
		suppressStart := haveFirstFiring && segStartKnown && firstFiringUnix == segStartUnix

		if i > 0 && !suppressStart {
			name, err := ExpandTZName(zoneName, seg.Format, "")
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			newOffset := seg.Offset + save
			out = append(out, Transition{
				Unix:           segStartUnix,
				UTCOffset:      newOffset,
				PrevUTCOffset:  prevUTCOffset,
				StdOffset:      seg.Offset,
				Save:           save,
				IsDST:          save != 0,
				TZName:         name,
				IsSegmentStart: true,
				Wall:           segStartUniv.ToWall(newOffset),
			})
			prevUTCOffset = newOffset
			haveAny = true
		} else if i == 0 {
			prevUTCOffset = seg.Offset + save
		}

		segEnd, hasEnd := segmentEndUnix(seg)

		currentSave := save
		for _, fr := range firings {
			local := FromRuleFiring(fr.Rule)
			vt := local.toUniversalFor(seg.Offset, currentSave)
			instant := vt.Unix()
			if segStartKnown && instant < segStartUnix {
				continue
			}
			if hasEnd && instant >= segEnd {
				break
			}
			if i == 0 && !segStartKnown {
				// No defined start: the zone's first segment has no
				// predecessor, so every firing at or after the horizon
				// start is in scope; nothing to filter here beyond End.
			}

			name, err := ExpandTZName(zoneName, seg.Format, fr.Rule.Letter)
			if err != nil {
				return nil, fmt.Errorf("segment %d rule firing %v: %w", i, fr.Rule, err)
			}
			if idx := strings.IndexByte(seg.Format, '/'); idx != -1 && !strings.Contains(seg.Format, "%s") {
				// A "STD/DST" pair follows the rule's SAVE, not its LETTER/S.
				name = seg.Format[idx+1:]
				if fr.Rule.Save.Duration == 0 {
					name = seg.Format[:idx]
				}
			} else if fr.Rule.Letter == "" {
				// An active rule whose LETTER/S is "-" substitutes "".
				name = strings.Replace(seg.Format, "%s", "", 1)
			}
			newOffset := seg.Offset + fr.Rule.Save.Duration
			out = append(out, Transition{
				Unix:          instant,
				UTCOffset:     newOffset,
				PrevUTCOffset: prevUTCOffset,
				StdOffset:     seg.Offset,
				Save:          fr.Rule.Save.Duration,
				IsDST:         fr.Rule.Save.Duration != 0,
				TZName:        name,
				Wall:          vt.ToWall(newOffset),
				SourceOn:      fr.SourceOn,
				SourceAt:      fr.Rule.At,
				IsInfinite:    fr.OpenEnded,
			})
			prevUTCOffset = newOffset
			currentSave = fr.Rule.Save.Duration
			haveAny = true
		}

		prevStdOffset = seg.Offset
		prevSave = currentSave
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Unix < out[j].Unix })
	if !haveAny && len(segments) > 0 {
		// A zone with no observed changes at all (no rules ever fire): a
		// single synthetic transition carrying its constant offset, so
		// downstream components always have at least one entry to work
		// with.
		seg := segments[len(segments)-1]
		save := time.Duration(0)
		if seg.Rules.Form == tzdata.ZoneRulesFixedSave {
			save = seg.Rules.Save.Duration
		}
		name, err := ExpandTZName(zoneName, seg.Format, "")
		if err != nil {
			return nil, err
		}
		out = append(out, Transition{UTCOffset: seg.Offset + save, StdOffset: seg.Offset, Save: save, TZName: name})
	}
	return out, nil
}

func (t VzicTime) toUniversalFor(stdOffset, save time.Duration) VzicTime {
	u, _ := t.ToUniversal(stdOffset, save)
	return u
}

// segmentStartUniversal resolves a segment's Start (the previous line's raw
// UNTIL value, in whatever frame it was written) to the universal frame,
// using the standard offset and save in effect at the end of the previous
// line — the clock the UNTIL was actually written against.
func segmentStartUniversal(i int, seg Segment, prevStdOffset, prevSave time.Duration) (VzicTime, bool) {
	if i == 0 {
		return VzicTime{}, false
	}
	u, _ := seg.Start.ToUniversal(prevStdOffset, prevSave)
	return u, true
}

func segmentEndUnix(seg Segment) (int64, bool) {
	if seg.End == nil {
		return 0, false
	}
	return seg.End.Unix(), true
}

func firstFiringAt(firings []tzexpand.ExpandedRule, seg Segment, save time.Duration, segStartUnix int64, segStartKnown bool) (int64, bool) {
	for _, fr := range firings {
		vt := FromRuleFiring(fr.Rule).toUniversalFor(seg.Offset, save)
		if segStartKnown && vt.Unix() < segStartUnix {
			continue
		}
		return vt.Unix(), true
	}
	return 0, false
}

// letterSFallback hard-codes the abbreviation overrides vzic applies when
// a zone's first segment has no active rule by the time its VTIMEZONE is
// emitted, so %s in FORMAT would otherwise expand to nothing meaningful.
// Ported from vzic-output.c: expand_tzname.
var letterSFallback = map[[2]string]string{
	{"Asia/Macao", "C%sT"}:       "CST",
	{"Asia/Macau", "C%sT"}:       "CST",
	{"Asia/Ashgabat", "ASH%sT"}:  "ASHT",
	{"Asia/Ashgabat", "TM%sT"}:   "TMT",
	{"Asia/Samarkand", "TAS%sT"}: "TAST",
	{"Atlantic/Azores", "WE%sT"}: "WET",
	{"Europe/Paris", "WE%sT"}:    "WET",
	{"Europe/Warsaw", "CE%sT"}:   "CET",
	{"America/Phoenix", "M%sT"}:  "MST",
	{"America/Nome", "Y%sT"}:     "YST",
}

// ExpandTZName resolves a Zone FORMAT column and a Rule LETTER/S value
// into the abbreviation that appears in a VTIMEZONE's TZNAME property.
// format may contain a single "%s" placeholder, be a literal "STD/DST"
// pair, or be a plain literal with no placeholder at all. An empty letter
// means no rule supplies one: "%s" then resolves through the letterSFallback
// table, and failing that the result is "" (no TZNAME). For a "STD/DST"
// pair an empty letter selects the part before the slash and any other
// letter the part after it; BuildZone chooses the half for a rule firing
// by the rule's SAVE instead.
func ExpandTZName(zoneName, format, letter string) (string, error) {
	if idx := strings.IndexByte(format, '/'); idx != -1 && !strings.Contains(format, "%s") {
		if letter == "" {
			return format[:idx], nil
		}
		return format[idx+1:], nil
	}
	if !strings.Contains(format, "%s") {
		return format, nil
	}
	if letter != "" {
		return strings.Replace(format, "%s", letter, 1), nil
	}
	if fallback, ok := letterSFallback[[2]string{zoneName, format}]; ok {
		return fallback, nil
	}
	// No letter and no known fallback: vzic omits TZNAME entirely rather
	// than emit a name with a literal "%s" in it or guess.
	return "", nil
}
