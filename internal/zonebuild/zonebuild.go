// Package zonebuild turns a parsed tzdata.File into the per-zone inputs
// transition.BuildZone expects: an ordered []transition.Segment per
// zone (grouping Zone lines with their continuation lines, resolving
// each line's UNTIL into the next line's start) and a rulesByName map
// of every named Rule set the zones reference, expanded once and
// shared read-only across zones per spec §5's single-mutation-pass
// resource model.
package zonebuild

import (
	"github.com/vzic-go/vzic/internal/transition"
	"github.com/vzic-go/vzic/internal/tzexpand"
	"github.com/vzic-go/vzic/tzdata"
)

// GroupZones splits a flat ZoneLines slice (Zone records followed by
// their Continuation lines, as tzdata.Parse produces) into one ordered
// slice per zone name, keyed by that zone's Name.
func GroupZones(lines []tzdata.ZoneLine) map[string][]tzdata.ZoneLine {
	zones := make(map[string][]tzdata.ZoneLine)
	var current string
	for _, line := range lines {
		if !line.Continuation {
			current = line.Name
		}
		zones[current] = append(zones[current], line)
	}
	return zones
}

// BuildSegments resolves one zone's ordered ZoneLines into
// transition.Segments, chaining each line's UNTIL into the next line's
// Start. The first segment's Start is the zero VzicTime, which
// transition.BuildZone special-cases as "no predecessor" and ignores.
func BuildSegments(lines []tzdata.ZoneLine) []transition.Segment {
	segments := make([]transition.Segment, len(lines))
	var start transition.VzicTime
	for i, line := range lines {
		seg := transition.Segment{
			Offset: line.Offset,
			Rules:  line.Rules,
			Format: line.Format,
			Start:  start,
		}
		if line.Until.Defined {
			end := transition.FromUntil(line.Until)
			seg.End = &end
			start = end
		}
		segments[i] = seg
	}
	return segments
}

// RuleNames returns the distinct named Rule sets a zone's segments
// reference, in first-seen order.
func RuleNames(segments []transition.Segment) []string {
	var names []string
	seen := make(map[string]bool)
	for _, seg := range segments {
		if seg.Rules.Form == tzdata.ZoneRulesName && !seen[seg.Rules.Name] {
			seen[seg.Rules.Name] = true
			names = append(names, seg.Rules.Name)
		}
	}
	return names
}

// ExpandAllRules groups rules by Name and expands each group once,
// bounded by tzexpand's epoch horizon, so the result can be shared
// read-only across every zone that references it.
func ExpandAllRules(rules []tzdata.RuleLine) map[string][]tzexpand.ExpandedRule {
	byName := make(map[string][]tzdata.RuleLine)
	for _, r := range rules {
		byName[r.Name] = append(byName[r.Name], r)
	}
	out := make(map[string][]tzexpand.ExpandedRule, len(byName))
	for name, rs := range byName {
		out[name] = tzexpand.ExpandRules(tzexpand.EpochMin, tzexpand.EpochMax, rs)
	}
	return out
}
