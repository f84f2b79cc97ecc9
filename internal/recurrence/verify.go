package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// VerifyRRule is an optional internal consistency check: it parses a
// rendered RRULE value with a second, independent implementation
// (teambition/rrule-go) and confirms the occurrences it produces match
// what the collapser itself expected, up to horizon. It plays no part
// in the conversion pipeline; it exists so tests can catch a malformed
// RRULE string before it reaches a real calendar client.
func VerifyRRule(rruleText string, dtstart time.Time, want []time.Time, horizon time.Time) error {
	full := "DTSTART:" + dtstart.UTC().Format("20060102T150405Z") + "\nRRULE:" + rruleText
	set, err := rrule.StrToRRuleSet(full)
	if err != nil {
		return fmt.Errorf("parsing rendered RRULE %q: %w", rruleText, err)
	}
	got := set.Between(dtstart, horizon, true)
	if len(got) != len(want) {
		return fmt.Errorf("occurrence count mismatch for %q: got %d, want %d", rruleText, len(got), len(want))
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return fmt.Errorf("occurrence %d of %q mismatch: got %v, want %v", i, rruleText, got[i], want[i])
		}
	}
	return nil
}
