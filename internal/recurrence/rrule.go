package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/vzic-go/vzic/internal/daymath"
	"github.com/vzic-go/vzic/internal/transition"
	"github.com/vzic-go/vzic/tzdata"
)

var weekdayCode = map[time.Weekday]string{
	time.Sunday: "SU", time.Monday: "MO", time.Tuesday: "TU", time.Wednesday: "WE",
	time.Thursday: "TH", time.Friday: "FR", time.Saturday: "SA",
}

// Render produces the RRULE value (everything after "RRULE:") for r,
// along with any warnings about lossy approximations taken along the
// way. compat selects the Outlook-compatible degradation from
// output_rrule/output_rrule_2: a handful of day numbers (1, 8, 15, 22,
// and the last 7 days of the month outside February) translate to an
// exact BYDAY=n<weekday> regardless of mode; everything else is a
// lossless BYMONTHDAY range in pure mode, or one of a further small set
// of single-day nudges (day 2, day 9, DaysInMonth-7) with a warning in
// compat mode.
func (r *RRule) Render(compat bool, refYear int) (string, []string) {
	var b strings.Builder
	var warnings []string
	fmt.Fprintf(&b, "FREQ=YEARLY;BYMONTH=%d", int(r.Month))

	switch r.Day.Form {
	case tzdata.DayFormLast:
		fmt.Fprintf(&b, ";BYDAY=-1%s", weekdayCode[r.Day.Day])
	case tzdata.DayFormAfter:
		daysInMonth := daymath.DaysInMonth(refYear, r.Month)
		warnings = append(warnings, appendWeekdayWindow(&b, r.Month, r.Day.Num, r.Day.Num, r.Day.Day, daysInMonth, compat, "Day>=")...)
	case tzdata.DayFormBefore:
		daysInMonth := daymath.DaysInMonth(refYear, r.Month)
		warnings = append(warnings, appendWeekdayWindow(&b, r.Month, r.Day.Num-6, r.Day.Num, r.Day.Day, daysInMonth, compat, "Day<=")...)
	case tzdata.DayFormDayNum:
		if compat {
			switch {
			case r.Day.Num < 8:
				warnings = append(warnings, fmt.Sprintf("outputting BYDAY=1SU instead of BYMONTHDAY=1-7 for Outlook compatibility (day %d)", r.Day.Num))
				fmt.Fprintf(&b, ";BYDAY=1SU")
			case r.Day.Num < 15:
				warnings = append(warnings, fmt.Sprintf("outputting BYDAY=2SU instead of BYMONTHDAY=8-14 for Outlook compatibility (day %d)", r.Day.Num))
				fmt.Fprintf(&b, ";BYDAY=2SU")
			case r.Day.Num < 22:
				warnings = append(warnings, fmt.Sprintf("outputting BYDAY=3SU instead of BYMONTHDAY=15-21 for Outlook compatibility (day %d)", r.Day.Num))
				fmt.Fprintf(&b, ";BYDAY=3SU")
			default:
				warnings = append(warnings, fmt.Sprintf("could not approximate fixed day %d compatibly with Outlook", r.Day.Num))
			}
		}
		// Pure mode: FREQ=YEARLY;BYMONTH=m alone — the recurring day of
		// month is already fixed by DTSTART.
	}

	if r.Until != nil {
		fmt.Fprintf(&b, ";UNTIL=%s", formatUntilUTC(*r.Until))
	}
	return b.String(), warnings
}

// appendWeekdayWindow writes the BYDAY/BYMONTHDAY clause for a
// "weekday on or after dayNumber" window (a Day<=N specifier is first
// translated by the caller into the equivalent on-or-after window
// [N-6, N]). reportNum is the original Day.Num, used only for warning
// text, since the translated Before window reports misleadingly
// otherwise.
func appendWeekdayWindow(b *strings.Builder, month time.Month, dayNumber, reportNum int, wd time.Weekday, daysInMonth int, compat bool, formLabel string) []string {
	code := weekdayCode[wd]

	if week, ok := exactWindowWeek(month, dayNumber, daysInMonth); ok {
		fmt.Fprintf(b, ";BYDAY=%d%s", week, code)
		return nil
	}

	if !compat {
		fmt.Fprintf(b, ";BYMONTHDAY=%d,%d,%d,%d,%d,%d,%d;BYDAY=%s",
			dayNumber, dayNumber+1, dayNumber+2, dayNumber+3, dayNumber+4, dayNumber+5, dayNumber+6, code)
		return nil
	}

	if week, ok := compatNudgeWeek(month, dayNumber, daysInMonth); ok {
		fmt.Fprintf(b, ";BYDAY=%d%s", week, code)
		return []string{fmt.Sprintf("approximating %s%d as week %d of month for Outlook compatibility", formLabel, reportNum, week)}
	}

	// vzic has no representable compat-mode form here and aborts;
	// fall back to the nearest week of the month rather than failing
	// the whole conversion.
	week := (dayNumber-1)/7 + 1
	fmt.Fprintf(b, ";BYDAY=%d%s", week, code)
	return []string{fmt.Sprintf("no exact Outlook-compatible RRULE for %s%d; approximating as week %d of month", formLabel, reportNum, week)}
}

// exactWindowWeek reports the BYDAY week number for the handful of
// on-or-after day numbers that translate losslessly in both pure and
// compat mode: the month's 1st, 8th, 15th and 22nd always fall exactly
// on a 7-day boundary, and (outside February) DaysInMonth-6 always
// marks the start of the last 7 days of the month.
func exactWindowWeek(month time.Month, dayNumber, daysInMonth int) (week int, ok bool) {
	switch dayNumber {
	case 1:
		return 1, true
	case 8:
		return 2, true
	case 15:
		return 3, true
	case 22:
		return 4, true
	}
	if month != time.February && dayNumber == daysInMonth-6 {
		return -1, true
	}
	return 0, false
}

// compatNudgeWeek is vzic's further, lossy compat-mode-only fallback
// for the three single-day offsets it special-cases by zone (Asia/
// Karachi, Antarctica/Palmer & America/Santiago, America/Godthab).
func compatNudgeWeek(month time.Month, dayNumber, daysInMonth int) (week int, ok bool) {
	switch dayNumber {
	case 2:
		return 1, true
	case 9:
		return 2, true
	}
	if month != time.February && dayNumber == daysInMonth-7 {
		return -1, true
	}
	return 0, false
}

// formatUntilUTC renders a VzicTime (which must already be in the
// universal frame) as an RFC 5545 UTC date-time.
func formatUntilUTC(t transition.VzicTime) string {
	h := int(t.TimeOfDay / time.Hour)
	m := int((t.TimeOfDay % time.Hour) / time.Minute)
	s := int((t.TimeOfDay % time.Minute) / time.Second)
	return fmt.Sprintf("%04d%02d%02dT%02d%02d%02dZ", t.Year, int(t.Month), t.Day, h, m, s)
}
