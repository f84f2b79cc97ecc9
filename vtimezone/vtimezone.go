// Package vtimezone serializes a zone's collapsed recurrence components
// into an RFC 5545 VTIMEZONE text block, matching spec §4.6. Output is
// hand-rolled bufio/fmt text formatting, not a generic iCalendar builder
// library — the exact line order, offset formatting, and compatibility
// rewrites this format needs are simpler to control directly, the same
// way the teacher's tzif package hand-rolls its binary encoding.
package vtimezone

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vzic-go/vzic/internal/recurrence"
	"github.com/vzic-go/vzic/internal/transition"
	"github.com/vzic-go/vzic/tzdata"
)

// MaxTimeTYear bounds legitimate finite years; vzic's MAX_TIME_T_YEAR.
const MaxTimeTYear = 2037

// minYearDisplay is the historical rendering of tzdata.MinYear in a
// DTSTART, chosen for maximum consumer compatibility rather than any
// particular calendar meaning.
const minYearDisplay = 1601

// Options configures a single zone's emission.
type Options struct {
	TZIDPrefix string // may contain %D (today's YYYYMMDD) and %% (literal %)
	URLPrefix  string // if non-empty, a TZURL line is written
	PureOutput bool   // selects pure RFC 5545 forms over Outlook-compatible ones
	Today      time.Time
}

// expandTZIDPrefix resolves %D and %% in prefix.
func expandTZIDPrefix(prefix string, today time.Time) string {
	var b strings.Builder
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '%' && i+1 < len(prefix) {
			switch prefix[i+1] {
			case 'D':
				b.WriteString(today.Format("20060102"))
				i++
				continue
			case '%':
				b.WriteByte('%')
				i++
				continue
			}
		}
		b.WriteByte(prefix[i])
	}
	return b.String()
}

// WriteZone writes name's VTIMEZONE block to w, built from components
// (as produced by recurrence.Collapse) in their given order.
func WriteZone(w io.Writer, name string, components []recurrence.Component, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "BEGIN:VTIMEZONE")
	fmt.Fprintf(bw, "TZID:%s%s\n", expandTZIDPrefix(opts.TZIDPrefix, opts.Today), name)
	if opts.URLPrefix != "" {
		fmt.Fprintf(bw, "TZURL:%s/%s\n", opts.URLPrefix, name)
	}
	fmt.Fprintf(bw, "X-LIC-LOCATION:%s\n", name)

	for _, c := range components {
		if err := writeComponent(bw, c, opts); err != nil {
			return err
		}
	}

	fmt.Fprintln(bw, "END:VTIMEZONE")
	return bw.Flush()
}

func writeComponent(bw *bufio.Writer, c recurrence.Component, opts Options) error {
	kind := "STANDARD"
	if c.IsDST {
		kind = "DAYLIGHT"
	}
	fmt.Fprintf(bw, "BEGIN:%s\n", kind)
	fmt.Fprintf(bw, "TZOFFSETFROM:%s\n", formatOffset(c.TZOffsetFrom, opts.PureOutput))
	fmt.Fprintf(bw, "TZOFFSETTO:%s\n", formatOffset(c.TZOffsetTo, opts.PureOutput))
	if c.TZName != "" {
		fmt.Fprintf(bw, "TZNAME:%s\n", c.TZName)
	}
	fmt.Fprintf(bw, "DTSTART:%s\n", formatDTStart(c.DTStart))

	switch {
	case c.RRule != nil:
		refYear := c.DTStart.Year
		if c.RRule.Until != nil {
			refYear = c.RRule.Until.Year
		}
		text, _ := c.RRule.Render(!opts.PureOutput, refYear)
		fmt.Fprintf(bw, "RRULE:%s\n", text)
	case len(c.RDates) > 0:
		for _, rd := range c.RDates {
			fmt.Fprintf(bw, "RDATE:%s\n", formatDTStart(rd))
		}
	}

	fmt.Fprintf(bw, "END:%s\n", kind)
	return nil
}

// formatOffset renders a UTC offset as ±HHMM, or ±HHMMSS in pure mode
// when the offset carries non-zero seconds (historical LMT-derived
// offsets like 0:29:45 do).
func formatOffset(d time.Duration, pure bool) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	if pure && s != 0 {
		return fmt.Sprintf("%s%02d%02d%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d%02d", sign, h, m)
}

// formatDTStart renders a VzicTime as local wall time with no trailing
// Z, per spec §4.6; tzdata.MinYear is rendered as the historical 1601
// sentinel year instead of its enormous literal int32 value.
func formatDTStart(t transition.VzicTime) string {
	year := t.Year
	if year == int(tzdata.MinYear) {
		year = minYearDisplay
	}
	h := int(t.TimeOfDay / time.Hour)
	m := int((t.TimeOfDay % time.Hour) / time.Minute)
	s := int((t.TimeOfDay % time.Minute) / time.Second)
	return fmt.Sprintf("%04d%02d%02dT%02d%02d%02d", year, int(t.Month), t.Day, h, m, s)
}
