package transition

import (
	"time"

	"github.com/vzic-go/vzic/internal/daymath"
	"github.com/vzic-go/vzic/internal/unixtime"
	"github.com/vzic-go/vzic/tzdata"
)

// VzicTime is a calendar moment expressed in one of the three tzdata time
// frames (wall, standard or universal), prior to being resolved to an
// absolute instant. Rule AT times and Zone UNTIL times are both
// represented this way until the transition builder commits them to UTC.
type VzicTime struct {
	Year      int
	Month     time.Month
	Day       int
	TimeOfDay time.Duration
	Frame     tzdata.TimeForm
}

// ToUniversal converts t to the universal frame, given the standard offset
// and DST save in effect immediately before the conversion. It returns the
// converted time and the day-offset (-1, 0 or +1) carried by the
// conversion, mirroring vzic's calculate_actual_time: a wall or standard
// time near midnight can fall on the previous or next calendar day once
// expressed in universal time.
func (t VzicTime) ToUniversal(prevStdOffset, prevSave time.Duration) (VzicTime, int) {
	var adjust time.Duration
	switch t.Frame {
	case tzdata.WallClock:
		adjust = prevStdOffset + prevSave
	case tzdata.StandardTime:
		adjust = prevStdOffset
	case tzdata.UniversalTime:
		adjust = 0
	}
	sec := t.TimeOfDay - adjust
	dayOffset := 0
	switch {
	case sec < 0:
		sec += 24 * time.Hour
		dayOffset = -1
	case sec >= 24*time.Hour:
		sec -= 24 * time.Hour
		dayOffset = 1
	}
	y, m, d := fixOverflow(t.Year, t.Month, t.Day+dayOffset)
	return VzicTime{Year: y, Month: m, Day: d, TimeOfDay: sec, Frame: tzdata.UniversalTime}, dayOffset
}

// ToWall converts t, which must already be in the universal frame, to the
// wall-clock moment actually displayed on local clocks once this change
// takes effect: the universal instant plus the post-transition total UTC
// offset (standard offset plus save). Mirrors vzic's calculate_wall_time
// TIME_UNIVERSAL case (result = time + walloff), called with the new
// offset rather than the one the change supersedes.
func (t VzicTime) ToWall(totalOffset time.Duration) VzicTime {
	sec := t.TimeOfDay + totalOffset
	dayOffset := 0
	switch {
	case sec < 0:
		sec += 24 * time.Hour
		dayOffset = -1
	case sec >= 24*time.Hour:
		sec -= 24 * time.Hour
		dayOffset = 1
	}
	y, m, d := fixOverflow(t.Year, t.Month, t.Day+dayOffset)
	return VzicTime{Year: y, Month: m, Day: d, TimeOfDay: sec, Frame: tzdata.WallClock}
}

// Unix returns the Unix instant t (which must already be in the universal
// frame) represents.
func (t VzicTime) Unix() int64 {
	h := int(t.TimeOfDay / time.Hour)
	m := int((t.TimeOfDay % time.Hour) / time.Minute)
	s := int((t.TimeOfDay % time.Minute) / time.Second)
	return unixtime.FromDateTime(t.Year, int(t.Month), t.Day, h, m, s)
}

// fixOverflow normalizes a (year, month, day) triple after day has been
// adjusted by ±1, rolling across month and year boundaries as needed.
func fixOverflow(year int, month time.Month, day int) (int, time.Month, int) {
	for day < 1 {
		month--
		if month < time.January {
			month = time.December
			year--
		}
		day += daymath.DaysInMonth(year, month)
	}
	for day > daymath.DaysInMonth(year, month) {
		day -= daymath.DaysInMonth(year, month)
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return year, month, day
}

// FromUntil builds the VzicTime that a Zone/continuation line's UNTIL
// column names, with any omitted trailing fields resolved to their
// earliest possible value (matching tzexpand.Earliest's semantics).
func FromUntil(u tzdata.Until) VzicTime {
	year, month, day := u.Year, time.January, 1
	if u.Parts.Has(tzdata.UntilMonth) {
		month = u.Month
	}
	if u.Parts.Has(tzdata.UntilDay) {
		year, month, day = daymath.Resolve(u.Year, month, u.Day)
	}
	t := tzdata.Time{Form: tzdata.WallClock}
	if u.Parts.Has(tzdata.UntilTime) {
		t = u.Time
	}
	return VzicTime{Year: year, Month: month, Day: day, TimeOfDay: t.Duration, Frame: t.Form}
}

// FromRuleFiring builds the VzicTime an expanded rule's AT column names in
// the concrete year it fires in.
func FromRuleFiring(rule tzdata.RuleLine) VzicTime {
	return VzicTime{
		Year:      int(rule.From),
		Month:     rule.In,
		Day:       rule.On.Num,
		TimeOfDay: rule.At.Duration,
		Frame:     rule.At.Form,
	}
}
