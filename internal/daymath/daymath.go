// Package daymath implements the calendar arithmetic needed to resolve a
// tzdata day specifier (a simple day number, "lastSun", "Sun>=8" or
// "Sun<=25") against a concrete (year, month) into an actual day of month.
package daymath

import (
	"time"

	"github.com/vzic-go/vzic/tzdata"
)

// IsLeapYear reports whether year is a leap year in the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// Weekday returns the day of week for the given date, using Zeller's
// congruence adjusted so 0=Sunday.
func Weekday(year int, month time.Month, day int) time.Weekday {
	m := int(month)
	y := year
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	return time.Weekday((h + 6) % 7)
}

// lastWeekdayOfMonth returns the day-of-month of the last occurrence of wd
// in the given month and year.
func lastWeekdayOfMonth(year int, month time.Month, wd time.Weekday) int {
	last := DaysInMonth(year, month)
	lastWd := Weekday(year, month, last)
	offset := (int(lastWd) - int(wd) + 7) % 7
	return last - offset
}

// nextWeekday returns the first occurrence of wd on or after (year, month,
// day), rolling into the following month/year if necessary.
func nextWeekday(year int, month time.Month, day int, wd time.Weekday) (int, time.Month, int) {
	cur := Weekday(year, month, day)
	diff := (int(wd) - int(cur) + 7) % 7
	next := day + diff
	days := DaysInMonth(year, month)
	if next > days {
		next -= days
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return year, month, next
}

// lastWeekdayBefore returns the last occurrence of wd on or before (year,
// month, day), rolling into the preceding month/year if necessary.
func lastWeekdayBefore(year int, month time.Month, day int, wd time.Weekday) (int, time.Month, int) {
	cur := Weekday(year, month, day)
	diff := (int(cur) - int(wd) + 7) % 7
	prev := day - diff
	if prev < 1 {
		month--
		if month < time.January {
			month = time.December
			year--
		}
		prev += DaysInMonth(year, month)
	}
	return year, month, prev
}

// Resolve turns a tzdata.Day specifier, anchored at (year, month), into a
// concrete calendar date. The returned year/month may differ from the
// inputs when a DayFormAfter/DayFormBefore specifier rolls across a month
// or year boundary (e.g. "lastSun" in December rolling into no overflow,
// but "Sun>=29" in a short February rolling into March).
func Resolve(year int, month time.Month, d tzdata.Day) (resolvedYear int, resolvedMonth time.Month, day int) {
	switch d.Form {
	case tzdata.DayFormDayNum:
		return year, month, d.Num
	case tzdata.DayFormLast:
		return year, month, lastWeekdayOfMonth(year, month, d.Day)
	case tzdata.DayFormAfter:
		return nextWeekday(year, month, d.Num, d.Day)
	case tzdata.DayFormBefore:
		return lastWeekdayBefore(year, month, d.Num, d.Day)
	default:
		return year, month, d.Num
	}
}

// SortDay returns a value that orders DayFormLast specifiers after every
// simple day number in the same month, matching the tzdata convention
// that "lastSun" sorts as if it were day 31 regardless of the month's
// actual length; any other form returns its Num. ExpandRules calls it
// only with already-resolved day numbers.
func SortDay(d tzdata.Day) int {
	if d.Form == tzdata.DayFormLast {
		return 31
	}
	return d.Num
}
