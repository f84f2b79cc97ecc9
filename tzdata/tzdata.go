// Package tzdata provides a line-oriented parser for IANA (Olson) time zone
// database source files such as "europe", "northamerica" and "asia".
//
// The grammar is described informally in the tzdata(5) man page; this
// package implements the subset used by this module: Zone, Rule and Link
// records, their continuation-line semantics, the calendar-aware day
// specifier grammar (lastSun, Sun>=8, ...) and the tri-typed time grammar
// (wall / standard / universal). Leap lines are recognized but otherwise
// ignored, since this module does not model leap seconds.
package tzdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// File is the result of parsing one Olson source file. Zone, Rule and Link
// records appear in the order they were read.
type File struct {
	ZoneLines []ZoneLine
	RuleLines []RuleLine
	LinkLines []LinkLine
}

// parseError is a fatal error tied to a specific source line.
type parseError struct {
	lineNumber int
	line       string
	err        error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.lineNumber, e.line, e.err)
}

func (e *parseError) Unwrap() error { return e.err }

func wrapLine(lineNumber int, line string, kind string, err error) error {
	return &parseError{lineNumber, line, fmt.Errorf("parse %s: %w", kind, err)}
}

// Parse reads r line by line and returns the Zone/Rule/Link records found.
// Parsing stops at the first malformed line; the returned error names the
// source line number and its content.
func Parse(r io.Reader) (File, error) {
	var result File

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1<<20)

	var (
		lineNumber           int
		continuationExpected bool
	)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields, err := splitLine(line)
		if err != nil {
			return result, wrapLine(lineNumber, line, "line", err)
		}
		if fields == nil {
			continue // blank or comment-only line
		}

		keyword := fields[0]
		switch {
		case continuationExpected && keyword != "Zone" && keyword != "Rule" && keyword != "Link" && keyword != "Leap":
			zone, err := parseZoneContinuationLine(fields)
			if err != nil {
				return result, wrapLine(lineNumber, line, "zone continuation", err)
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			continuationExpected = zone.Until.Defined
		case keyword == "Zone":
			zone, err := parseZoneLine(fields)
			if err != nil {
				return result, wrapLine(lineNumber, line, "zone", err)
			}
			result.ZoneLines = append(result.ZoneLines, zone)
			continuationExpected = zone.Until.Defined
		case keyword == "Rule":
			rule, err := parseRuleLine(fields)
			if err != nil {
				return result, wrapLine(lineNumber, line, "rule", err)
			}
			result.RuleLines = append(result.RuleLines, rule)
		case keyword == "Link":
			link, err := parseLinkLine(fields)
			if err != nil {
				return result, wrapLine(lineNumber, line, "link", err)
			}
			result.LinkLines = append(result.LinkLines, link)
		case keyword == "Leap":
			// Leap seconds are out of scope for this module; the line is
			// recognized and dropped without further parsing.
		default:
			return result, wrapLine(lineNumber, line, "line", fmt.Errorf("unexpected keyword %q", keyword))
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}
	return result, nil
}

// splitLine tokenizes one source line into whitespace-separated fields.
// A '#' outside a double-quoted span begins a comment that runs to the end
// of the line. Double-quoted spans may contain spaces and '#'; the quotes
// themselves are stripped and the quoted text is merged into the
// surrounding field. An unterminated quote is a fatal error.
// splitLine returns (nil, nil) for a blank or comment-only line.
func splitLine(line string) ([]string, error) {
	var (
		fields  []string
		cur     strings.Builder
		inField bool
		inQuote bool
	)
	flush := func() {
		if inField {
			fields = append(fields, cur.String())
			cur.Reset()
			inField = false
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
				continue
			}
			cur.WriteByte(c)
		case c == '"':
			inQuote = true
			inField = true
		case c == '#':
			flush()
			return fields, nil
		case c == ' ' || c == '\t' || c == '\f' || c == '\v' || c == '\r':
			flush()
		default:
			inField = true
			cur.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	flush()
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

// Year is a year in the proleptic Gregorian calendar, or one of the
// MinYear/MaxYear sentinels for the indefinite past/future.
type Year int

const (
	MinYear Year = math.MinInt32
	MaxYear Year = math.MaxInt32
)

func (y Year) String() string {
	switch y {
	case MinYear:
		return "minimum"
	case MaxYear:
		return "maximum"
	default:
		return strconv.Itoa(int(y))
	}
}

// TimeForm names the frame in which a Time value is expressed, or, for a
// SAVE field, whether it contributes daylight or standard time.
type TimeForm int

const (
	WallClock TimeForm = iota
	StandardTime
	DaylightSavingTime
	UniversalTime
)

func (f TimeForm) String() string {
	switch f {
	case WallClock:
		return "wall"
	case StandardTime:
		return "standard"
	case DaylightSavingTime:
		return "daylight"
	case UniversalTime:
		return "universal"
	default:
		return "invalid"
	}
}

// Time is a signed offset from midnight (or, for a SAVE field, the DST
// adjustment itself) together with the frame it is expressed in.
type Time struct {
	Duration time.Duration
	Form     TimeForm
}

// NewWallClock returns a Time in the wall-clock frame.
func NewWallClock(d time.Duration) Time { return Time{Duration: d, Form: WallClock} }

// NewStandardTime returns a Time in the standard-time frame, or a SAVE
// value of zero (no daylight adjustment).
func NewStandardTime(d time.Duration) Time { return Time{Duration: d, Form: StandardTime} }

// NewDaylightSavingTime returns a SAVE value contributing d of daylight
// adjustment.
func NewDaylightSavingTime(d time.Duration) Time { return Time{Duration: d, Form: DaylightSavingTime} }

// NewUniversalTime returns a Time in the universal-time frame.
func NewUniversalTime(d time.Duration) Time { return Time{Duration: d, Form: UniversalTime} }

// DayForm names the shape of a day specifier.
type DayForm int

const (
	DayFormDayNum DayForm = iota
	DayFormLast
	DayFormAfter
	DayFormBefore
)

func (f DayForm) String() string {
	switch f {
	case DayFormDayNum:
		return "dayNum"
	case DayFormLast:
		return "last"
	case DayFormAfter:
		return "after"
	case DayFormBefore:
		return "before"
	default:
		return "invalid"
	}
}

// Day is a day-of-month specifier, in one of the forms named by Form. Day
// names a weekday for DayFormLast/DayFormAfter/DayFormBefore; Num names a
// day-of-month for DayFormDayNum, or the pivot day for
// DayFormAfter/DayFormBefore.
type Day struct {
	Form DayForm
	Day  time.Weekday
	Num  int
}

// NewDayNum returns a Day naming the n-th day of the month.
func NewDayNum(n int) Day { return Day{Form: DayFormDayNum, Num: n} }

// NewDayLast returns a Day naming the last occurrence of wd in the month.
func NewDayLast(wd time.Weekday) Day { return Day{Form: DayFormLast, Day: wd} }

// NewDayAfter returns a Day naming the first wd on or after day n.
func NewDayAfter(n int, wd time.Weekday) Day { return Day{Form: DayFormAfter, Day: wd, Num: n} }

// NewDayBefore returns a Day naming the last wd on or before day n.
func NewDayBefore(n int, wd time.Weekday) Day { return Day{Form: DayFormBefore, Day: wd, Num: n} }

// RuleLine is one "Rule" record. The deprecated TYPE column is not
// represented; a non-"-" TYPE is rejected at parse time.
type RuleLine struct {
	Name   string
	From   Year
	To     Year
	In     time.Month
	On     Day
	At     Time
	Save   Time
	Letter string // "" means no variable part (source field was "-")
}

// ZoneRulesForm names the shape of a zone line's RULES column.
type ZoneRulesForm int

const (
	// ZoneRulesStandard means standard time always applies ("-").
	ZoneRulesStandard ZoneRulesForm = iota
	// ZoneRulesName means the column names a Rule set.
	ZoneRulesName
	// ZoneRulesFixedSave means the column is a fixed save amount.
	ZoneRulesFixedSave
)

// ZoneRules is the RULES column of a Zone/continuation line.
type ZoneRules struct {
	Form ZoneRulesForm
	Name string // set if Form == ZoneRulesName
	Save Time   // set if Form == ZoneRulesFixedSave
}

// UntilParts records how deep an Until value's precision reaches: the
// zero value means only the year is meaningful, up to UntilTime meaning
// year/month/day/time are all meaningful.
type UntilParts uint8

const (
	UntilYear UntilParts = iota
	UntilMonth
	UntilDay
	UntilTime
)

// Has reports whether u's precision reaches at least parts deep.
func (p UntilParts) Has(parts UntilParts) bool { return p >= parts }

// Until is the UNTIL column of a Zone/continuation line.
type Until struct {
	Defined bool
	Parts   UntilParts
	Year    int
	Month   time.Month
	Day     Day
	Time    Time
}

// ZoneLine is a "Zone" record or one of its continuation lines.
// Continuation lines have Continuation set and an empty Name.
type ZoneLine struct {
	Continuation bool
	Name         string
	Offset       time.Duration // added to UT to get standard time
	Rules        ZoneRules
	Format       string
	Until        Until
}

// LinkLine is a "Link" record: To resolves to the VTIMEZONE of From.
type LinkLine struct {
	From string
	To   string
}

func parseZoneLine(fields []string) (ZoneLine, error) {
	if len(fields) < 5 || len(fields) > 9 {
		return ZoneLine{}, fmt.Errorf("expected 5-9 fields, got %d", len(fields))
	}
	var (
		z    ZoneLine
		errs error
		err  error
	)
	if z.Name, err = parseZoneName(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("NAME %q: %w", fields[1], err))
	}
	if z.Offset, err = parseOffset(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("STDOFF %q: %w", fields[2], err))
	}
	if z.Rules, err = parseZoneRules(fields[3]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("RULES %q: %w", fields[3], err))
	}
	if z.Format, err = parseZoneFormat(fields[4]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FORMAT %q: %w", fields[4], err))
	}
	if len(fields) > 5 {
		if z.Until, err = parseUntil(fields[5:]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("UNTIL %q: %w", strings.Join(fields[5:], " "), err))
		}
	}
	return z, errs
}

func parseZoneContinuationLine(fields []string) (ZoneLine, error) {
	if len(fields) < 3 || len(fields) > 7 {
		return ZoneLine{}, fmt.Errorf("expected 3-7 fields, got %d", len(fields))
	}
	var (
		z    ZoneLine
		errs error
		err  error
	)
	z.Continuation = true
	if z.Offset, err = parseOffset(fields[0]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("STDOFF %q: %w", fields[0], err))
	}
	if z.Rules, err = parseZoneRules(fields[1]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("RULES %q: %w", fields[1], err))
	}
	if z.Format, err = parseZoneFormat(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FORMAT %q: %w", fields[2], err))
	}
	if len(fields) > 3 {
		if z.Until, err = parseUntil(fields[3:]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("UNTIL %q: %w", strings.Join(fields[3:], " "), err))
		}
	}
	return z, errs
}

// zoneNameOK reports whether s matches "Region", "Region/City" or
// "Region/Sub/City", made of letters, digits, underscore, plus and minus.
func zoneNameOK(s string) bool {
	if s == "" {
		return false
	}
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			ok := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
				(r >= '0' && r <= '9') || r == '_' || r == '+' || r == '-'
			if !ok {
				return false
			}
		}
	}
	return true
}

func parseZoneName(s string) (string, error) {
	if !zoneNameOK(s) {
		return "", fmt.Errorf("invalid zone name")
	}
	return s, nil
}

func parseZoneFormat(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty format")
	}
	return unquote(s), nil
}

func parseZoneRules(s string) (ZoneRules, error) {
	if s == "-" {
		return ZoneRules{Form: ZoneRulesStandard}, nil
	}
	if t, err := parseSaveTime(s); err == nil {
		return ZoneRules{Form: ZoneRulesFixedSave, Save: t}, nil
	}
	// Neither "-" nor a parseable time: treat as a rule set name. Its
	// existence among the parsed Rule lines is not checked; a name with no
	// Rule lines yields no rule firings.
	return ZoneRules{Form: ZoneRulesName, Name: s}, nil
}

func parseUntil(fields []string) (Until, error) {
	if len(fields) > 4 {
		return Until{}, fmt.Errorf("too many fields: %d", len(fields))
	}
	var u Until
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return u, fmt.Errorf("year: %w", err)
	}
	u.Year = year
	u.Parts = UntilYear

	if len(fields) > 1 {
		m, err := parseMonth(fields[1])
		if err != nil {
			return u, fmt.Errorf("month: %w", err)
		}
		u.Month = m
		u.Parts = UntilMonth
	}
	if len(fields) > 2 {
		d, err := parseDay(fields[2])
		if err != nil {
			return u, fmt.Errorf("day: %w", err)
		}
		u.Day = d
		u.Parts = UntilDay
	}
	if len(fields) > 3 {
		t, err := parseAtTime(fields[3])
		if err != nil {
			return u, fmt.Errorf("time: %w", err)
		}
		u.Time = t
		u.Parts = UntilTime
	}
	u.Defined = true
	return u, nil
}

func parseRuleLine(fields []string) (RuleLine, error) {
	if len(fields) != 10 {
		return RuleLine{}, fmt.Errorf("expected 10 fields, got %d", len(fields))
	}
	var (
		r    RuleLine
		errs error
		err  error
	)
	r.Name = unquote(fields[1])
	if r.From, err = parseFromYear(fields[2]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("FROM %q: %w", fields[2], err))
	}
	if r.To, err = parseToYear(fields[3], r.From); err != nil {
		errs = errors.Join(errs, fmt.Errorf("TO %q: %w", fields[3], err))
	}
	// fields[4] is the deprecated TYPE column; only "-" is accepted.
	if fields[4] != "-" {
		errs = errors.Join(errs, fmt.Errorf("TYPE %q: unsupported", fields[4]))
	}
	if r.In, err = parseMonth(fields[5]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("IN %q: %w", fields[5], err))
	}
	if r.On, err = parseDay(fields[6]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("ON %q: %w", fields[6], err))
	}
	if r.At, err = parseAtTime(fields[7]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("AT %q: %w", fields[7], err))
	}
	if r.Save, err = parseSaveTime(fields[8]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("SAVE %q: %w", fields[8], err))
	}
	if r.Letter, err = parseLetter(fields[9]); err != nil {
		errs = errors.Join(errs, fmt.Errorf("LETTER/S %q: %w", fields[9], err))
	}
	return r, errs
}

func parseLinkLine(fields []string) (LinkLine, error) {
	if len(fields) != 3 {
		return LinkLine{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	return LinkLine{From: fields[1], To: fields[2]}, nil
}

func parseFromYear(s string) (Year, error) {
	l := strings.ToLower(s)
	if isAbbrev(l, "minimum") {
		return MinYear, nil
	}
	if isAbbrev(l, "maximum") {
		return MaxYear, nil
	}
	return parseBoundedYear(s)
}

func parseToYear(s string, from Year) (Year, error) {
	l := strings.ToLower(s)
	if isAbbrev(l, "minimum") {
		return MinYear, nil
	}
	if isAbbrev(l, "maximum") {
		return MaxYear, nil
	}
	if isAbbrev(l, "only") {
		return from, nil
	}
	return parseBoundedYear(s)
}

func parseBoundedYear(s string) (Year, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1000 || n > 2038 {
		return 0, fmt.Errorf("year %d out of range [1000, 2038]", n)
	}
	return Year(n), nil
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

func parseMonth(s string) (time.Month, error) {
	l := strings.ToLower(s)
	for i, name := range monthNames {
		if isAbbrev(l, name) {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func parseWeekday(s string) (time.Weekday, error) {
	l := strings.ToLower(s)
	for i, name := range weekdayNames {
		if isAbbrev(l, name) {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func parseDay(s string) (Day, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 31 {
			return Day{}, fmt.Errorf("day %d out of range [1, 31]", n)
		}
		return NewDayNum(n), nil
	}
	if strings.HasPrefix(strings.ToLower(s), "last") {
		wd, err := parseWeekday(s[len("last"):])
		if err != nil {
			return Day{}, err
		}
		return NewDayLast(wd), nil
	}
	if idx := strings.Index(s, ">="); idx != -1 {
		wd, err := parseWeekday(s[:idx])
		if err != nil {
			return Day{}, fmt.Errorf("weekday %q: %w", s[:idx], err)
		}
		n, err := strconv.Atoi(s[idx+2:])
		if err != nil {
			return Day{}, fmt.Errorf("day number %q: %w", s[idx+2:], err)
		}
		return NewDayAfter(n, wd), nil
	}
	if idx := strings.Index(s, "<="); idx != -1 {
		wd, err := parseWeekday(s[:idx])
		if err != nil {
			return Day{}, fmt.Errorf("weekday %q: %w", s[:idx], err)
		}
		n, err := strconv.Atoi(s[idx+2:])
		if err != nil {
			return Day{}, fmt.Errorf("day number %q: %w", s[idx+2:], err)
		}
		return NewDayBefore(n, wd), nil
	}
	return Day{}, fmt.Errorf("invalid day specifier %q", s)
}

// parseAtTime parses an AT or UNTIL time field: w (wall, default), s
// (standard), or u/g/z (universal).
func parseAtTime(s string) (Time, error) {
	body, suffix, err := splitTimeSuffix(s, "wsugz")
	if err != nil {
		return Time{}, err
	}
	d, err := parseClockDuration(body)
	if err != nil {
		return Time{}, err
	}
	var form TimeForm
	switch suffix {
	case "s":
		form = StandardTime
	case "u", "g", "z":
		form = UniversalTime
	default:
		form = WallClock
	}
	return Time{Duration: d, Form: form}, nil
}

// parseSaveTime parses a SAVE field: the magnitude determines whether it
// contributes daylight (nonzero) or standard (zero) time; an explicit s/d
// suffix overrides that default.
func parseSaveTime(s string) (Time, error) {
	body, suffix, err := splitTimeSuffix(s, "sd")
	if err != nil {
		return Time{}, err
	}
	d, err := parseClockDuration(body)
	if err != nil {
		return Time{}, err
	}
	form := StandardTime
	if d != 0 {
		form = DaylightSavingTime
	}
	switch suffix {
	case "s":
		form = StandardTime
	case "d":
		form = DaylightSavingTime
	}
	return Time{Duration: d, Form: form}, nil
}

// parseOffset parses a STDOFF field: no suffix letters allowed.
func parseOffset(s string) (time.Duration, error) {
	return parseClockDuration(s)
}

func splitTimeSuffix(s string, suffixes string) (body string, suffix string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("empty time")
	}
	last := s[len(s)-1]
	if (last < '0' || last > '9') && strings.IndexByte(suffixes, last) != -1 {
		return s[:len(s)-1], string(last), nil
	}
	return s, "", nil
}

// parseClockDuration parses a signed decimal hours[:minutes[:seconds[.frac]]]
// field into a duration. "24:00:00" clamps to 23:59:59; all other values
// must satisfy 0<=h<=24, 0<=m,s<=59. Fractional seconds (e.g. the
// 0:19:32.13 Amsterdam LMT offset) are preserved at sub-second precision
// rather than rounded away. Nothing downstream rounds stdoff or save to
// whole minutes; compatibility-mode output drops an offset's seconds when
// it formats it.
func parseClockDuration(s string) (time.Duration, error) {
	if s == "-" || s == "" {
		return 0, nil
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.SplitN(s, ":", 3)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("hours: %w", err)
	}
	if h < 0 || h > 24 {
		return 0, fmt.Errorf("hours %d out of range [0, 24]", h)
	}
	var m int
	secDur := time.Duration(0)
	if len(parts) > 1 {
		m, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("minutes: %w", err)
		}
		if m < 0 || m > 59 {
			return 0, fmt.Errorf("minutes %d out of range [0, 59]", m)
		}
	}
	if len(parts) > 2 {
		secDur, err = parseSecondsField(parts[2])
		if err != nil {
			return 0, err
		}
	}
	total := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + secDur
	if total == 24*time.Hour {
		total = 24*time.Hour - time.Second
	} else if total > 24*time.Hour {
		return 0, fmt.Errorf("time %s out of range", s)
	}
	if neg {
		total = -total
	}
	return total, nil
}

// parseSecondsField parses the "seconds[.fraction]" tail of a clock field
// into a sub-second-precise duration; the integer part must satisfy
// 0<=s<=59. Fractional digits beyond nanosecond precision are rounded,
// ties toward even.
func parseSecondsField(s string) (time.Duration, error) {
	whole, _, hasFrac := strings.Cut(s, ".")
	sec, err := strconv.Atoi(whole)
	if err != nil {
		return 0, fmt.Errorf("seconds: %w", err)
	}
	if sec < 0 || sec > 59 {
		return 0, fmt.Errorf("seconds %d out of range [0, 59]", sec)
	}
	if !hasFrac {
		return time.Duration(sec) * time.Second, nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("fractional seconds: %w", err)
	}
	nanos := new(apd.Decimal)
	ctx := apd.BaseContext.WithPrecision(30)
	billion := apd.New(1, 9)
	if _, err := ctx.Mul(nanos, d, billion); err != nil {
		return 0, fmt.Errorf("fractional seconds: %w", err)
	}
	rounded := new(apd.Decimal)
	ctx.Rounding = apd.RoundHalfEven
	if _, err := ctx.RoundToIntegralValue(rounded, nanos); err != nil {
		return 0, fmt.Errorf("rounding fractional seconds: %w", err)
	}
	n, err := rounded.Int64()
	if err != nil {
		return 0, fmt.Errorf("fractional seconds: %w", err)
	}
	return time.Duration(n), nil
}

func parseLetter(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty letter")
	}
	s = unquote(s)
	if s == "-" {
		return "", nil
	}
	return s, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// isAbbrev reports whether s is a non-empty prefix of long. Both arguments
// must already be lower-cased by the caller.
func isAbbrev(s string, long string) bool {
	return s != "" && strings.HasPrefix(long, s)
}
