package asn1

/*
timeval.go implements the GeneralizedTime and UTCTime payloads: ASCII
lexing/formatting with timezone and fractional-second semantics. DER's
additional restriction that times be UTC-only and carry at least
seconds precision is enforced in der.go, not here, since a BER decoder
must still accept the more permissive forms this type can represent.
*/

import (
	"strconv"
	"strings"
)

// DatetimeFormat records the finest time field present in a TimeValue.
type DatetimeFormat uint8

const (
	FormatHours DatetimeFormat = iota
	FormatMinutes
	FormatSeconds
	FormatFractions
)

// TimezoneFormat records how a TimeValue expresses its timezone.
type TimezoneFormat uint8

const (
	TimezoneUTC   TimezoneFormat = iota // trailing 'Z'
	TimezoneLocal                       // no suffix
	TimezoneDiff                        // trailing '+HHMM' or '-HHMM'
)

// TimeValue is the payload for KindTime. Generalized distinguishes a
// four-digit-year GeneralizedTime from a two-digit-year UTCTime.
type TimeValue struct {
	Generalized bool
	Year        int // full year; for UTCTime, already windowed into 1950-2049
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Fraction    string // digits after the decimal point, no leading '.'; "" if absent

	DatetimeFormat DatetimeFormat
	TimezoneFormat TimezoneFormat
	DiffOffsetMin  int // signed minutes east of UTC; meaningful only when TimezoneFormat == TimezoneDiff
}

func (t TimeValue) Equal(other TimeValue) bool {
	return t == other
}

// ParseGeneralizedTime parses the ASCII form
// YYYYMMDDHH[MM[SS[.fff]]][Z|+HHMM|-HHMM] into a TimeValue.
func ParseGeneralizedTime(s string) (TimeValue, error) {
	var tv TimeValue
	tv.Generalized = true

	if len(s) < 10 {
		return tv, encoderErrorf("GeneralizedTime is invalid")
	}
	year, err := atoiN(s[0:4])
	if err != nil {
		return tv, encoderErrorf("GeneralizedTime is invalid")
	}
	tv.Year = year

	rest := s[4:]
	if err := parseCommonDatetime(rest, &tv); err != nil {
		return TimeValue{}, err
	}
	return tv, nil
}

// ParseUTCTime parses the ASCII form YYMMDDHHMMSS[Z|+HHMM|-HHMM] into
// a TimeValue. Per the decode-time validation rules, a UTCTime lacking
// a timezone modifier is rejected, as is one lacking seconds.
func ParseUTCTime(s string) (TimeValue, error) {
	var tv TimeValue
	tv.Generalized = false

	if len(s) < 8 {
		return tv, encoderErrorf("UTCTime is invalid")
	}
	yy, err := atoiN(s[0:2])
	if err != nil {
		return tv, encoderErrorf("UTCTime is invalid")
	}
	// X.690: 00-49 -> 20xx, 50-99 -> 19xx.
	if yy < 50 {
		tv.Year = 2000 + yy
	} else {
		tv.Year = 1900 + yy
	}

	rest := s[2:]
	if err := parseCommonDatetime(rest, &tv); err != nil {
		return TimeValue{}, err
	}
	if tv.TimezoneFormat == TimezoneLocal {
		return TimeValue{}, encoderErrorf("UTCTime must carry a timezone modifier")
	}
	if tv.DatetimeFormat < FormatSeconds {
		return TimeValue{}, encoderErrorf("UTCTime must specify seconds")
	}
	return tv, nil
}

// parseCommonDatetime parses "MMDDHH[MM[SS[.fff]]]" followed by an
// optional timezone suffix, shared by both GeneralizedTime (which
// allows MM/SS/fraction to be absent) and UTCTime (whose decoder
// additionally requires at least seconds; that floor is enforced by
// the caller, not here, since BER's table lists both as acceptable at
// the TimeValue level).
func parseCommonDatetime(s string, tv *TimeValue) error {
	if len(s) < 6 {
		return encoderErrorf("time value is invalid")
	}
	month, err := atoiN(s[0:2])
	if err != nil || !inRange(month, 1, 12) {
		return encoderErrorf("time value has an invalid month")
	}
	day, err := atoiN(s[2:4])
	if err != nil || !inRange(day, 1, 31) {
		return encoderErrorf("time value has an invalid day")
	}
	hour, err := atoiN(s[4:6])
	if err != nil || !inRange(hour, 0, 24) {
		return encoderErrorf("time value has an invalid hour")
	}
	if hour == 24 {
		return encoderErrorf("Midnight must only be specified by 00, but got 24.")
	}

	tv.Month, tv.Day, tv.Hour = month, day, hour
	tv.DatetimeFormat = FormatHours

	rest := s[6:]

	// minutes
	if len(rest) >= 2 && isDigit(rest[0]) && isDigit(rest[1]) {
		min, err := atoiN(rest[0:2])
		if err != nil || !inRange(min, 0, 59) {
			return encoderErrorf("time value has an invalid minute")
		}
		tv.Minute = min
		tv.DatetimeFormat = FormatMinutes
		rest = rest[2:]

		// seconds
		if len(rest) >= 2 && isDigit(rest[0]) && isDigit(rest[1]) {
			sec, err := atoiN(rest[0:2])
			if err != nil || !inRange(sec, 0, 60) { // 60 tolerates a leap second on the wire
				return encoderErrorf("time value has an invalid second")
			}
			tv.Second = sec
			tv.DatetimeFormat = FormatSeconds
			rest = rest[2:]

			// fraction
			if len(rest) > 0 && (rest[0] == '.' || rest[0] == ',') {
				rest = rest[1:]
				n := 0
				for n < len(rest) && isDigit(rest[n]) {
					n++
				}
				if n == 0 {
					return encoderErrorf("time value has an empty fractional-seconds field")
				}
				tv.Fraction = rest[:n]
				tv.DatetimeFormat = FormatFractions
				rest = rest[n:]
			}
		}
	}

	return parseTimezone(rest, tv)
}

func parseTimezone(rest string, tv *TimeValue) error {
	switch {
	case rest == "":
		tv.TimezoneFormat = TimezoneLocal
		return nil
	case rest == "Z":
		tv.TimezoneFormat = TimezoneUTC
		return nil
	case len(rest) == 5 && (rest[0] == '+' || rest[0] == '-'):
		hh, err := atoiN(rest[1:3])
		if err != nil || hh > 23 {
			return encoderErrorf("time value has an invalid timezone offset")
		}
		mm, err := atoiN(rest[3:5])
		if err != nil || mm > 59 {
			return encoderErrorf("time value has an invalid timezone offset")
		}
		offset := hh*60 + mm
		if rest[0] == '-' {
			offset = -offset
		}
		tv.TimezoneFormat = TimezoneDiff
		tv.DiffOffsetMin = offset
		return nil
	default:
		return encoderErrorf("time value has trailing or malformed data: %q", rest)
	}
}

// Format renders the receiver into its wire ASCII form.
func (t TimeValue) Format() string {
	var b strings.Builder
	if t.Generalized {
		b.WriteString(pad4(t.Year))
	} else {
		b.WriteString(pad2(t.Year % 100))
	}
	b.WriteString(pad2(t.Month))
	b.WriteString(pad2(t.Day))
	b.WriteString(pad2(t.Hour))

	if t.DatetimeFormat >= FormatMinutes {
		b.WriteString(pad2(t.Minute))
	}
	if t.DatetimeFormat >= FormatSeconds {
		b.WriteString(pad2(t.Second))
	}
	if t.DatetimeFormat == FormatFractions && t.Fraction != "" {
		b.WriteByte('.')
		b.WriteString(t.Fraction)
	}

	switch t.TimezoneFormat {
	case TimezoneUTC:
		b.WriteByte('Z')
	case TimezoneDiff:
		sign := byte('+')
		off := t.DiffOffsetMin
		if off < 0 {
			sign = '-'
			off = -off
		}
		b.WriteByte(sign)
		b.WriteString(pad2(off / 60))
		b.WriteString(pad2(off % 60))
	case TimezoneLocal:
	}

	return b.String()
}

func pad2(n int) string {
	if n < 0 {
		n = 0
	}
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func pad4(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func atoiN(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, encoderErrorf("expected digits, got %q", s)
		}
	}
	return strconv.Atoi(s)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// NewGeneralizedTimeValue returns a KindTime Value for a GeneralizedTime.
func NewGeneralizedTimeValue(tv TimeValue) Value {
	tv.Generalized = true
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagGeneralizedTime)}, Kind: KindTime, Time: tv}
}

// NewUTCTimeValue returns a KindTime Value for a UTCTime.
func NewUTCTimeValue(tv TimeValue) Value {
	tv.Generalized = false
	return Value{Envelope: Envelope{Class: ClassUniversal, Number: int(TagUTCTime)}, Kind: KindTime, Time: tv}
}
