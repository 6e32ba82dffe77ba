package rowhook

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"
)

func init() {
	registerType(&typeCodec{
		Tag:     "timestamp",
		Format:  formatTimestamp,
		Dispose: func(slot *evalSlot) { slot.bytes = nil },
	})
}

// daysBeforeMonth[m] is the number of days in a non-leap year before the
// 1-indexed month m starts. The table itself ignores leap years; dayOfYear
// below adds the leap day for months after February.
var daysBeforeMonth = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

const (
	minTimestampYear = 2000
	maxTimestampYear = 4027
)

// formatTimestamp parses a strict ISO-8601 UTC instant and writes an
// 8-byte big-endian microsecond-since-2000-01-01T00:00:00Z integer into a
// freshly allocated slot buffer. Any parse or range failure logs a single
// diagnostic naming the offending string and returns false; the evaluator
// propagates this as a message-level FormatError.
func formatTimestamp(value interface{}, slot *evalSlot) bool {
	if value == nil {
		slot.null = true
		return true
	}

	s := renderText(value)
	epochUs, err := parseISO8601Micros(s)
	if err != nil {
		log.WithField("value", s).Errorf("rowhook: timestamp: %v", err)
		return false
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, epochUs)
	slot.bytes = buf
	slot.owns = true
	return true
}

// parseISO8601Micros implements a strict ISO-8601 grammar: accepted
// lengths 20 ("YYYY-MM-DDTHH:MM:SSZ") through 31
// ("YYYY-MM-DDTHH:MM:SS.ffffffZ..."), fixed punctuation positions,
// truncated (not rounded) fractional seconds, and the range checks below.
func parseISO8601Micros(s string) (uint64, error) {
	L := len(s)
	if L < 20 || L > 31 {
		return 0, fmt.Errorf("length %d out of accepted range [20,31]", L)
	}
	if s[4] != '-' || s[7] != '-' || s[10] != 'T' || s[13] != ':' || s[16] != ':' {
		return 0, fmt.Errorf("malformed punctuation")
	}
	if s[L-1] != 'Z' {
		return 0, fmt.Errorf("must end with 'Z'")
	}

	var fracDigits string
	switch s[19] {
	case 'Z':
		if L != 20 {
			return 0, fmt.Errorf("trailing characters after 'Z'")
		}
	case '.':
		if L < 22 {
			return 0, fmt.Errorf("empty fractional seconds")
		}
		fracDigits = s[20 : L-1]
	default:
		return 0, fmt.Errorf("expected '.' or 'Z' at offset 19, got %q", s[19])
	}

	year, err := digits(s, 0, 4)
	if err != nil {
		return 0, err
	}
	month, err := digits(s, 5, 7)
	if err != nil {
		return 0, err
	}
	day, err := digits(s, 8, 10)
	if err != nil {
		return 0, err
	}
	hour, err := digits(s, 11, 13)
	if err != nil {
		return 0, err
	}
	minute, err := digits(s, 14, 16)
	if err != nil {
		return 0, err
	}
	second, err := digits(s, 17, 19)
	if err != nil {
		return 0, err
	}

	if year < minTimestampYear || year > maxTimestampYear {
		return 0, fmt.Errorf("year %d out of range [%d,%d]", year, minTimestampYear, maxTimestampYear)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month %d out of range [1,12]", month)
	}
	maxDay := 31
	if month == 2 {
		maxDay = 29
	}
	if day < 1 || day > maxDay {
		return 0, fmt.Errorf("day %d out of range [1,%d]", day, maxDay)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d out of range [0,23]", hour)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute %d out of range [0,59]", minute)
	}
	if second < 0 || second > 60 {
		return 0, fmt.Errorf("second %d out of range [0,60]", second)
	}
	for _, c := range fracDigits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit %q in fractional seconds", c)
		}
	}

	micro := truncateMicros(fracDigits)

	y := year - minTimestampYear
	doy := dayOfYear(y, month, day)

	epochS := int64(second) + 60*int64(minute) + 3600*int64(hour) +
		86400*int64(doy-1) + 86400*int64(leapYears[y]) + 31_536_000*int64(y)
	epochUs := uint64(epochS)*1_000_000 + uint64(micro)
	return epochUs, nil
}

// digits parses s[from:to] as an unsigned decimal integer, rejecting any
// non-digit byte.
func digits(s string, from, to int) (int, error) {
	n := 0
	for i := from; i < to; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit %q at offset %d", c, i)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// truncateMicros truncates (never rounds) a run of fractional-second
// digits to 6 digits, padding with zeros if fewer than 6 were given.
func truncateMicros(fracDigits string) int {
	var buf [6]byte
	for i := range buf {
		if i < len(fracDigits) {
			buf[i] = fracDigits[i]
		} else {
			buf[i] = '0'
		}
	}
	n := 0
	for _, c := range buf {
		n = n*10 + int(c-'0')
	}
	return n
}

// dayOfYear returns the 1-indexed day of year for (y years after 2000,
// month, day), honoring a leap February per the proleptic Gregorian rule.
func dayOfYear(y, month, day int) int {
	before := daysBeforeMonth[month]
	if month > 2 && isLeapYear(y) {
		before++
	}
	return before + day
}
