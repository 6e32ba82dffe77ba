package rowhook

// leapYearsTableSize covers years [2000, 2000+leapYearsTableSize), which
// comfortably spans the accepted timestamp range of [2000, 4027] (see
// codec_timestamp.go).
const leapYearsTableSize = 2048

// leapYears[y] holds the cumulative count of leap days in the y years
// since 2000 (i.e. in [2000, 2000+y)). It is computed once at package
// initialization and never mutated afterwards, so every needle across
// every goroutine can read it lock-free.
var leapYears [leapYearsTableSize]int32

func init() {
	var count int32
	for y := 0; y < leapYearsTableSize; y++ {
		leapYears[y] = count
		if isLeapYear(y) {
			count++
		}
	}
}

// isLeapYear reports whether y years after 2000 is a leap year, per the
// proleptic Gregorian rule.
func isLeapYear(y int) bool {
	year := 2000 + y
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
