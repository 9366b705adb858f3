package format

import "time"

var monthByAbbrev = map[uint32]time.Month{
	str3('J', 'a', 'n'): time.January,
	str3('F', 'e', 'b'): time.February,
	str3('M', 'a', 'r'): time.March,
	str3('A', 'p', 'r'): time.April,
	str3('M', 'a', 'y'): time.May,
	str3('J', 'u', 'n'): time.June,
	str3('J', 'u', 'l'): time.July,
	str3('A', 'u', 'g'): time.August,
	str3('S', 'e', 'p'): time.September,
	str3('O', 'c', 't'): time.October,
	str3('N', 'o', 'v'): time.November,
	str3('D', 'e', 'c'): time.December,
}

func str3(a, b, c byte) uint32 {
	return uint32(a)<<16 | uint32(b)<<8 | uint32(c)
}

// ParseApacheTimestamp parses the bracketed Apache/Nginx combined
// timestamp text, e.g. "10/Dec/2024:10:00:00 +0000". A bounds-check hint
// ("touch" the last byte up front) lets the compiler elide per-byte
// bounds checks in the digit-extraction loop below.
func ParseApacheTimestamp(b []byte) (time.Time, bool) {
	if len(b) < 26 {
		return time.Time{}, false
	}
	_ = b[25]

	if !isDigit(b[0]) || !isDigit(b[1]) || b[2] != '/' || b[6] != '/' || b[11] != ':' ||
		b[14] != ':' || b[17] != ':' || b[20] != ' ' {
		return time.Time{}, false
	}
	day := 10*int(b[0]&0x0F) + int(b[1]&0x0F)
	month, ok := monthByAbbrev[str3(b[3], b[4], b[5])]
	if !ok {
		return time.Time{}, false
	}
	year, ok := digits4(b[7], b[8], b[9], b[10])
	if !ok {
		return time.Time{}, false
	}
	hour, ok1 := digits2(b[12], b[13])
	minute, ok2 := digits2(b[15], b[16])
	second, ok3 := digits2(b[18], b[19])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, false
	}

	sign := 1
	switch b[21] {
	case '+':
	case '-':
		sign = -1
	default:
		return time.Time{}, false
	}
	tzH, ok4 := digits2(b[22], b[23])
	tzM, ok5 := digits2(b[24], b[25])
	if !ok4 || !ok5 {
		return time.Time{}, false
	}
	offsetSeconds := sign * (tzH*3600 + tzM*60)
	loc := time.FixedZone("", offsetSeconds)
	return time.Date(year, month, day, hour, minute, second, 0, loc), true
}

// ParseSyslogTimestamp parses the 15-byte RFC3164 timestamp prefix,
// e.g. "Dec 10 10:00:00". No year is encoded in the wire format; the
// returned time.Time uses year 0, which is sufficient for ordering
// against other syslog timestamps parsed the same way.
func ParseSyslogTimestamp(b []byte) (time.Time, bool) {
	if len(b) < 15 {
		return time.Time{}, false
	}
	month, ok := monthByAbbrev[str3(b[0], b[1], b[2])]
	if !ok || b[3] != ' ' {
		return time.Time{}, false
	}
	dayTens := b[4]
	if dayTens != ' ' && !isDigit(dayTens) {
		return time.Time{}, false
	}
	day := int(b[5] & 0x0F)
	if isDigit(dayTens) {
		day += 10 * int(dayTens&0x0F)
	}
	if b[6] != ' ' || b[9] != ':' || b[12] != ':' {
		return time.Time{}, false
	}
	hour, ok1 := digits2(b[7], b[8])
	minute, ok2 := digits2(b[10], b[11])
	second, ok3 := digits2(b[13], b[14])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, false
	}
	return time.Date(0, month, day, hour, minute, second, 0, time.UTC), true
}

// ParseISO8601 parses the fixed set of ISO 8601 variants JSON-lines
// timestamp fields commonly use.
func ParseISO8601(s string) (time.Time, bool) {
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func digits2(a, b byte) (int, bool) {
	if !isDigit(a) || !isDigit(b) {
		return 0, false
	}
	return 10*int(a&0x0F) + int(b&0x0F), true
}

func digits4(a, b, c, d byte) (int, bool) {
	if !isDigit(a) || !isDigit(b) || !isDigit(c) || !isDigit(d) {
		return 0, false
	}
	return 1000*int(a&0x0F) + 100*int(b&0x0F) + 10*int(c&0x0F) + int(d&0x0F), true
}
