package temporal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedTimestamp = errors.New("malformed timestamp")

type Zone int

const (
	UTC Zone = iota
	Local
)

func (z Zone) String() string {
	switch z {
	case UTC:
		return "UTC"
	case Local:
		return "Local"
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

func (z Zone) location() *time.Location {
	if z == Local {
		return time.Local
	}
	return time.UTC
}

func malformed(text, why string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedTimestamp, text, why)
}

// Parse parses an ISO-8601 timestamp with an explicit offset.
func Parse(text string) (Instant, error) {
	s := text
	if len(s) < len("2006-01-02T15:04:05Z") {
		return Instant{}, malformed(text, "too short")
	}
	if s[4] != '-' || s[7] != '-' || s[10] != 'T' || s[13] != ':' || s[16] != ':' {
		return Instant{}, malformed(text, "bad separator")
	}
	var f [6]int
	for k, span := range [6][2]int{{0, 4}, {5, 7}, {8, 10}, {11, 13}, {14, 16}, {17, 19}} {
		v, ok := digits(s[span[0]:span[1]])
		if !ok {
			return Instant{}, malformed(text, "expected digits")
		}
		f[k] = v
	}
	year, month, day, hour, minute, sec := f[0], f[1], f[2], f[3], f[4], f[5]
	if month < 1 || month > 12 {
		return Instant{}, malformed(text, "month out of range")
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return Instant{}, malformed(text, "day out of range")
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return Instant{}, malformed(text, "time out of range")
	}
	s = s[19:]
	nsec := 0
	if s != "" && s[0] == '.' {
		n := 1
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		frac := s[1:n]
		if frac == "" || len(frac) > 9 {
			return Instant{}, malformed(text, "bad fraction")
		}
		v, _ := digits(frac)
		nsec = v * pow10(9-len(frac))
		s = s[n:]
	}
	offset, err := parseOffset(s)
	if err != nil {
		return Instant{}, malformed(text, err.Error())
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	return FromUnix(t.Unix()-int64(offset), int64(nsec)), nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Instant {
	i, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return i
}

func parseOffset(s string) (int, error) {
	if s == "Z" {
		return 0, nil
	}
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return 0, errors.New("expected Z or ±HH:MM offset")
	}
	h, ok1 := digits(s[1:3])
	m, ok2 := digits(s[4:6])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, errors.New("offset out of range")
	}
	off := h*3600 + m*60
	if s[0] == '-' {
		off = -off
	}
	return off, nil
}

func digits(s string) (int, bool) {
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

func pow10(n int) int {
	r := 1
	for range n {
		r *= 10
	}
	return r
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Format renders i in zone. UTC renders with a Z suffix; Local renders with
// the numeric offset of the local time zone. Fractional seconds appear only
// when i has them.
func Format(i Instant, zone Zone) string {
	return FormatIn(i, zone.location())
}

// FormatIn renders i at the offset that loc has at that instant.
func FormatIn(i Instant, loc *time.Location) string {
	t := time.Unix(i.sec, int64(i.nsec)).In(loc)
	b := strings.Builder{}
	b.WriteString(t.Format("2006-01-02T15:04:05"))
	if i.nsec != 0 {
		frac := fmt.Sprintf("%09d", i.nsec)
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(frac, "0"))
	}
	_, off := t.Zone()
	if loc == time.UTC || off == 0 && loc.String() == "UTC" {
		b.WriteByte('Z')
		return b.String()
	}
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	b.WriteByte(sign)
	b.WriteString(pad2(off / 3600))
	b.WriteByte(':')
	b.WriteString(pad2(off % 3600 / 60))
	return b.String()
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
