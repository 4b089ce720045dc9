package temporal

import (
	"errors"
	"testing"
	"time"
)

func TestParseOffsets(t *testing.T) {
	tests := []struct {
		in      string
		unix    int64
		nanos   int32
		wantUTC string
	}{
		{"2018-04-20T14:15:00-07:00", 1_524_258_900, 0, "2018-04-20T21:15:00Z"},
		{"2018-04-20T14:20:00-07:00", 1_524_259_200, 0, "2018-04-20T21:20:00Z"},
		{"2018-04-20T21:15:00Z", 1_524_258_900, 0, "2018-04-20T21:15:00Z"},
		{"2018-04-21T02:45:00+05:30", 1_524_258_900, 0, "2018-04-20T21:15:00Z"},
		{"1970-01-01T00:00:00Z", 0, 0, "1970-01-01T00:00:00Z"},
		{"1969-12-31T23:59:59.5Z", -1, 500_000_000, "1969-12-31T23:59:59.5Z"},
		{"2020-02-29T12:00:00.000000001+00:00", 1_582_977_600, 1, "2020-02-29T12:00:00.000000001Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got.Unix() != tt.unix || got.Nanos() != tt.nanos {
				t.Errorf("Parse(%q) = %d.%09d, want %d.%09d", tt.in, got.Unix(), got.Nanos(), tt.unix, tt.nanos)
			}
			if s := Format(got, UTC); s != tt.wantUTC {
				t.Errorf("Format(UTC) = %q, want %q", s, tt.wantUTC)
			}
			back, err := Parse(Format(got, UTC))
			if err != nil || !back.Equal(got) {
				t.Errorf("UTC text does not round trip: %v %v", back, err)
			}
		})
	}
}

func TestSameInstantDifferentOffsets(t *testing.T) {
	a := MustParse("2018-04-20T14:15:00-07:00")
	b := MustParse("2018-04-20T23:15:00+02:00")
	if !a.Equal(b) {
		t.Errorf("%v != %v", a, b)
	}
	if Format(a, UTC) != Format(b, UTC) {
		t.Errorf("UTC renderings differ")
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"2018-04-20",
		"2018-04-20 14:15:00Z",
		"2018-04-20T14:15:00",
		"2018-04-20T14:15:00+0700",
		"2018-13-20T14:15:00Z",
		"2019-02-29T14:15:00Z",
		"2018-04-20T24:00:00Z",
		"2018-04-20T14:15:00.Z",
		"2018-04-20T14:15:00.1234567890Z",
		"2018-04-20T14:15:00+24:00",
		"2018-04-20T14:15:00Zjunk",
		"20x8-04-20T14:15:00Z",
	} {
		if _, err := Parse(in); !errors.Is(err, ErrMalformedTimestamp) {
			t.Errorf("Parse(%q) = %v, want ErrMalformedTimestamp", in, err)
		}
	}
}

func TestFormatIn(t *testing.T) {
	i := MustParse("2018-04-20T21:15:00Z")
	pdt := time.FixedZone("PDT", -7*3600)
	if got := FormatIn(i, pdt); got != "2018-04-20T14:15:00-07:00" {
		t.Errorf("got %q", got)
	}
	ist := time.FixedZone("IST", 5*3600+1800)
	if got := FormatIn(i, ist); got != "2018-04-21T02:45:00+05:30" {
		t.Errorf("got %q", got)
	}
	local := Format(i, Local)
	back, err := Parse(local)
	if err != nil || !back.Equal(i) {
		t.Errorf("Local rendering %q does not denote the same instant: %v", local, err)
	}
}

func TestInstantArithmetic(t *testing.T) {
	i := FromUnix(10, -1)
	if i.Unix() != 9 || i.Nanos() != 999_999_999 {
		t.Errorf("FromUnix normalization: %d %d", i.Unix(), i.Nanos())
	}
	if FromUnixMilli(-1500).UnixMilli() != -1500 {
		t.Errorf("UnixMilli round trip")
	}
	a := MustParse("2018-04-20T14:15:00-07:00")
	b := a.Add(5 * time.Minute)
	if !b.After(a) || !a.Before(b) || b.Sub(a) != 5*time.Minute {
		t.Errorf("ordering")
	}
	if !FromTime(a.Time()).Equal(a) {
		t.Errorf("time.Time round trip")
	}
	var u Instant
	if err := u.UnmarshalText([]byte("2018-04-20T21:20:00Z")); err != nil || !u.Equal(b) {
		t.Errorf("UnmarshalText: %v %v", u, err)
	}
}
