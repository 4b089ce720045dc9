package temporal

import (
	"cmp"
	"time"
)

const nanosPerSec = 1_000_000_000

// Instant is a point in time with nanosecond precision. The zero Instant is
// the Unix epoch.
type Instant struct {
	sec  int64
	nsec int32
}

// FromUnix returns the Instant sec seconds and nsec nanoseconds after the
// epoch. nsec may be outside [0, 1e9).
func FromUnix(sec, nsec int64) Instant {
	sec += nsec / nanosPerSec
	nsec %= nanosPerSec
	if nsec < 0 {
		nsec += nanosPerSec
		sec--
	}
	return Instant{sec: sec, nsec: int32(nsec)}
}

func FromUnixMilli(ms int64) Instant {
	return FromUnix(ms/1000, (ms%1000)*1_000_000)
}

func FromTime(t time.Time) Instant {
	return Instant{sec: t.Unix(), nsec: int32(t.Nanosecond())}
}

// Unix returns the whole seconds since the epoch, rounded down.
func (i Instant) Unix() int64 { return i.sec }

// Nanos returns the nanoseconds within the second, in [0, 1e9).
func (i Instant) Nanos() int32 { return i.nsec }

func (i Instant) UnixNano() int64 {
	return i.sec*nanosPerSec + int64(i.nsec)
}

func (i Instant) UnixMilli() int64 {
	return i.sec*1000 + int64(i.nsec)/1_000_000
}

// Seconds returns the instant as fractional seconds since the epoch.
func (i Instant) Seconds() float64 {
	return float64(i.sec) + float64(i.nsec)/nanosPerSec
}

// Time returns i as a time.Time in UTC.
func (i Instant) Time() time.Time {
	return time.Unix(i.sec, int64(i.nsec)).UTC()
}

func (i Instant) IsZero() bool { return i.sec == 0 && i.nsec == 0 }

func (i Instant) Compare(j Instant) int {
	if c := cmp.Compare(i.sec, j.sec); c != 0 {
		return c
	}
	return cmp.Compare(i.nsec, j.nsec)
}

func (i Instant) Equal(j Instant) bool  { return i.Compare(j) == 0 }
func (i Instant) Before(j Instant) bool { return i.Compare(j) < 0 }
func (i Instant) After(j Instant) bool  { return i.Compare(j) > 0 }

// Add returns i shifted by d.
func (i Instant) Add(d time.Duration) Instant {
	return FromUnix(i.sec, int64(i.nsec)+int64(d))
}

// Sub returns the duration i-j, saturating at the duration bounds.
func (i Instant) Sub(j Instant) time.Duration {
	return i.Time().Sub(j.Time())
}

func (i Instant) String() string {
	return Format(i, UTC)
}

func (i Instant) MarshalText() ([]byte, error) {
	return []byte(Format(i, UTC)), nil
}

func (i *Instant) UnmarshalText(d []byte) error {
	p, err := Parse(string(d))
	if err != nil {
		return err
	}
	*i = p
	return nil
}
