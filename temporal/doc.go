// Package temporal converts between ISO-8601 timestamps and Instants, points
// in time counted from the Unix epoch.
//
// The accepted text profile is
//
//	YYYY-MM-DDTHH:MM:SS[.fraction](Z|±HH:MM)
//
// The offset is folded into the instant, so two timestamps naming the same
// physical moment with different offsets parse to equal Instants and format
// identically in UTC:
//
//	a, _ := temporal.Parse("2018-04-20T14:15:00-07:00")
//	b, _ := temporal.Parse("2018-04-20T21:15:00Z")
//	a.Equal(b)                      // true
//	temporal.Format(a, temporal.UTC) // "2018-04-20T21:15:00Z"
package temporal
