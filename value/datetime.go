package value

import "time"

// DateTime, Date, and Time hold a time.Time; the wire format encodes them
// as ISO-8601 text (spec §4.1), but in-memory they stay structured so
// callers never have to re-parse a string to do arithmetic on them.
type DateTime struct {
	T time.Time
}

func (DateTime) sbsValue() {}

// Date holds a calendar date (no time-of-day component on the wire).
type Date struct {
	T time.Time
}

func (Date) sbsValue() {}

// Time holds a time-of-day (no date component on the wire).
type Time struct {
	T time.Time
}

func (Time) sbsValue() {}

// TimeDelta is a duration split into days/seconds/microseconds, matching
// the source's three-int32 wire representation exactly (spec §3/§4.1).
type TimeDelta struct {
	Days    int32
	Seconds int32
	Micros  int32
}

func (TimeDelta) sbsValue() {}

// Range mirrors Python's range(start, stop, step): three Int scalars,
// each independently encoded on the wire (spec §4.1: "Nested values do
// not nest inside a length-delimited block; they are concatenated").
type Range struct {
	Start, Stop, Step Int
}

func (Range) sbsValue() {}
