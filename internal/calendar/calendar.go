// Package calendar implements the month-grid date model for the tracking
// view: a cursor over (visible month, selected day) plus pure helpers for
// month layout and date keys. It performs no I/O.
package calendar

import "time"

// Info describes one calendar month. StartWeekday is Monday-based:
// 1 for Monday through 7 for Sunday.
type Info struct {
	Year         int
	Month        time.Month
	StartWeekday int
	DaysInMonth  int
}

// Cursor tracks the visible month and the selected day. CurrentMonth is
// always normalized to the first of a month. CurrentMonth does not have to
// contain SelectedDate; navigating months leaves the selection alone.
type Cursor struct {
	CurrentMonth time.Time
	SelectedDate time.Time
}

// New returns a cursor anchored at now: the visible month is now's month
// and now itself is selected.
func New(now time.Time) *Cursor {
	return &Cursor{
		CurrentMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		SelectedDate: now,
	}
}

// MonthInfo computes the layout of the month containing date.
func MonthInfo(date time.Time) Info {
	year, month := date.Year(), date.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, date.Location())
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, date.Location())

	start := int(first.Weekday())
	if start == 0 {
		start = 7
	}
	return Info{Year: year, Month: month, StartWeekday: start, DaysInMonth: last.Day()}
}

// Grid returns the cells of the visible month's calendar: StartWeekday-1
// zero Times as leading placeholders so the first day lands in its Monday-
// based column, then one Time per day in ascending order. The tail is not
// padded to a full week.
func (c *Cursor) Grid() []time.Time {
	info := MonthInfo(c.CurrentMonth)
	cells := make([]time.Time, 0, info.StartWeekday-1+info.DaysInMonth)
	for i := 1; i < info.StartWeekday; i++ {
		cells = append(cells, time.Time{})
	}
	for d := 1; d <= info.DaysInMonth; d++ {
		cells = append(cells, time.Date(info.Year, info.Month, d, 0, 0, 0, 0, c.CurrentMonth.Location()))
	}
	return cells
}

// PrevMonth moves the visible month back by one, to its first day.
func (c *Cursor) PrevMonth() {
	c.CurrentMonth = time.Date(c.CurrentMonth.Year(), c.CurrentMonth.Month()-1, 1, 0, 0, 0, 0, c.CurrentMonth.Location())
}

// NextMonth moves the visible month forward by one, to its first day.
func (c *Cursor) NextMonth() {
	c.CurrentMonth = time.Date(c.CurrentMonth.Year(), c.CurrentMonth.Month()+1, 1, 0, 0, 0, 0, c.CurrentMonth.Location())
}

// Select changes the selected day. The visible month is not adjusted, so a
// selection outside it stays valid.
func (c *Cursor) Select(date time.Time) {
	c.SelectedDate = date
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey returns the logical date key for t: its local calendar date as
// YYYY-MM-DD. The key is derived from local date fields, never from a UTC
// conversion, so an entry logged at 23:30 stays on the day the user saw.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthRange returns the date keys of the first and last day of the month
// containing date, for the backend's range-scoped monthly total query.
func MonthRange(date time.Time) (start, end string) {
	info := MonthInfo(date)
	first := time.Date(info.Year, info.Month, 1, 0, 0, 0, 0, date.Location())
	last := time.Date(info.Year, info.Month+1, 0, 0, 0, 0, 0, date.Location())
	return DateKey(first), DateKey(last)
}
