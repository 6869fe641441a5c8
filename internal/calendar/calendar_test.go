package calendar_test

import (
	"testing"
	"time"

	"github.com/piringsehat/piring-cli/internal/calendar"
)

func TestMonthInfoLeapYears(t *testing.T) {
	t.Parallel()

	feb2024 := calendar.MonthInfo(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.Local))
	if feb2024.DaysInMonth != 29 {
		t.Fatalf("expected 29 days in 2024-02, got %d", feb2024.DaysInMonth)
	}
	feb2023 := calendar.MonthInfo(time.Date(2023, time.February, 1, 0, 0, 0, 0, time.Local))
	if feb2023.DaysInMonth != 28 {
		t.Fatalf("expected 28 days in 2023-02, got %d", feb2023.DaysInMonth)
	}
}

func TestMonthInfoMondayStart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 1},  // 2024-01-01 is a Monday
		{2024, time.March, 5},    // 2024-03-01 is a Friday
		{2024, time.September, 7}, // 2024-09-01 is a Sunday
		{2024, time.December, 7},  // 2024-12-01 is a Sunday
	}
	for _, tc := range cases {
		info := calendar.MonthInfo(time.Date(tc.year, tc.month, 10, 12, 30, 0, 0, time.Local))
		if info.StartWeekday != tc.want {
			t.Errorf("%d-%02d: expected start weekday %d, got %d", tc.year, tc.month, tc.want, info.StartWeekday)
		}
	}
}

func TestGridShape(t *testing.T) {
	t.Parallel()

	c := calendar.New(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local))
	info := calendar.MonthInfo(c.CurrentMonth)
	grid := c.Grid()

	if len(grid) != info.StartWeekday-1+info.DaysInMonth {
		t.Fatalf("expected %d cells, got %d", info.StartWeekday-1+info.DaysInMonth, len(grid))
	}
	for i := 0; i < info.StartWeekday-1; i++ {
		if !grid[i].IsZero() {
			t.Fatalf("expected leading placeholder at index %d, got %v", i, grid[i])
		}
	}
	for d := 1; d <= info.DaysInMonth; d++ {
		cell := grid[info.StartWeekday-2+d]
		if cell.IsZero() || cell.Day() != d {
			t.Fatalf("expected day %d at its grid position, got %v", d, cell)
		}
	}
}

func TestNavigationKeepsSelection(t *testing.T) {
	t.Parallel()

	sel := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	c := calendar.New(sel)

	c.NextMonth()
	if c.CurrentMonth.Month() != time.April || c.CurrentMonth.Day() != 1 {
		t.Fatalf("expected current month 2024-04-01, got %v", c.CurrentMonth)
	}
	if !calendar.SameDay(c.SelectedDate, sel) {
		t.Fatalf("selection moved with month navigation: %v", c.SelectedDate)
	}

	c.PrevMonth()
	c.PrevMonth()
	if c.CurrentMonth.Month() != time.February || c.CurrentMonth.Day() != 1 {
		t.Fatalf("expected current month 2024-02-01, got %v", c.CurrentMonth)
	}
}

func TestPrevMonthAcrossYearBoundary(t *testing.T) {
	t.Parallel()

	c := calendar.New(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local))
	c.PrevMonth()
	if c.CurrentMonth.Year() != 2023 || c.CurrentMonth.Month() != time.December {
		t.Fatalf("expected 2023-12-01, got %v", c.CurrentMonth)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	morning := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.Local)
	night := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.Local)

	if !calendar.SameDay(morning, night) {
		t.Fatal("expected same-day comparison to ignore time of day")
	}
	if calendar.SameDay(night, nextDay) {
		t.Fatal("expected midnight boundary to separate days")
	}
}

func TestDateKeyUsesLocalCalendarDate(t *testing.T) {
	t.Parallel()

	late := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.Local)
	if got := calendar.DateKey(late); got != "2024-03-15" {
		t.Fatalf("expected date key 2024-03-15, got %q", got)
	}
}

func TestMonthRange(t *testing.T) {
	t.Parallel()

	start, end := calendar.MonthRange(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local))
	if start != "2024-02-01" || end != "2024-02-29" {
		t.Fatalf("expected 2024-02-01..2024-02-29, got %s..%s", start, end)
	}
}
