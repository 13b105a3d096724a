package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPublicHolidays(t *testing.T) {
	o := New()

	assert.True(t, o.IsPublicHoliday(date(2026, 1, 1), Singapore))
	assert.True(t, o.IsPublicHoliday(date(2026, 1, 1), Malaysia))

	// National Day is Singapore-only; Merdeka Day is Malaysia-only.
	assert.True(t, o.IsPublicHoliday(date(2026, 8, 9), Singapore))
	assert.False(t, o.IsPublicHoliday(date(2026, 8, 9), Malaysia))
	assert.True(t, o.IsPublicHoliday(date(2026, 8, 31), Malaysia))
	assert.False(t, o.IsPublicHoliday(date(2026, 8, 31), Singapore))

	assert.False(t, o.IsPublicHoliday(date(2026, 4, 15), Singapore))
	assert.False(t, o.IsPublicHoliday(date(2026, 4, 15), Malaysia))
}

func TestPublicHolidayOutsideCoveredYears(t *testing.T) {
	o := New()
	assert.False(t, o.IsPublicHoliday(date(2030, 1, 1), Singapore))
	assert.False(t, o.IsPublicHoliday(date(2020, 1, 1), Malaysia))
}

func TestSchoolHolidayWindows(t *testing.T) {
	o := New()

	cases := []struct {
		date time.Time
		j    Jurisdiction
		want bool
	}{
		{date(2026, 3, 8), Singapore, true},
		{date(2026, 3, 16), Singapore, true},
		{date(2026, 3, 17), Singapore, false},
		{date(2026, 6, 10), Singapore, true},
		{date(2026, 6, 26), Singapore, false},
		{date(2026, 9, 5), Singapore, true},
		{date(2026, 12, 15), Singapore, true},
		{date(2026, 3, 25), Malaysia, true},
		{date(2026, 3, 31), Malaysia, false},
		{date(2026, 6, 11), Malaysia, true},
		{date(2026, 6, 12), Malaysia, false},
		{date(2026, 11, 25), Malaysia, true},
		{date(2026, 4, 15), Malaysia, false},
	}
	for _, c := range cases {
		got := o.IsSchoolHoliday(c.date, c.j)
		assert.Equalf(t, c.want, got, "date %s jurisdiction %d", c.date.Format("2006-01-02"), c.j)
	}
}

func TestIsAnyHoliday(t *testing.T) {
	o := New()
	assert.True(t, o.IsAnyHoliday(date(2026, 1, 1)))  // public both sides
	assert.True(t, o.IsAnyHoliday(date(2026, 6, 15))) // SG school window only
	assert.False(t, o.IsAnyHoliday(date(2026, 4, 15)))
}
