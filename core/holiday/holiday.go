package holiday

import "time"

// Jurisdiction selects one of the two calendars the oracle knows about.
type Jurisdiction int

const (
	Singapore Jurisdiction = iota
	Malaysia
)

// Oracle answers public and school holiday queries for Singapore and
// Malaysia. All lookups are read-only and safe for concurrent use.
type Oracle struct {
	public map[Jurisdiction]map[string]struct{}
}

const dateKey = "2006-01-02"

// New returns an oracle backed by the built-in holiday tables.
func New() *Oracle {
	o := &Oracle{public: map[Jurisdiction]map[string]struct{}{
		Singapore: {},
		Malaysia:  {},
	}}
	for _, d := range sgPublicHolidays {
		o.public[Singapore][d] = struct{}{}
	}
	for _, d := range myPublicHolidays {
		o.public[Malaysia][d] = struct{}{}
	}
	return o
}

// IsPublicHoliday reports whether date is a gazetted public holiday in
// the jurisdiction. Dates outside the covered years are false.
func (o *Oracle) IsPublicHoliday(date time.Time, j Jurisdiction) bool {
	days, ok := o.public[j]
	if !ok {
		return false
	}
	_, found := days[date.Format(dateKey)]
	return found
}

// IsSchoolHoliday reports whether date falls in an approximate school
// holiday window. The windows are fixed month/day ranges reviewed once a
// year against the published school calendars.
func (o *Oracle) IsSchoolHoliday(date time.Time, j Jurisdiction) bool {
	month := int(date.Month())
	day := date.Day()
	switch j {
	case Singapore:
		switch {
		case month == 3 && day >= 8 && day <= 16:
			return true
		case (month == 5 && day >= 27) || (month == 6 && day <= 25):
			return true
		case month == 9 && day >= 2 && day <= 10:
			return true
		case (month == 11 && day >= 18) || month == 12:
			return true
		}
	case Malaysia:
		switch {
		case month == 3 && day >= 20 && day <= 30:
			return true
		case (month == 5 && day >= 27) || (month == 6 && day <= 11):
			return true
		case (month == 11 && day >= 20) || month == 12:
			return true
		}
	}
	return false
}

// IsAnyHoliday is the OR of the four public/school signals across both
// jurisdictions.
func (o *Oracle) IsAnyHoliday(date time.Time) bool {
	return o.IsPublicHoliday(date, Singapore) ||
		o.IsPublicHoliday(date, Malaysia) ||
		o.IsSchoolHoliday(date, Singapore) ||
		o.IsSchoolHoliday(date, Malaysia)
}
