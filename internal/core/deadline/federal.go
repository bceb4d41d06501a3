package deadline

import "time"

// FederalHoliday is one generated US federal holiday
type FederalHoliday struct {
	Name string
	Date time.Time
}

// NthWeekday returns the n-th (1-based) weekday wd of month in year
func NthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// LastWeekday returns the last weekday wd of month in year
func LastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	back := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -back)
}

// FederalHolidays returns the ten US federal holidays of year in calendar order
// Fixed-date holidays are returned on their actual date; no observed-day shifting is applied
func FederalHolidays(year int) []FederalHoliday {
	fixed := func(m time.Month, d int) time.Time { return time.Date(year, m, d, 0, 0, 0, 0, time.UTC) }
	return []FederalHoliday{
		{"New Year's Day", fixed(time.January, 1)},
		{"Martin Luther King Jr. Day", NthWeekday(year, time.January, time.Monday, 3)},
		{"Presidents' Day", NthWeekday(year, time.February, time.Monday, 3)},
		{"Memorial Day", LastWeekday(year, time.May, time.Monday)},
		{"Independence Day", fixed(time.July, 4)},
		{"Labor Day", NthWeekday(year, time.September, time.Monday, 1)},
		{"Columbus Day", NthWeekday(year, time.October, time.Monday, 2)},
		{"Veterans Day", fixed(time.November, 11)},
		{"Thanksgiving Day", NthWeekday(year, time.November, time.Thursday, 4)},
		{"Christmas Day", fixed(time.December, 25)},
	}
}

// FederalCatalogHolidays returns FederalHolidays for every year in [from, to] as active,
// court-affecting catalog records
func FederalCatalogHolidays(from, to int) []Holiday {
	var out []Holiday
	for y := from; y <= to; y++ {
		for _, fh := range FederalHolidays(y) {
			out = append(out, Holiday{
				Date:          fh.Date,
				Name:          fh.Name,
				Type:          HolidayFederal,
				AffectsCourts: true,
				IsActive:      true,
			})
		}
	}
	return out
}
