package usecase

import (
	"fmt"

	"github.com/myang/missa-kala/internal/domain"
)

// DayPatternSet maps day-of-week (0=Sunday .. 6=Saturday) to the
// lowercase textual markers that can denote that day in any supported
// language. Built once at startup and passed explicitly into the
// locator; full names come before abbreviations so the more reliable
// markers are tried first.
type DayPatternSet struct {
	days [7][]string
	all  []string
}

// DefaultDayPatterns builds the standard Finnish/Swedish/English set.
func DefaultDayPatterns() *DayPatternSet {
	s := &DayPatternSet{
		days: [7][]string{
			{"sunnuntai", "söndag", "sunday", "su", "sön", "sun"},
			{"maanantai", "måndag", "monday", "ma", "mån", "mon"},
			{"tiistai", "tisdag", "tuesday", "ti", "tis", "tue"},
			{"keskiviikko", "onsdag", "wednesday", "ke", "ons", "wed"},
			{"torstai", "torsdag", "thursday", "to", "tor", "thu"},
			{"perjantai", "fredag", "friday", "pe", "fre", "fri"},
			{"lauantai", "lördag", "saturday", "la", "lör", "sat"},
		},
	}
	for _, patterns := range s.days {
		s.all = append(s.all, patterns...)
	}
	return s
}

// ForDay returns the markers for one day of the week. Out-of-range
// values yield an empty set rather than a panic.
func (s *DayPatternSet) ForDay(dayOfWeek int) []string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil
	}
	return s.days[dayOfWeek]
}

// All returns the union of every day's markers, used to detect
// "some other day" boundaries.
func (s *DayPatternSet) All() []string {
	return s.all
}

// DatePatterns returns the textual representations of one calendar
// date: ISO, padded and unpadded European dot/slash variants, and
// no-year variants.
func DatePatterns(d domain.Date) []string {
	return []string{
		fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day),
		fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year),
		fmt.Sprintf("%d.%d.%d", d.Day, d.Month, d.Year),
		fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year),
		fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year),
		fmt.Sprintf("%02d.%02d.", d.Day, d.Month),
		fmt.Sprintf("%d.%d.", d.Day, d.Month),
		fmt.Sprintf("%02d/%02d", d.Day, d.Month),
		fmt.Sprintf("%d/%d", d.Day, d.Month),
	}
}

// DatePatternsForWindow unions DatePatterns over every date in
// [date-windowDays, date+windowDays], deduplicated in order. The window
// tolerates menus labeled with a date one day off from the viewer's
// calendar (publishing lag, timezone skew) without conflating all days.
func DatePatternsForWindow(d domain.Date, windowDays int) []string {
	if windowDays < 0 {
		windowDays = 0
	}

	seen := make(map[string]bool)
	var patterns []string
	base := d.Time()
	for offset := -windowDays; offset <= windowDays; offset++ {
		day := base.AddDate(0, 0, offset)
		date := domain.Date{Year: day.Year(), Month: int(day.Month()), Day: day.Day()}
		for _, p := range DatePatterns(date) {
			if !seen[p] {
				seen[p] = true
				patterns = append(patterns, p)
			}
		}
	}
	return patterns
}
