package domain

import "time"

// DayIdentity is the reference point for "today" during one check run.
// DayOfWeek follows the 0=Sunday .. 6=Saturday convention.
type DayIdentity struct {
	DayOfWeek int  `json:"dayOfWeek"`
	Date      Date `json:"date"`
}

// Date is a plain calendar date without time-of-day or zone.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// NewDayIdentity derives the identity for "today" from wall-clock time.
// One identity is taken at the start of a run and applied to every
// restaurant in that run, even if the run spans midnight.
func NewDayIdentity(now time.Time) DayIdentity {
	return DayIdentity{
		DayOfWeek: int(now.Weekday()),
		Date: Date{
			Year:  now.Year(),
			Month: int(now.Month()),
			Day:   now.Day(),
		},
	}
}

// Time converts the date back to a time.Time at midnight UTC, used for
// calendar arithmetic when expanding date windows.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// KeywordSet holds the dish-indicating terms, partitioned by language.
// Primary-language matches take precedence over secondary ones when
// both occur in the same text.
type KeywordSet struct {
	Primary   []string `mapstructure:"primary" json:"primary"`
	Secondary []string `mapstructure:"secondary" json:"secondary"`
}

// All returns the union of both language partitions, primary first.
func (k KeywordSet) All() []string {
	all := make([]string, 0, len(k.Primary)+len(k.Secondary))
	all = append(all, k.Primary...)
	all = append(all, k.Secondary...)
	return all
}

// Locator method tags. SectionMethodUnknown is reserved for failure.
const (
	SectionMethodDayHeader       = "day-header"
	SectionMethodDateMatch       = "date-match"
	SectionMethodSingleDayHeader = "single-day-header"
	SectionMethodDayInline       = "day-inline"
	SectionMethodUnknown         = "unknown"

	// Orchestrator-only method tags for full-page scans.
	SectionMethodFullPageFallback = "full-page-fallback"
	SectionMethodFullPage         = "full-page"
)

// SectionResult is the outcome of the today-section locator.
// When Success is false, Method is "unknown" and Text carries the full
// input unchanged so callers never lose content on a failed locate.
type SectionResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Method  string `json:"method"`
}

// Day-detection confidence levels.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Confidence describes how the final text span was obtained and how
// much to trust that it really covers today.
type Confidence struct {
	DayDetection string `json:"dayDetection"` // "high" or "low"
	Method       string `json:"method"`
}

// KeywordMatchResult is the outcome of one detection run over one page.
// FishItems is deduplicated after normalization and capped at 5 entries.
type KeywordMatchResult struct {
	FishItems  []string   `json:"fishItems"`
	Confidence Confidence `json:"confidence"`
}

// Restaurant identifies one target menu page.
type Restaurant struct {
	Name string `mapstructure:"name" json:"name"`
	URL  string `mapstructure:"url" json:"url"`
}

// RestaurantResult is the per-restaurant record handed to consumers.
// A failed fetch leaves Error set and the detection fields zeroed;
// one failing site never affects the rest of the batch.
type RestaurantResult struct {
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	HasFish    bool       `json:"hasFish"`
	FishItems  []string   `json:"fishItems"`
	Confidence Confidence `json:"confidence"`
	Error      string     `json:"error,omitempty"`
}

// CheckReport is the full outcome of one run over all restaurants,
// fish-positive results first.
type CheckReport struct {
	Results     []RestaurantResult `json:"results"`
	LastChecked time.Time          `json:"lastChecked"`
}
