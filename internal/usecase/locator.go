package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/myang/missa-kala/internal/domain"
)

const (
	// maxSectionLines caps how many lines a day section may accumulate
	// before the extraction stops.
	maxSectionLines = 30

	// Character window around an inline day/date occurrence.
	windowBefore = 50
	windowAfter  = 800
)

// headerGuards mark a line as pointing at some other day than today
// ("see tomorrow's menu"), so it must not anchor a today section.
var headerGuards = []string{"tomorrow", "next", "huomenna", "imorgon"}

// Locator isolates the portion of a menu page describing today.
// It tries strategies in fixed priority order, from the most
// structurally reliable (explicit per-line day headers) to the least
// (bare inline mention), and never discards input: on failure the full
// text is returned with method "unknown".
type Locator struct {
	patterns   *DayPatternSet
	windowDays int
	shortRegex map[string]*regexp.Regexp
}

// NewLocator creates a locator over the given day-marker set.
// windowDays widens the date-match strategy by ±N days once the exact
// date has found nothing.
func NewLocator(patterns *DayPatternSet, windowDays int) *Locator {
	l := &Locator{
		patterns:   patterns,
		windowDays: windowDays,
		shortRegex: make(map[string]*regexp.Regexp),
	}
	// Markers of up to 3 runes ("ma", "to", "sun") match whole words
	// only, so they cannot fire inside longer words like "tomato".
	for _, p := range patterns.All() {
		if utf8.RuneCountInString(p) <= 3 {
			l.shortRegex[p] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)
		}
	}
	return l
}

// Locate runs the strategies against fullText for the given day.
func (l *Locator) Locate(fullText string, day domain.DayIdentity) domain.SectionResult {
	lines := splitLines(fullText)
	today := l.patterns.ForDay(day.DayOfWeek)

	if section, ok := l.locateDayHeader(lines, today); ok {
		return domain.SectionResult{Success: true, Text: section, Method: domain.SectionMethodDayHeader}
	}
	if section, ok := l.locateDateMatch(fullText, day.Date); ok {
		return domain.SectionResult{Success: true, Text: section, Method: domain.SectionMethodDateMatch}
	}
	if section, ok := l.locateSingleDayHeader(lines); ok {
		return domain.SectionResult{Success: true, Text: section, Method: domain.SectionMethodSingleDayHeader}
	}
	if section, ok := l.locateDayInline(fullText, today); ok {
		return domain.SectionResult{Success: true, Text: section, Method: domain.SectionMethodDayInline}
	}

	return domain.SectionResult{Success: false, Text: fullText, Method: domain.SectionMethodUnknown}
}

// locateDayHeader scans lines top to bottom for a line carrying one of
// today's markers, then accumulates subsequent lines into the section
// until another day's marker appears or the line cap is hit.
func (l *Locator) locateDayHeader(lines []string, today []string) (string, bool) {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !l.matchesAny(lower, today) {
			continue
		}
		if containsGuard(lower) {
			continue
		}
		return strings.Join(l.collectSection(lines, i, today), "\n"), true
	}
	return "", false
}

// collectSection gathers the section starting at the header line. A
// line mentioning some other day while not also mentioning today's is
// the section boundary.
func (l *Locator) collectSection(lines []string, start int, today []string) []string {
	section := []string{lines[start]}
	for i := start + 1; i < len(lines) && len(section) < maxSectionLines; i++ {
		lower := strings.ToLower(lines[i])
		if l.matchesAny(lower, l.patterns.All()) && !l.matchesAny(lower, today) {
			break
		}
		section = append(section, lines[i])
	}
	return section
}

// locateDateMatch looks for today's calendar date written out in the
// text. Exact-date patterns are tried first; the ±windowDays expansion
// is consulted only when the exact date appears nowhere, so a page
// labeled with the viewer's own date always wins.
func (l *Locator) locateDateMatch(fullText string, date domain.Date) (string, bool) {
	lower := strings.ToLower(fullText)

	exact := DatePatterns(date)
	if section, ok := findDateWindow(fullText, lower, exact); ok {
		return section, true
	}
	if l.windowDays > 0 {
		seen := make(map[string]bool, len(exact))
		for _, p := range exact {
			seen[p] = true
		}
		var widened []string
		for _, p := range DatePatternsForWindow(date, l.windowDays) {
			if !seen[p] {
				widened = append(widened, p)
			}
		}
		if section, ok := findDateWindow(fullText, lower, widened); ok {
			return section, true
		}
	}
	return "", false
}

func findDateWindow(fullText, lower string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if idx := strings.Index(lower, strings.ToLower(p)); idx >= 0 {
			return charWindow(fullText, idx, windowBefore, windowAfter), true
		}
	}
	return "", false
}

// locateSingleDayHeader handles pages that show exactly one day's menu
// without labeling other days: if only a single distinct day of the
// week is mentioned anywhere, its first line anchors the section.
func (l *Locator) locateSingleDayHeader(lines []string) (string, bool) {
	firstLine := make(map[int]int)
	for i, line := range lines {
		lower := strings.ToLower(line)
		for dow := 0; dow < 7; dow++ {
			if !l.matchesAny(lower, l.patterns.ForDay(dow)) {
				continue
			}
			if _, ok := firstLine[dow]; !ok {
				firstLine[dow] = i
			}
		}
	}
	if len(firstLine) != 1 {
		return "", false
	}
	for dow, start := range firstLine {
		return strings.Join(l.collectSection(lines, start, l.patterns.ForDay(dow)), "\n"), true
	}
	return "", false
}

// locateDayInline falls back to the earliest inline occurrence of any
// of today's markers everywhere in the text, returning a character
// window around it.
func (l *Locator) locateDayInline(fullText string, today []string) (string, bool) {
	lower := strings.ToLower(fullText)

	earliest := -1
	for _, p := range today {
		idx := -1
		if re, ok := l.shortRegex[p]; ok {
			if loc := re.FindStringIndex(lower); loc != nil {
				idx = loc[0]
			}
		} else {
			idx = strings.Index(lower, p)
		}
		if idx >= 0 && (earliest < 0 || idx < earliest) {
			earliest = idx
		}
	}
	if earliest < 0 {
		return "", false
	}
	return charWindow(fullText, earliest, windowBefore, windowAfter), true
}

// matchesAny reports whether the lowercased line carries any of the
// given markers, whole-word for short markers and substring otherwise.
func (l *Locator) matchesAny(lower string, patterns []string) bool {
	for _, p := range patterns {
		if re, ok := l.shortRegex[p]; ok {
			if re.MatchString(lower) {
				return true
			}
		} else if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func containsGuard(lower string) bool {
	for _, g := range headerGuards {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}

// splitLines decomposes page text into trimmed, non-empty lines.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// charWindow clamps a [idx-before, idx+after] byte window to the text,
// nudging both ends to rune boundaries.
func charWindow(text string, idx, before, after int) string {
	start := idx - before
	if start < 0 {
		start = 0
	}
	end := idx + after
	if end > len(text) {
		end = len(text)
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return text[start:end]
}
