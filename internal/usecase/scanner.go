package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/myang/missa-kala/internal/domain"
)

const (
	// maxMatches caps how many unique matching lines are reported.
	maxMatches = 5

	// minLineLength discards short fragments before any other check.
	minLineLength = 5

	// maxMatchLength truncates reported lines.
	maxMatchLength = 200
)

var whitespaceRunRegex = regexp.MustCompile(`\s+`)

// ScanKeywords returns up to maxMatches unique lines of text containing
// any of the given keywords, case-insensitive. Short fragments and
// address-shaped lines are skipped; matches are whitespace-normalized,
// truncated and deduplicated in order of appearance.
func ScanKeywords(text string, keywords []string) []string {
	var matches []string
	seen := make(map[string]bool)

	for _, line := range splitLines(text) {
		if len(matches) >= maxMatches {
			break
		}
		if !scannable(line) {
			continue
		}
		if !hitsAny(strings.ToLower(line), keywords) {
			continue
		}
		normalized := normalizeMatch(line)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		matches = append(matches, normalized)
	}
	return matches
}

// ScanWithLanguagePreference scans against both language partitions of
// the keyword set and, when any primary-language line matched, drops
// the secondary-language matches so reporting stays in the primary
// language.
func ScanWithLanguagePreference(text string, set domain.KeywordSet) []string {
	var primary, secondary []string
	seen := make(map[string]bool)

	for _, line := range splitLines(text) {
		if len(primary) >= maxMatches {
			break
		}
		if !scannable(line) {
			continue
		}
		lower := strings.ToLower(line)
		hitsPrimary := hitsAny(lower, set.Primary)
		if !hitsPrimary && !hitsAny(lower, set.Secondary) {
			continue
		}
		normalized := normalizeMatch(line)
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		if hitsPrimary {
			primary = append(primary, normalized)
		} else if len(secondary) < maxMatches {
			secondary = append(secondary, normalized)
		}
	}

	if len(primary) > 0 {
		return primary
	}
	return secondary
}

func scannable(line string) bool {
	return len(line) >= minLineLength && !IsNoiseLine(line)
}

func hitsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// normalizeMatch collapses internal whitespace runs and truncates the
// line to maxMatchLength, rune-safe.
func normalizeMatch(line string) string {
	normalized := strings.TrimSpace(whitespaceRunRegex.ReplaceAllString(line, " "))
	if len(normalized) <= maxMatchLength {
		return normalized
	}
	cut := maxMatchLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut]
}
