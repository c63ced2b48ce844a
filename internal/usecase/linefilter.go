package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	houseNumberRegex = regexp.MustCompile(`\b\d{1,4}\b`)
	postalCodeRegex  = regexp.MustCompile(`\b\d{5}\b`)
)

// streetTokens are multilingual street-type markers used to recognize
// address-shaped lines. Matched as substrings against lowercased text.
var streetTokens = []string{
	// Finnish
	"katu", "tie", "kuja", "polku", "väylä", "ranta", "aukio", "tori",
	// Swedish
	"gatan", "gata", "vägen", "väg", "gränd", "esplanaden",
	// English
	"street", "road", "avenue", "lane", "boulevard", "drive",
}

// IsNoiseLine reports whether a line looks like an address or contact
// line rather than menu content. Such lines often contain a short
// keyword substring by coincidence and must never be reported as
// dish matches.
//
// A line is noise if it carries a 5-digit postal-code-like token, or a
// street-type token together with a 1–4 digit house-number-like token.
func IsNoiseLine(line string) bool {
	lower := strings.ToLower(line)

	if postalCodeRegex.MatchString(lower) {
		return true
	}

	if !houseNumberRegex.MatchString(lower) {
		return false
	}
	for _, token := range streetTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
