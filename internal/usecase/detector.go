package usecase

import (
	"github.com/myang/missa-kala/internal/domain"
)

// Detector combines the today-section locator with the keyword scanner
// and classifies how much the result can be trusted. It is a pure
// function over its inputs: absence of matches is a normal outcome,
// never an error.
type Detector struct {
	locator *Locator
}

// NewDetector creates a detector over the given day-marker set.
func NewDetector(patterns *DayPatternSet, windowDays int) *Detector {
	return &Detector{locator: NewLocator(patterns, windowDays)}
}

// Detect locates today's section and scans it for fish keywords.
//
// Confidence is "high" only when the section was structurally
// identified and the scan against that section itself produced the
// matches. A located-but-empty section triggers one full-page rescan
// at "low" confidence, since the section may have been cut too narrow;
// if even that finds nothing, the empty result is reported at "high"
// confidence — no fish today is a valid answer. A failed locate always
// scans the full page at "low" confidence.
func (d *Detector) Detect(fullText string, day domain.DayIdentity, keywords domain.KeywordSet) domain.KeywordMatchResult {
	section := d.locator.Locate(fullText, day)

	if !section.Success {
		return domain.KeywordMatchResult{
			FishItems: ScanWithLanguagePreference(fullText, keywords),
			Confidence: domain.Confidence{
				DayDetection: domain.ConfidenceLow,
				Method:       domain.SectionMethodFullPage,
			},
		}
	}

	items := ScanWithLanguagePreference(section.Text, keywords)
	if len(items) > 0 {
		return domain.KeywordMatchResult{
			FishItems: items,
			Confidence: domain.Confidence{
				DayDetection: domain.ConfidenceHigh,
				Method:       section.Method,
			},
		}
	}

	if fallback := ScanWithLanguagePreference(fullText, keywords); len(fallback) > 0 {
		return domain.KeywordMatchResult{
			FishItems: fallback,
			Confidence: domain.Confidence{
				DayDetection: domain.ConfidenceLow,
				Method:       domain.SectionMethodFullPageFallback,
			},
		}
	}

	return domain.KeywordMatchResult{
		FishItems: []string{},
		Confidence: domain.Confidence{
			DayDetection: domain.ConfidenceHigh,
			Method:       section.Method,
		},
	}
}
