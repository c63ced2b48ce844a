package fetch

import (
	"regexp"
	"strings"
)

// Markers of client-side rendered pages: framework mount points, bundler
// output and framework runtime references.
var (
	mountPointRegex = regexp.MustCompile(`(?i)<div[^>]+id=["'](root|app|__next|___gatsby)["'][^>]*>\s*</div>`)
	bundleRegex     = regexp.MustCompile(`(?i)<script[^>]+src=["'][^"']*(bundle|chunk|runtime|main)\.[a-z0-9.]*js`)
	frameworkRegex  = regexp.MustCompile(`(?i)(data-reactroot|ng-version=|__NUXT__|__NEXT_DATA__|window\.__INITIAL_STATE__)`)
)

// looksDynamicMinText is the visible-text length under which a page
// with script tags is presumed to render its content client-side.
const looksDynamicMinText = 200

// LooksDynamic guesses whether a page's visible content is populated by
// client-side script after the initial load, meaning a static fetch
// sees a near-empty shell. Used to decide when a zero-match static pass
// should escalate to a rendered fetch.
func LooksDynamic(htmlStr string) bool {
	if mountPointRegex.MatchString(htmlStr) {
		return true
	}
	if frameworkRegex.MatchString(htmlStr) {
		return true
	}
	if bundleRegex.MatchString(htmlStr) && len(ExtractText(htmlStr)) < looksDynamicMinText {
		return true
	}
	// A script-heavy page with almost no visible text is a shell.
	if strings.Contains(htmlStr, "<script") && len(ExtractText(htmlStr)) < looksDynamicMinText/4 {
		return true
	}
	return false
}
