package validate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.Und)

// normalizeHTTPMethod folds an HTTP method to upper case using x/text/cases
// rather than hand-rolled ASCII folding, grounded on the teacher's use of
// golang.org/x/text for encoding-aware text handling.
func normalizeHTTPMethod(method string) string {
	return upperCaser.String(method)
}

// isDotNotation reports whether an event name uses dot-separated segments
// ("order.created").
func isDotNotation(name string) bool {
	return strings.Contains(name, ".")
}

// isCamelCase reports whether an event name contains a lowercase-to-uppercase
// transition and no dot ("orderCreated").
func isCamelCase(name string) bool {
	if strings.Contains(name, ".") {
		return false
	}
	runes := []rune(name)
	for i := 1; i < len(runes); i++ {
		if isLower(runes[i-1]) && isUpper(runes[i]) {
			return true
		}
	}
	return false
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
