package seltools

import (
	"strings"

	"github.com/tebeka/selenium"
)

// ByText matches elements whose text contains the value. It is translated
// to an XPath expression.
const ByText = "text"

var standardStrategies = map[string]bool{
	selenium.ByClassName:       true,
	selenium.ByCSSSelector:     true,
	selenium.ByID:              true,
	selenium.ByLinkText:        true,
	selenium.ByName:            true,
	selenium.ByPartialLinkText: true,
	selenium.ByTagName:         true,
	selenium.ByXPATH:           true,
}

// IsStandard reports whether by is one of the lookup strategies WebDriver
// understands natively.
func IsStandard(by string) bool {
	return standardStrategies[by]
}

// Locator translates a lookup strategy and value into a pair the WebDriver
// understands. An empty strategy means ByID. ByText becomes a text-contains
// XPath, and any other non-standard strategy is taken to be an attribute
// name, so ("data-id", "42") matches //*[@data-id='42'].
func Locator(by, value string) (string, string) {
	switch {
	case by == "":
		return selenium.ByID, value
	case by == ByText:
		return selenium.ByXPATH, "//*[contains(text(), " + xpathLiteral(value) + ")]"
	case IsStandard(by):
		return by, value
	}
	return selenium.ByXPATH, "//*[@" + by + "=" + xpathLiteral(value) + "]"
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so a value holding both quote kinds is split into a concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	var b strings.Builder
	b.WriteString("concat(")
	for i, part := range strings.Split(s, "'") {
		if i > 0 {
			b.WriteString(`, "'", `)
		}
		b.WriteString("'" + part + "'")
	}
	b.WriteString(")")
	return b.String()
}
