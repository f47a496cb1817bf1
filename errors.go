package seltools

import (
	"errors"
	"strings"

	"github.com/tebeka/selenium"
)

var (
	// ErrNoElement is returned when a lookup matches no element.
	ErrNoElement = errors.New("no element was located")
	// ErrTimeout is returned when a required wait runs out of time.
	ErrTimeout = errors.New("timed out waiting for page to load")
	// ErrNotClickable is returned when a click is intercepted and the element
	// has no href to navigate to instead.
	ErrNotClickable = errors.New("element not clickable and no href")
	// ErrNotSelect is returned by Select for elements other than <select>.
	ErrNotSelect = errors.New("element is not a select")
	// ErrNoOption is returned when no option of a select matches.
	ErrNoOption = errors.New("no matching option")
	// ErrNotMultiple is returned when deselecting options of a select that
	// allows only one selection.
	ErrNotMultiple = errors.New("select does not allow multiple selections")
)

// W3C error codes, see https://www.w3.org/TR/webdriver/#errors.
const (
	codeNoSuchElement           = "no such element"
	codeElementClickIntercepted = "element click intercepted"
)

// hasCode reports whether err carries the given WebDriver error code. Legacy
// servers only return a message, which starts with the same text.
func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var se *selenium.Error
	if errors.As(err, &se) && se.Err != "" {
		return se.Err == code
	}
	return strings.Contains(err.Error(), code)
}

func isNoSuchElement(err error) bool {
	return hasCode(err, codeNoSuchElement)
}

func isClickIntercepted(err error) bool {
	return hasCode(err, codeElementClickIntercepted)
}

// SetDebug turns wire-level logging of WebDriver requests on or off.
func SetDebug(debug bool) {
	selenium.SetDebug(debug)
}
