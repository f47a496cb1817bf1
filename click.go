package seltools

import (
	"fmt"

	"github.com/golang/glog"
)

// ClickElement locates an element and clicks it. If another element
// intercepts the click, the browser navigates to the element's href instead.
//
// With required set, a missing element or an intercepted click on an element
// without href is an error; otherwise both only yield false.
func (d *Driver) ClickElement(by, value string, required bool) (bool, error) {
	el, found, err := d.Lookup(by, value, required)
	if err != nil || !found {
		return false, err
	}

	err = el.Click()
	if err == nil {
		return true, nil
	}
	if !isClickIntercepted(err) {
		return false, fmt.Errorf("clicking %s %q: %w", by, value, err)
	}

	// A missing attribute comes back as an error from some drivers and as an
	// empty string from others.
	href, aerr := el.GetAttribute("href")
	if aerr != nil || href == "" {
		if required {
			return false, fmt.Errorf("%w: %s %q", ErrNotClickable, by, value)
		}
		return false, nil
	}

	glog.Infof("Click on %s %q intercepted, navigating to %s", by, value, href)
	if err := d.Get(href); err != nil {
		return false, fmt.Errorf("navigating to %s: %w", href, err)
	}
	return true, nil
}
