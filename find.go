package seltools

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
)

// Locate returns the first element matching the lookup. See Locator for the
// accepted strategies. It returns an error wrapping ErrNoElement when nothing
// matches, and logs a warning when more than one element does.
func (d *Driver) Locate(by, value string) (selenium.WebElement, error) {
	by, value = Locator(by, value)
	glog.V(1).Infof("Locating %s %q", by, value)

	elems, err := d.FindElements(by, value)
	if err != nil && !isNoSuchElement(err) {
		return nil, fmt.Errorf("finding %s %q: %w", by, value, err)
	}
	switch len(elems) {
	case 0:
		return nil, fmt.Errorf("%w: %s %q", ErrNoElement, by, value)
	case 1:
	default:
		glog.Warningf("%d elements match %s %q, using the first", len(elems), by, value)
	}
	return elems[0], nil
}

// Lookup is Locate for optional elements. When required is false, a missing
// element yields (nil, false, nil) instead of an error.
func (d *Driver) Lookup(by, value string, required bool) (selenium.WebElement, bool, error) {
	el, err := d.Locate(by, value)
	if err == nil {
		return el, true, nil
	}
	if !required && errors.Is(err, ErrNoElement) {
		return nil, false, nil
	}
	return nil, false, err
}
