package seltools

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
)

// WaitForElement polls until an element matching the lookup is present or
// the Driver's timeout elapses. It reports whether the element appeared.
//
// When the wait times out and required is true, the current window is closed
// and an error wrapping ErrTimeout is returned. Otherwise a timeout only
// yields false.
func (d *Driver) WaitForElement(by, value string, required bool) (bool, error) {
	by, value = Locator(by, value)

	var findErr error
	err := d.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		elems, err := wd.FindElements(by, value)
		if err != nil {
			if isNoSuchElement(err) {
				return false, nil
			}
			findErr = err
			return false, err
		}
		return len(elems) > 0, nil
	}, d.timeout, d.interval)

	switch {
	case err == nil:
		return true, nil
	case findErr != nil:
		return false, fmt.Errorf("waiting for %s %q: %w", by, value, findErr)
	case !required:
		glog.V(1).Infof("Gave up waiting for %s %q after %v", by, value, d.timeout)
		return false, nil
	}

	if cerr := d.Close(); cerr != nil {
		glog.Warningf("Closing window after timeout: %v", cerr)
	}
	return false, fmt.Errorf("%w: %s %q not present after %v", ErrTimeout, by, value, d.timeout)
}

// WaitForReadyState polls until document.readyState is "complete".
func (d *Driver) WaitForReadyState() error {
	var scriptErr error
	err := d.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		state, err := wd.ExecuteScript("return document.readyState", nil)
		if err != nil {
			scriptErr = err
			return false, err
		}
		return state == "complete", nil
	}, d.timeout, d.interval)

	switch {
	case err == nil:
		return nil
	case scriptErr != nil:
		return fmt.Errorf("reading document.readyState: %w", scriptErr)
	}
	return fmt.Errorf("%w: document not complete after %v", ErrTimeout, d.timeout)
}
