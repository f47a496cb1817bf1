package seltools

import (
	"fmt"

	"github.com/golang/glog"
)

// FillInForm locates a form field, clears it and types keys into it.
func (d *Driver) FillInForm(by, value, keys string) error {
	el, err := d.Locate(by, value)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("clearing %s %q: %w", by, value, err)
	}
	if err := el.SendKeys(keys); err != nil {
		return fmt.Errorf("typing into %s %q: %w", by, value, err)
	}
	return nil
}

// SelectDropdown locates a dropdown and clicks the first option whose text
// is exactly optionText. It reports false if no option matched.
func (d *Driver) SelectDropdown(by, value, optionText string) (bool, error) {
	el, err := d.Locate(by, value)
	if err != nil {
		return false, err
	}
	ok, err := selectOf(el).SelectByText(optionText)
	if err != nil {
		return false, fmt.Errorf("selecting %q in %s %q: %w", optionText, by, value, err)
	}
	if !ok {
		glog.Warningf("Option %q not found in %s %q", optionText, by, value)
	}
	return ok, nil
}
