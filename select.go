package seltools

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
)

// SelectElement wraps a <select> element.
type SelectElement struct {
	element  selenium.WebElement
	multiple bool
}

// Select wraps el, which must be a <select> element.
func Select(el selenium.WebElement) (*SelectElement, error) {
	tagName, err := el.TagName()
	if err != nil {
		return nil, fmt.Errorf("reading tag name: %w", err)
	}
	if !strings.EqualFold(tagName, "select") {
		return nil, fmt.Errorf("%w: got <%s>", ErrNotSelect, tagName)
	}

	s := selectOf(el)
	mult, err := el.GetAttribute("multiple")
	s.multiple = err == nil && mult != "" && !strings.EqualFold(mult, "false")
	return s, nil
}

// selectOf wraps el without checking its tag, for dropdowns built from
// other elements that still hold <option> children.
func selectOf(el selenium.WebElement) *SelectElement {
	return &SelectElement{element: el}
}

// Element returns the wrapped element.
func (s *SelectElement) Element() selenium.WebElement {
	return s.element
}

// IsMultiple reports whether the select accepts several selected options,
// according to its "multiple" attribute.
func (s *SelectElement) IsMultiple() bool {
	return s.multiple
}

// Options returns all options of the select.
func (s *SelectElement) Options() ([]selenium.WebElement, error) {
	return s.element.FindElements(selenium.ByTagName, "option")
}

// SelectedOptions returns the options that are currently selected.
func (s *SelectElement) SelectedOptions() ([]selenium.WebElement, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	var selected []selenium.WebElement
	for _, o := range opts {
		ok, err := o.IsSelected()
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, o)
		}
	}
	return selected, nil
}

// FirstSelectedOption returns the first selected option.
func (s *SelectElement) FirstSelectedOption() (selenium.WebElement, error) {
	selected, err := s.SelectedOptions()
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: nothing is selected", ErrNoOption)
	}
	return selected[0], nil
}

// SelectByText clicks the first option whose text equals text exactly and
// reports whether there was one.
func (s *SelectElement) SelectByText(text string) (bool, error) {
	opts, err := s.Options()
	if err != nil {
		return false, err
	}
	for _, o := range opts {
		t, err := o.Text()
		if err != nil {
			return false, err
		}
		if t == text {
			return true, o.Click()
		}
	}
	return false, nil
}

// SelectByVisibleText selects all options whose text matches text after
// collapsing whitespace, as in <option value="foo"> Bar </option> for "Bar".
// A single select stops after the first match.
func (s *SelectElement) SelectByVisibleText(text string) error {
	return s.setMatching(func(o selenium.WebElement) (bool, error) {
		t, err := o.Text()
		return normalizeSpace(t) == normalizeSpace(text), err
	}, true, "text "+text)
}

// SelectByValue selects all options whose value attribute equals value.
func (s *SelectElement) SelectByValue(value string) error {
	return s.setMatching(valueIs(value), true, "value "+value)
}

// SelectByIndex selects the option at position idx.
func (s *SelectElement) SelectByIndex(idx int) error {
	return s.setByIndex(idx, true)
}

// DeselectAll clears every selected option of a multi-select.
func (s *SelectElement) DeselectAll() error {
	if err := s.checkMultiple(); err != nil {
		return err
	}
	opts, err := s.Options()
	if err != nil {
		return err
	}
	for _, o := range opts {
		if err := setSelected(o, false); err != nil {
			return err
		}
	}
	return nil
}

// DeselectByValue deselects all options whose value attribute equals value.
func (s *SelectElement) DeselectByValue(value string) error {
	if err := s.checkMultiple(); err != nil {
		return err
	}
	return s.setMatching(valueIs(value), false, "value "+value)
}

// DeselectByIndex deselects the option at position idx.
func (s *SelectElement) DeselectByIndex(idx int) error {
	if err := s.checkMultiple(); err != nil {
		return err
	}
	return s.setByIndex(idx, false)
}

// DeselectByVisibleText deselects all options whose text matches text after
// collapsing whitespace.
func (s *SelectElement) DeselectByVisibleText(text string) error {
	if err := s.checkMultiple(); err != nil {
		return err
	}
	return s.setMatching(func(o selenium.WebElement) (bool, error) {
		t, err := o.Text()
		return normalizeSpace(t) == normalizeSpace(text), err
	}, false, "text "+text)
}

func (s *SelectElement) checkMultiple() error {
	if !s.multiple {
		return fmt.Errorf("%w: you may only deselect options of a multi-select", ErrNotMultiple)
	}
	return nil
}

func (s *SelectElement) setMatching(match func(selenium.WebElement) (bool, error), selected bool, desc string) error {
	opts, err := s.Options()
	if err != nil {
		return err
	}
	matched := false
	for _, o := range opts {
		ok, err := match(o)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		matched = true
		if err := setSelected(o, selected); err != nil {
			return err
		}
		if selected && !s.multiple {
			return nil
		}
	}
	if !matched {
		return fmt.Errorf("%w: cannot locate option with %s", ErrNoOption, desc)
	}
	return nil
}

func (s *SelectElement) setByIndex(idx int, selected bool) error {
	opts, err := s.Options()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(opts) {
		return fmt.Errorf("%w: cannot locate option with index %d of %d", ErrNoOption, idx, len(opts))
	}
	return setSelected(opts[idx], selected)
}

func valueIs(value string) func(selenium.WebElement) (bool, error) {
	return func(o selenium.WebElement) (bool, error) {
		v, err := o.GetAttribute("value")
		if err != nil {
			// An option without a value attribute cannot match.
			return false, nil
		}
		return v == value, nil
	}
}

func setSelected(option selenium.WebElement, selected bool) error {
	sel, err := option.IsSelected()
	if err != nil {
		return err
	}
	if sel != selected {
		return option.Click()
	}
	return nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
