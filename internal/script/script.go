// Package script runs a scripted browser session: an ordered list of steps
// read from a config file.
package script

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

// Actions a Step can perform.
const (
	Get    = "get"
	Wait   = "wait"
	Ready  = "ready"
	Fill   = "fill"
	Select = "select"
	Click  = "click"
)

// Browser is the set of helpers steps are run against. *seltools.Driver
// implements it.
type Browser interface {
	Get(url string) error
	WaitForElement(by, value string, required bool) (bool, error)
	WaitForReadyState() error
	FillInForm(by, value, keys string) error
	SelectDropdown(by, value, optionText string) (bool, error)
	ClickElement(by, value string, required bool) (bool, error)
}

// Step is one action of a script.
type Step struct {
	Action string `mapstructure:"action"`
	By     string `mapstructure:"by"`
	Value  string `mapstructure:"value"`
	// Keys is the text typed by fill.
	Keys string `mapstructure:"keys"`
	// Option is the option text chosen by select.
	Option string `mapstructure:"option"`
	URL    string `mapstructure:"url"`
	// Optional makes wait and click report a missing element instead of
	// failing, and lets select continue when the option does not exist.
	Optional bool `mapstructure:"optional"`
}

// ErrStepFailed is returned when a required step had no effect.
var ErrStepFailed = errors.New("step had no effect")

// Validate checks that s carries the fields its action needs.
func (s Step) Validate() error {
	switch s.Action {
	case Get:
		if s.URL == "" {
			return errors.New("get needs a url")
		}
	case Ready:
	case Wait, Click, Fill, Select:
		if s.Value == "" {
			return fmt.Errorf("%s needs a value", s.Action)
		}
		if s.Action == Select && s.Option == "" {
			return errors.New("select needs an option")
		}
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// Validate checks every step before any is run.
func Validate(steps []Step) error {
	if len(steps) == 0 {
		return errors.New("script has no steps")
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Run validates steps and runs them in order against b, stopping at the
// first failure.
func Run(b Browser, steps []Step) error {
	if err := Validate(steps); err != nil {
		return err
	}
	for i, s := range steps {
		glog.V(1).Infof("Step %d: %s %s %q", i+1, s.Action, s.By, s.Value)
		if err := s.run(b); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Action, err)
		}
	}
	return nil
}

func (s Step) run(b Browser) error {
	var (
		ok  = true
		err error
	)
	switch s.Action {
	case Get:
		err = b.Get(s.URL)
	case Ready:
		err = b.WaitForReadyState()
	case Wait:
		ok, err = b.WaitForElement(s.By, s.Value, !s.Optional)
	case Fill:
		err = b.FillInForm(s.By, s.Value, s.Keys)
	case Select:
		ok, err = b.SelectDropdown(s.By, s.Value, s.Option)
	case Click:
		ok, err = b.ClickElement(s.By, s.Value, !s.Optional)
	}
	if err != nil {
		return err
	}
	if !ok {
		if s.Optional {
			glog.Infof("Optional %s on %s %q had no effect", s.Action, s.By, s.Value)
			return nil
		}
		return fmt.Errorf("%w: %s %s %q", ErrStepFailed, s.Action, s.By, s.Value)
	}
	return nil
}
