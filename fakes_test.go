package seltools

import (
	"errors"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

// fakeElement implements the parts of selenium.WebElement the helpers use.
// Calling any other method panics on the nil embedded interface.
type fakeElement struct {
	selenium.WebElement

	tag      string
	text     string
	attrs    map[string]string
	selected bool
	toggle   bool // clicking flips selected, as in a multi-select
	clickErr error
	options  []*fakeElement

	clicks  int
	cleared bool
	keys    string
}

func (e *fakeElement) Click() error {
	e.clicks++
	if e.clickErr != nil {
		return e.clickErr
	}
	if e.tag == "option" {
		if e.toggle {
			e.selected = !e.selected
		} else {
			e.selected = true
		}
	}
	return nil
}

func (e *fakeElement) Clear() error {
	e.cleared = true
	e.keys = ""
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.keys += keys
	return nil
}

func (e *fakeElement) TagName() (string, error) { return e.tag, nil }

func (e *fakeElement) Text() (string, error) { return e.text, nil }

func (e *fakeElement) IsSelected() (bool, error) { return e.selected, nil }

func (e *fakeElement) GetAttribute(name string) (string, error) {
	v, ok := e.attrs[name]
	if !ok {
		return "", errors.New("nil return value")
	}
	return v, nil
}

func (e *fakeElement) FindElements(by, value string) ([]selenium.WebElement, error) {
	if by != selenium.ByTagName || value != "option" {
		return nil, fmt.Errorf("fakeElement: unsupported lookup %s %q", by, value)
	}
	var out []selenium.WebElement
	for _, o := range e.options {
		out = append(out, o)
	}
	return out, nil
}

func newOptions(multi bool, texts ...string) []*fakeElement {
	var opts []*fakeElement
	for i, t := range texts {
		opts = append(opts, &fakeElement{
			tag:    "option",
			text:   t,
			attrs:  map[string]string{"value": fmt.Sprintf("v%d", i)},
			toggle: multi,
		})
	}
	return opts
}

type lookup struct{ by, value string }

// fakeDriver implements the parts of selenium.WebDriver the helpers use.
type fakeDriver struct {
	selenium.WebDriver

	elements map[lookup][]*fakeElement
	// hiddenFor is the number of FindElements calls that report nothing
	// before elements become visible.
	hiddenFor int
	findErr   error
	getErr    error

	readyStates []string
	scriptErr   error

	finds   []lookup
	visited []string
	closed  bool
	quit    bool
}

func (d *fakeDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	d.finds = append(d.finds, lookup{by, value})
	if d.findErr != nil {
		return nil, d.findErr
	}
	if len(d.finds) <= d.hiddenFor {
		return nil, &selenium.Error{Err: "no such element", HTTPCode: 404}
	}
	var out []selenium.WebElement
	for _, e := range d.elements[lookup{by, value}] {
		out = append(out, e)
	}
	return out, nil
}

func (d *fakeDriver) Get(url string) error {
	if d.getErr != nil {
		return d.getErr
	}
	d.visited = append(d.visited, url)
	return nil
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDriver) Quit() error {
	d.quit = true
	return nil
}

func (d *fakeDriver) SessionID() string { return "fake-session" }

func (d *fakeDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	if d.scriptErr != nil {
		return nil, d.scriptErr
	}
	if len(d.readyStates) == 0 {
		return "complete", nil
	}
	state := d.readyStates[0]
	if len(d.readyStates) > 1 {
		d.readyStates = d.readyStates[1:]
	}
	return state, nil
}

// WaitWithTimeoutAndInterval mirrors the polling loop of the real client.
func (d *fakeDriver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		done, err := condition(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if elapsed := time.Since(start); elapsed > timeout {
			return fmt.Errorf("timeout after %v", elapsed)
		}
		time.Sleep(interval)
	}
}

type fakeService struct {
	stopped bool
	err     error
}

func (s *fakeService) Stop() error {
	s.stopped = true
	return s.err
}

func newTestDriver(fd *fakeDriver) *Driver {
	return &Driver{WebDriver: fd, timeout: 50 * time.Millisecond, interval: time.Millisecond}
}
