package seltools

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
)

// Driver is a WebDriver session with helpers for locating, waiting on,
// filling in and clicking elements. All methods of the underlying
// selenium.WebDriver remain available.
type Driver struct {
	selenium.WebDriver

	timeout  time.Duration
	interval time.Duration
	service  stopper
}

// New wraps an open WebDriver session. Only the Timeout and PollInterval
// options have an effect here.
func New(wd selenium.WebDriver, opts ...Option) (*Driver, error) {
	c := newConfig(Firefox)
	if err := c.apply(opts); err != nil {
		return nil, err
	}
	return &Driver{WebDriver: wd, timeout: c.timeout, interval: c.interval}, nil
}

// NewFirefox starts geckodriver and opens a Firefox session. The browser is
// headless unless Headless(false) is passed.
func NewFirefox(opts ...Option) (*Driver, error) {
	return open(Firefox, opts)
}

// NewChrome starts chromedriver and opens a Chrome session.
func NewChrome(opts ...Option) (*Driver, error) {
	return open(Chrome, opts)
}

// Open opens a session for the named browser, Firefox or Chrome.
func Open(browser string, opts ...Option) (*Driver, error) {
	switch browser {
	case Firefox, Chrome:
		return open(browser, opts)
	}
	return nil, fmt.Errorf("unsupported browser %q", browser)
}

func open(browser string, opts []Option) (*Driver, error) {
	c := newConfig(browser)
	if err := c.apply(opts); err != nil {
		return nil, err
	}
	caps, err := c.capabilities()
	if err != nil {
		return nil, err
	}

	executor := c.remoteURL
	var svc stopper
	if executor == "" {
		svc, executor, err = startService(c)
		if err != nil {
			return nil, err
		}
	}

	wd, err := newRemote(caps, executor)
	if err != nil {
		if svc != nil {
			if serr := svc.Stop(); serr != nil {
				glog.Warningf("Stopping %s: %v", c.driverPath, serr)
			}
		}
		return nil, fmt.Errorf("opening %s session at %s: %w", browser, executor, err)
	}
	glog.Infof("Opened %s session %s", browser, wd.SessionID())

	return &Driver{
		WebDriver: wd,
		timeout:   c.timeout,
		interval:  c.interval,
		service:   svc,
	}, nil
}

// Timeout returns how long waits poll before giving up.
func (d *Driver) Timeout() time.Duration {
	return d.timeout
}

// Quit ends the session and stops the driver process if this Driver started
// one.
func (d *Driver) Quit() error {
	err := d.WebDriver.Quit()
	if d.service != nil {
		if serr := d.service.Stop(); serr != nil && err == nil {
			err = serr
		}
		d.service = nil
	}
	return err
}
