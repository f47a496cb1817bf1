package seltools

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
	"github.com/tebeka/selenium/log"
)

// Browsers a Driver can be opened for.
const (
	Firefox = "firefox"
	Chrome  = "chrome"
)

const (
	// DefaultTimeout is how long WaitForElement polls before giving up.
	DefaultTimeout = 10 * time.Second
	// DefaultPollInterval is the delay between two polls of a wait condition.
	DefaultPollInterval = 500 * time.Millisecond
)

// Option configures a Driver.
type Option func(*config) error

type config struct {
	browser    string
	headless   bool
	driverPath string
	port       int
	remoteURL  string

	timeout  time.Duration
	interval time.Duration

	output      io.Writer
	frameBuffer bool

	binary     string
	args       []string
	profileDir string
	logLevel   log.Level
	extraCaps  selenium.Capabilities
}

func newConfig(browser string) *config {
	c := &config{
		browser:  browser,
		headless: true,
		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
	}
	switch browser {
	case Chrome:
		c.driverPath = "chromedriver"
	default:
		c.driverPath = "geckodriver"
	}
	return c
}

func (c *config) apply(opts []Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Headless controls whether the browser runs without a window. It defaults
// to true.
func Headless(headless bool) Option {
	return func(c *config) error {
		c.headless = headless
		return nil
	}
}

// DriverPath sets the path to the geckodriver or chromedriver executable.
// Without it the executable is looked up by name in PATH.
func DriverPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.New("driver path must not be empty")
		}
		c.driverPath = path
		return nil
	}
}

// Port sets the port the local driver process listens on. Zero picks an
// unused port.
func Port(port int) Option {
	return func(c *config) error {
		if port < 0 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}
		c.port = port
		return nil
	}
}

// RemoteURL connects to an already running WebDriver server, such as a
// Selenium grid, instead of starting a local driver process.
func RemoteURL(addr string) Option {
	return func(c *config) error {
		u, err := url.Parse(addr)
		if err != nil {
			return fmt.Errorf("invalid remote URL %q: %w", addr, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("remote URL %q must use http or https", addr)
		}
		c.remoteURL = addr
		return nil
	}
}

// Timeout sets how long WaitForElement and WaitForReadyState poll.
func Timeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	}
}

// PollInterval sets the delay between two polls of a wait condition.
func PollInterval(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", d)
		}
		c.interval = d
		return nil
	}
}

// Output sends the driver process's stdout and stderr to w.
func Output(w io.Writer) Option {
	return func(c *config) error {
		c.output = w
		return nil
	}
}

// FrameBuffer starts an X virtual frame buffer for the browser to render in.
// It is only useful for non-headless runs on machines without a display.
func FrameBuffer() Option {
	return func(c *config) error {
		c.frameBuffer = true
		return nil
	}
}

// Binary selects the browser executable to launch.
func Binary(path string) Option {
	return func(c *config) error {
		c.binary = path
		return nil
	}
}

// Args appends command-line arguments for the browser.
func Args(args ...string) Option {
	return func(c *config) error {
		c.args = append(c.args, args...)
		return nil
	}
}

// Profile uses the profile stored in dir. Firefox receives it as a zipped
// profile; Chrome uses it as its user data directory.
func Profile(dir string) Option {
	return func(c *config) error {
		c.profileDir = dir
		return nil
	}
}

// BrowserLogLevel requests browser console logs at the given level. They are
// read back with the Log method of the underlying WebDriver.
func BrowserLogLevel(level log.Level) Option {
	return func(c *config) error {
		c.logLevel = level
		return nil
	}
}

// Capability sets a raw WebDriver capability. It takes precedence over the
// values derived from the other options.
func Capability(key string, value interface{}) Option {
	return func(c *config) error {
		if c.extraCaps == nil {
			c.extraCaps = make(selenium.Capabilities)
		}
		c.extraCaps[key] = value
		return nil
	}
}

func (c *config) capabilities() (selenium.Capabilities, error) {
	caps := selenium.Capabilities{"browserName": c.browser}
	args := append([]string(nil), c.args...)

	switch c.browser {
	case Firefox:
		f := firefox.Capabilities{Binary: c.binary}
		if c.headless {
			args = append(args, "-headless")
		}
		f.Args = args
		if c.profileDir != "" {
			if err := f.SetProfile(c.profileDir); err != nil {
				return nil, fmt.Errorf("loading firefox profile %q: %w", c.profileDir, err)
			}
		}
		caps.AddFirefox(f)
	case Chrome:
		if c.headless {
			args = append(args, "--headless")
		}
		if c.profileDir != "" {
			args = append(args, "--user-data-dir="+c.profileDir)
		}
		caps.AddChrome(chrome.Capabilities{Path: c.binary, Args: args, W3C: true})
	default:
		return nil, fmt.Errorf("unsupported browser %q", c.browser)
	}

	if c.logLevel != "" {
		caps.SetLogLevel(log.Browser, c.logLevel)
	}
	for k, v := range c.extraCaps {
		caps[k] = v
	}
	return caps, nil
}
