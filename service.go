package seltools

import (
	"fmt"
	"net"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
)

// stopper is the part of *selenium.Service a Driver needs to shut down the
// process it started.
type stopper interface {
	Stop() error
}

// Replaced in tests.
var (
	newRemote = selenium.NewRemote

	startDriverService = func(browser, path string, port int, opts ...selenium.ServiceOption) (stopper, error) {
		var (
			s   *selenium.Service
			err error
		)
		switch browser {
		case Chrome:
			s, err = selenium.NewChromeDriverService(path, port, opts...)
		default:
			s, err = selenium.NewGeckoDriverService(path, port, opts...)
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

// startService launches the local driver executable and returns the URL of
// its WebDriver endpoint.
func startService(c *config) (stopper, string, error) {
	port := c.port
	if port == 0 {
		p, err := pickUnusedPort()
		if err != nil {
			return nil, "", fmt.Errorf("picking a port for %s: %w", c.driverPath, err)
		}
		port = p
	}

	var opts []selenium.ServiceOption
	if c.output != nil {
		opts = append(opts, selenium.Output(c.output))
	}
	if c.frameBuffer {
		opts = append(opts, selenium.StartFrameBuffer())
	}

	glog.Infof("Starting %s on port %d", c.driverPath, port)
	svc, err := startDriverService(c.browser, c.driverPath, port, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("starting %s: %w", c.driverPath, err)
	}
	return svc, executorURL(c.browser, port), nil
}

// executorURL matches the URL prefix each driver service is started with.
func executorURL(browser string, port int) string {
	if browser == Chrome {
		return fmt.Sprintf("http://localhost:%d/wd/hub", port)
	}
	return fmt.Sprintf("http://localhost:%d", port)
}

func pickUnusedPort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, err
	}
	return port, nil
}
