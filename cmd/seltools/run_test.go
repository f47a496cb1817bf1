package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	seltools "github.com/jroehrenbach/selenium-tools"
	"github.com/spf13/viper"
)

type fakeSession struct {
	calls  []string
	getErr error
	quit   bool
}

func (s *fakeSession) record(format string, args ...interface{}) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *fakeSession) Get(url string) error {
	s.record("get %s", url)
	return s.getErr
}

func (s *fakeSession) WaitForElement(by, value string, required bool) (bool, error) {
	s.record("wait %s=%s", by, value)
	return true, nil
}

func (s *fakeSession) WaitForReadyState() error {
	s.record("ready")
	return nil
}

func (s *fakeSession) FillInForm(by, value, keys string) error {
	s.record("fill %s=%s %q", by, value, keys)
	return nil
}

func (s *fakeSession) SelectDropdown(by, value, option string) (bool, error) {
	s.record("select %s=%s %q", by, value, option)
	return true, nil
}

func (s *fakeSession) ClickElement(by, value string, required bool) (bool, error) {
	s.record("click %s=%s", by, value)
	return true, nil
}

func (s *fakeSession) Quit() error {
	s.quit = true
	return nil
}

// fakeOpen swaps openSession for the duration of the test.
func fakeOpen(t *testing.T, s *fakeSession, openErr error) (browser *string, nopts *int) {
	t.Helper()
	browser, nopts = new(string), new(int)
	old := openSession
	openSession = func(b string, opts ...seltools.Option) (session, error) {
		*browser, *nopts = b, len(opts)
		if openErr != nil {
			return nil, openErr
		}
		return s, nil
	}
	t.Cleanup(func() { openSession = old })
	return browser, nopts
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunScript(t *testing.T) {
	s := &fakeSession{}
	browser, nopts := fakeOpen(t, s, nil)

	if err := runScript(viper.New(), writeScript(t, wikipediaScript)); err != nil {
		t.Fatalf("runScript returned error: %v", err)
	}
	if *browser != seltools.Firefox {
		t.Errorf("session opened for %q, want %q", *browser, seltools.Firefox)
	}
	// Headless and Timeout come from the script.
	if *nopts != 2 {
		t.Errorf("session opened with %d options, want 2", *nopts)
	}
	want := []string{
		"get https://www.wikipedia.org/",
		`select id=searchLanguage "English"`,
		`fill id=searchInput "Selenium"`,
		"click data-jsl10n=search-input-button",
	}
	if diff := cmp.Diff(want, s.calls); diff != "" {
		t.Errorf("session calls differ (-want +got):\n%s", diff)
	}
	if !s.quit {
		t.Error("session was not quit")
	}
}

func TestRunScriptErrors(t *testing.T) {
	t.Run("failing step still quits", func(t *testing.T) {
		boom := errors.New("unreachable")
		s := &fakeSession{getErr: boom}
		fakeOpen(t, s, nil)
		if err := runScript(viper.New(), writeScript(t, wikipediaScript)); !errors.Is(err, boom) {
			t.Errorf("runScript error = %v, want %v", err, boom)
		}
		if len(s.calls) != 1 {
			t.Errorf("session saw %d calls, want 1", len(s.calls))
		}
		if !s.quit {
			t.Error("session was not quit after a failing step")
		}
	})

	t.Run("session does not start", func(t *testing.T) {
		boom := errors.New("geckodriver not found")
		s := &fakeSession{}
		fakeOpen(t, s, boom)
		if err := runScript(viper.New(), writeScript(t, wikipediaScript)); !errors.Is(err, boom) {
			t.Errorf("runScript error = %v, want %v", err, boom)
		}
		if s.quit {
			t.Error("Quit called on a session that never started")
		}
	})

	t.Run("missing script", func(t *testing.T) {
		s := &fakeSession{}
		browser, _ := fakeOpen(t, s, nil)
		if err := runScript(viper.New(), filepath.Join(t.TempDir(), "none.yaml")); err == nil {
			t.Error("runScript returned nil error for a missing script")
		}
		if *browser != "" {
			t.Error("session opened for a missing script")
		}
	})
}

func TestRootFlagsBound(t *testing.T) {
	if got := viper.GetDuration("timeout"); got != seltools.DefaultTimeout {
		t.Errorf("viper timeout = %v, want the --timeout default %v", got, seltools.DefaultTimeout)
	}
	if got := viper.GetString("browser"); got != seltools.Firefox {
		t.Errorf("viper browser = %q, want the --browser default %q", got, seltools.Firefox)
	}
}
