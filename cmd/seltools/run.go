package main

import (
	"fmt"

	"github.com/golang/glog"
	seltools "github.com/jroehrenbach/selenium-tools"
	"github.com/jroehrenbach/selenium-tools/internal/script"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var _ script.Browser = (*seltools.Driver)(nil)

// session is a browser session steps run in.
type session interface {
	script.Browser
	Quit() error
}

// openSession is swapped in tests.
var openSession = func(browser string, opts ...seltools.Option) (session, error) {
	d, err := seltools.Open(browser, opts...)
	if err != nil {
		return nil, err
	}
	return d, nil
}

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run the steps of a script",
	Long: `Run opens a browser session and runs the steps listed under "steps" in
the script file, or in the config file when no script is given:

  steps:
    - action: get
      url: https://www.wikipedia.org/
    - action: select
      by: id
      value: searchLanguage
      option: English
    - action: fill
      by: id
      value: searchInput
      keys: Selenium
    - action: click
      by: data-jsl10n
      value: search-input-button`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		return runScript(viper.GetViper(), path)
	},
}

// runScript merges the script at path, if any, into v and runs its steps in
// a new session.
func runScript(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("reading script %s: %w", path, err)
		}
	}

	steps, err := loadSteps(v)
	if err != nil {
		return err
	}
	opts, err := driverOptions(v)
	if err != nil {
		return err
	}

	s, err := openSession(v.GetString("browser"), opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Quit(); err != nil {
			glog.Warningf("Ending session: %v", err)
		}
	}()

	if err := script.Run(s, steps); err != nil {
		return err
	}
	glog.Infof("Ran %d steps", len(steps))
	return nil
}

func loadSteps(v *viper.Viper) ([]script.Step, error) {
	var steps []script.Step
	if err := v.UnmarshalKey("steps", &steps); err != nil {
		return nil, fmt.Errorf("decoding steps: %w", err)
	}
	if err := script.Validate(steps); err != nil {
		return nil, err
	}
	return steps, nil
}
