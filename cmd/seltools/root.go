package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/golang/glog"
	seltools "github.com/jroehrenbach/selenium-tools"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tebeka/selenium/sauce"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seltools",
	Short: "Drive a browser through scripted steps",
	Long: `seltools opens a Firefox or Chrome session through geckodriver or
chromedriver and runs a list of steps from a config file: navigate, wait for
elements, fill in forms, select dropdown options and click.

Elements are looked up by strategy and value. Besides the WebDriver
strategies ("id", "css selector", "xpath", ...) the strategy "text" matches on
contained text and any other strategy is taken as an attribute name.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its flags from the standard flag set.
		if err := flag.CommandLine.Parse(nil); err != nil {
			return err
		}
		seltools.SetDebug(viper.GetBool("debug"))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seltools.yaml)")
	pf.String("browser", seltools.Firefox, "browser to drive: firefox or chrome")
	pf.Bool("headless", true, "run the browser without a window")
	pf.String("driver-path", "", "path to geckodriver or chromedriver (default: looked up in PATH)")
	pf.Duration("timeout", seltools.DefaultTimeout, "how long to wait for elements")
	pf.String("remote", "", "URL of a running WebDriver server to use instead of a local driver")
	pf.String("sauce-user", "", "Sauce Labs user name; runs the session on Sauce Labs")
	pf.String("sauce-key", "", "Sauce Labs access key")
	pf.Bool("debug", false, "log WebDriver requests and responses")
	pf.AddGoFlagSet(flag.CommandLine)
	if err := viper.BindPFlags(pf); err != nil {
		glog.Warningf("Binding flags to the config: %v", err)
	}

	rootCmd.AddCommand(runCmd, installCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			glog.Warningf("Cannot find home directory: %v", err)
		} else {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".seltools")
	}

	viper.SetEnvPrefix("seltools")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		glog.Infof("Using config file %s", viper.ConfigFileUsed())
	}
}

// driverOptions turns the settings in v into options for seltools.Open.
func driverOptions(v *viper.Viper) ([]seltools.Option, error) {
	opts := []seltools.Option{
		seltools.Headless(v.GetBool("headless")),
	}
	if d := v.GetDuration("timeout"); d != 0 {
		opts = append(opts, seltools.Timeout(d))
	}
	if p := v.GetString("driver-path"); p != "" {
		opts = append(opts, seltools.DriverPath(p))
	}
	if b := v.GetString("binary"); b != "" {
		opts = append(opts, seltools.Binary(b))
	}
	if args := v.GetStringSlice("args"); len(args) > 0 {
		opts = append(opts, seltools.Args(args...))
	}
	if p := v.GetString("profile"); p != "" {
		opts = append(opts, seltools.Profile(p))
	}

	remote := v.GetString("remote")
	if user := v.GetString("sauce-user"); user != "" {
		if remote != "" {
			return nil, fmt.Errorf("--remote and --sauce-user are mutually exclusive")
		}
		key := v.GetString("sauce-key")
		if key == "" {
			return nil, fmt.Errorf("--sauce-user needs --sauce-key")
		}
		remote = sauce.Addr(user, key)

		caps := sauce.Capabilities{
			Browser:  v.GetString("browser"),
			TestName: v.GetString("name"),
		}
		m, err := caps.ToMap()
		if err != nil {
			return nil, fmt.Errorf("building Sauce Labs capabilities: %w", err)
		}
		for k, val := range m {
			opts = append(opts, seltools.Capability(k, val))
		}
	}
	if remote != "" {
		opts = append(opts, seltools.RemoteURL(remote))
	}
	return opts, nil
}
