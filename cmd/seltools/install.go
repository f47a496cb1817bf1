package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang/glog"
	"github.com/google/go-github/v27/github"
	"github.com/jroehrenbach/selenium-tools/internal/install"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

var (
	installDir     string
	installVersion string
	githubToken    string
)

var installCmd = &cobra.Command{
	Use:   "install driver[@version]...",
	Short: "Download geckodriver or chromedriver",
	Long: `Install downloads browser driver executables into a directory.

Drivers are geckodriver and chromedriver, optionally followed by @version,
for example geckodriver@0.34.0. Drivers given without @version use the
--version flag, and the latest release when that is empty too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var files []install.File
		for _, arg := range args {
			f, err := resolve(ctx, arg)
			if err != nil {
				return err
			}
			files = append(files, f)
		}

		paths, err := install.DownloadAll(ctx, installDir, files)
		if err != nil {
			return err
		}
		for i, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", files[i].Version, p)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().StringVar(&installDir, "dir", ".", "directory to install into")
	installCmd.Flags().StringVar(&installVersion, "version", "", "driver version for drivers given without @version (default: latest)")
	installCmd.Flags().StringVar(&githubToken, "github-token", "", "GitHub token, to avoid API rate limits")
}

// parseDriverArg splits driver[@version]. An argument without a version
// gets defaultVersion.
func parseDriverArg(arg, defaultVersion string) (name, version string) {
	if i := strings.IndexByte(arg, '@'); i >= 0 {
		return arg[:i], arg[i+1:]
	}
	return arg, defaultVersion
}

func resolve(ctx context.Context, arg string) (install.File, error) {
	name, version := parseDriverArg(arg, installVersion)
	switch name {
	case "geckodriver":
		return install.Geckodriver(ctx, githubClient(ctx), version)
	case "chromedriver":
		client, err := install.NewStorageClient(ctx)
		if err != nil {
			return install.File{}, err
		}
		defer client.Close()
		return install.Chromedriver(ctx, client, version)
	}
	return install.File{}, fmt.Errorf("unknown driver %q, want geckodriver or chromedriver", name)
}

func githubClient(ctx context.Context) *github.Client {
	var hc *http.Client
	if githubToken != "" {
		glog.V(1).Info("Authenticating to GitHub with a token")
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: githubToken}))
	}
	return github.NewClient(hc)
}
