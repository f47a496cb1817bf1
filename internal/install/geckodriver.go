package install

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/blang/semver"
	"github.com/google/go-github/v27/github"
)

const (
	geckodriverOwner = "mozilla"
	geckodriverRepo  = "geckodriver"
)

// geckodriverPlatforms maps GOOS/GOARCH to the suffix of geckodriver
// release assets.
var geckodriverPlatforms = map[string]string{
	"linux/amd64":   "linux64",
	"linux/386":     "linux32",
	"linux/arm64":   "linux-aarch64",
	"darwin/amd64":  "macos",
	"darwin/arm64":  "macos-aarch64",
	"windows/amd64": "win64",
	"windows/386":   "win32",
	"windows/arm64": "win-aarch64",
}

// Geckodriver describes the geckodriver release for this platform. An empty
// version selects the latest release.
func Geckodriver(ctx context.Context, client *github.Client, version string) (File, error) {
	return geckodriver(ctx, client, version, runtime.GOOS, runtime.GOARCH)
}

func geckodriver(ctx context.Context, client *github.Client, version, goos, goarch string) (File, error) {
	platform, ok := geckodriverPlatforms[goos+"/"+goarch]
	if !ok {
		return File{}, fmt.Errorf("geckodriver is not released for %s/%s", goos, goarch)
	}

	var (
		rel *github.RepositoryRelease
		err error
	)
	if version == "" {
		rel, _, err = client.Repositories.GetLatestRelease(ctx, geckodriverOwner, geckodriverRepo)
	} else {
		v, perr := semver.ParseTolerant(version)
		if perr != nil {
			return File{}, fmt.Errorf("invalid geckodriver version %q: %w", version, perr)
		}
		rel, _, err = client.Repositories.GetReleaseByTag(ctx, geckodriverOwner, geckodriverRepo, "v"+v.String())
	}
	if err != nil {
		return File{}, fmt.Errorf("looking up geckodriver release: %w", err)
	}

	tag := rel.GetTagName()
	v, err := semver.ParseTolerant(tag)
	if err != nil {
		return File{}, fmt.Errorf("geckodriver release %q has no semantic version: %w", tag, err)
	}

	binary := "geckodriver"
	if goos == "windows" {
		binary += ".exe"
	}
	for _, asset := range rel.Assets {
		name := asset.GetName()
		if strings.HasSuffix(name, ".asc") || !strings.Contains(name, "-"+platform+".") {
			continue
		}
		return File{
			URL:     asset.GetBrowserDownloadURL(),
			Name:    name,
			Binary:  binary,
			Version: v,
		}, nil
	}
	return File{}, fmt.Errorf("geckodriver %s has no asset for %s", tag, platform)
}
