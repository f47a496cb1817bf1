package install

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path"
	"runtime"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/blang/semver"
	"google.golang.org/api/option"
)

// The legacy chromedriver bucket. It holds releases up to Chrome 114.
const chromedriverBucket = "chromedriver"

var chromedriverPlatforms = map[string]string{
	"linux/amd64":   "linux64",
	"darwin/amd64":  "mac64",
	"darwin/arm64":  "mac_arm64",
	"windows/amd64": "win32",
	"windows/386":   "win32",
}

// NewStorageClient returns an unauthenticated client for the public
// chromedriver bucket.
func NewStorageClient(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx, option.WithHTTPClient(http.DefaultClient))
	if err != nil {
		return nil, fmt.Errorf("cannot create a storage client for downloading chromedriver: %w", err)
	}
	return client, nil
}

// bucket is the part of a storage bucket Chromedriver reads.
type bucket interface {
	read(ctx context.Context, name string) ([]byte, error)
	attrs(ctx context.Context, name string) (*storage.ObjectAttrs, error)
}

type gcsBucket struct {
	*storage.BucketHandle
}

func (b gcsBucket) read(ctx context.Context, name string) ([]byte, error) {
	r, err := b.Object(name).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (b gcsBucket) attrs(ctx context.Context, name string) (*storage.ObjectAttrs, error) {
	return b.Object(name).Attrs(ctx)
}

// Chromedriver describes the chromedriver release for this platform. An
// empty version selects the one named in the bucket's LATEST_RELEASE file.
func Chromedriver(ctx context.Context, client *storage.Client, version string) (File, error) {
	return chromedriver(ctx, gcsBucket{client.Bucket(chromedriverBucket)}, version, runtime.GOOS, runtime.GOARCH)
}

func chromedriver(ctx context.Context, bkt bucket, version, goos, goarch string) (File, error) {
	gcsPath := fmt.Sprintf("gs://%s/", chromedriverBucket)
	platform, ok := chromedriverPlatforms[goos+"/"+goarch]
	if !ok {
		return File{}, fmt.Errorf("chromedriver is not released for %s/%s", goos, goarch)
	}

	if version == "" {
		data, err := bkt.read(ctx, "LATEST_RELEASE")
		if err != nil {
			return File{}, fmt.Errorf("cannot read from %sLATEST_RELEASE file: %w", gcsPath, err)
		}
		version = strings.TrimSpace(string(data))
	}
	// Chromedriver versions have four components; semver keeps the first three.
	parts := strings.SplitN(version, ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.ParseTolerant(strings.Join(parts, "."))
	if err != nil {
		return File{}, fmt.Errorf("invalid chromedriver version %q: %w", version, err)
	}

	name := "chromedriver_" + platform + ".zip"
	object := path.Join(version, name)
	attrs, err := bkt.attrs(ctx, object)
	if err != nil {
		return File{}, fmt.Errorf("cannot get the chromedriver package %s%s attrs: %w", gcsPath, object, err)
	}

	binary := "chromedriver"
	if goos == "windows" {
		binary += ".exe"
	}
	return File{
		URL:      attrs.MediaLink,
		Name:     name,
		Hash:     hex.EncodeToString(attrs.MD5),
		HashType: "md5",
		Binary:   binary,
		Version:  v,
	}, nil
}

