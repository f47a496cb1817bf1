// Package install downloads the browser driver executables a Driver starts.
package install

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// File describes how to download a driver archive from the Web.
type File struct {
	URL  string
	Name string
	// Hash is the hex encoded digest of the archive. Empty skips verification.
	Hash     string
	HashType string // md5 or sha256, the default
	// Binary is the name of the executable inside the archive.
	Binary  string
	Version semver.Version
}

func (f File) archivePath(dir string) string {
	return filepath.Join(dir, f.Name)
}

func (f File) binaryPath(dir string) string {
	return filepath.Join(dir, f.Binary)
}

var errNoBinary = errors.New("executable not found in archive")

// Download fetches f into dir, unless a file with the expected hash is
// already there, and extracts the executable next to it. It returns the path
// of the executable.
func Download(ctx context.Context, f File, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if f.Hash != "" && fileSameHash(f, dir) {
		glog.Infof("Skipping file %q which has already been downloaded.", f.Name)
	} else {
		glog.Infof("Downloading %q from %q", f.Name, f.URL)
		if err := downloadFile(ctx, f, dir); err != nil {
			return "", err
		}
	}

	if err := extract(f, dir); err != nil {
		return "", err
	}
	return f.binaryPath(dir), nil
}

// DownloadAll downloads files concurrently into dir and returns the paths of
// their executables in the same order.
func DownloadAll(ctx context.Context, dir string, files []File) ([]string, error) {
	paths := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			p, err := Download(ctx, file, dir)
			if err != nil {
				return fmt.Errorf("error handling %s: %w", file.Name, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func newHash(hashType string) hash.Hash {
	if strings.ToLower(hashType) == "md5" {
		return md5.New()
	}
	return sha256.New()
}

func downloadFile(ctx context.Context, f File, dir string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: error downloading %q: %w", f.Name, f.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: error downloading %q: %s", f.Name, f.URL, resp.Status)
	}

	out, err := os.Create(f.archivePath(dir))
	if err != nil {
		return fmt.Errorf("error creating %q: %w", f.archivePath(dir), err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing %q: %w", f.archivePath(dir), closeErr)
		}
	}()

	h := newHash(f.HashType)
	if _, err := io.Copy(io.MultiWriter(out, h), resp.Body); err != nil {
		return fmt.Errorf("%s: error downloading %q: %w", f.Name, f.URL, err)
	}
	if f.Hash == "" {
		return nil
	}
	if sum := hex.EncodeToString(h.Sum(nil)); sum != f.Hash {
		return fmt.Errorf("%s: got hash %q, want %q", f.Name, sum, f.Hash)
	}
	return nil
}

func fileSameHash(f File, dir string) bool {
	in, err := os.Open(f.archivePath(dir))
	if err != nil {
		return false
	}
	defer in.Close()

	h := newHash(f.HashType)
	if _, err := io.Copy(h, in); err != nil {
		return false
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if sum != f.Hash {
		glog.Warningf("File %q: got hash %q, expect hash %q", f.Name, sum, f.Hash)
		return false
	}
	return true
}

// extract writes the executable out of the downloaded archive. Only the
// entry named f.Binary is written, whatever directory it sits in.
func extract(f File, dir string) error {
	name := f.Name
	switch {
	case strings.HasSuffix(name, ".zip"):
		return extractZip(f, dir)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return extractTarGz(f, dir)
	}
	// A bare executable. It is copied, not renamed, so the download stays in
	// place for the hash check of the next call.
	if name == f.Binary {
		return os.Chmod(f.binaryPath(dir), 0755)
	}
	in, err := os.Open(f.archivePath(dir))
	if err != nil {
		return err
	}
	defer in.Close()
	return writeExecutable(f.binaryPath(dir), in)
}

func extractZip(f File, dir string) error {
	glog.Infof("Unzipping %q", f.archivePath(dir))
	r, err := zip.OpenReader(f.archivePath(dir))
	if err != nil {
		return fmt.Errorf("error unzipping %q: %w", f.Name, err)
	}
	defer r.Close()

	for _, entry := range r.File {
		if entry.FileInfo().IsDir() || path.Base(entry.Name) != f.Binary {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("error unzipping %q: %w", f.Name, err)
		}
		defer rc.Close()
		return writeExecutable(f.binaryPath(dir), rc)
	}
	return fmt.Errorf("%s: %w: %s", f.Name, errNoBinary, f.Binary)
}

func extractTarGz(f File, dir string) error {
	glog.Infof("Unpacking %q", f.archivePath(dir))
	in, err := os.Open(f.archivePath(dir))
	if err != nil {
		return err
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("error unpacking %q: %w", f.Name, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error unpacking %q: %w", f.Name, err)
		}
		if hdr.Typeflag != tar.TypeReg || path.Base(hdr.Name) != f.Binary {
			continue
		}
		return writeExecutable(f.binaryPath(dir), tr)
	}
	return fmt.Errorf("%s: %w: %s", f.Name, errNoBinary, f.Binary)
}

func writeExecutable(dst string, r io.Reader) (err error) {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("error writing %q: %w", dst, err)
	}
	return nil
}
