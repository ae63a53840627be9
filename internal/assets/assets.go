// Package assets answers whether a static asset such as a poster image
// exists, either on local disk or in an S3-compatible bucket.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Locator reports whether a slash-separated asset name exists.
type Locator interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// Opener streams asset contents. Open fails with an error matching
// fs.ErrNotExist for a missing asset.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadSeekCloser, time.Time, error)
}

// ErrInvalidName is returned for names that would escape the asset root.
var ErrInvalidName = errors.New("assets: invalid name")

// Dir locates regular files below a directory on disk.
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) Dir {
	return Dir{Root: root}
}

// Exists stats name below the root. Directories do not count.
func (d Dir) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	clean, err := cleanName(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(d.Root, filepath.FromSlash(clean)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", clean, err)
	}
	return info.Mode().IsRegular(), nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.Contains(name, `\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return path.Clean(name), nil
}
