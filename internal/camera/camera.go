package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/orgball2608/joynme/internal/domain"
)

var ErrUnsupportedURI = errors.New("unsupported image uri")

//go:generate go run go.uber.org/mock/mockgen -source=camera.go -destination=mocks/mock.go
type Device interface {
	// PermissionStatus reports the current camera permission without prompting.
	PermissionStatus(ctx context.Context) (domain.Permission, error)

	// RequestPermission prompts the user and returns the answer.
	RequestPermission(ctx context.Context) (domain.Permission, error)

	// Ready reports whether the camera finished initialising.
	Ready() bool

	// Capture takes a picture with the given camera.
	Capture(ctx context.Context, facing domain.Facing) (domain.CapturedImage, error)
}

// Open returns the bytes behind a captured image uri. Plain paths and file:// uris
// are supported.
func Open(uri string) (io.ReadCloser, error) {
	path, err := Path(uri)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open captured image: %w", err)
	}
	return f, nil
}

// Path resolves a captured image uri to a local file path.
func Path(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		if uri == "" {
			return "", ErrUnsupportedURI
		}
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedURI, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: scheme %q", ErrUnsupportedURI, u.Scheme)
	}
	return u.Path, nil
}

// FileURI turns a local path into a file:// uri.
func FileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}
