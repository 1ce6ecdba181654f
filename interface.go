package fileoutput

import (
	"context"
	"io"
	"time"
)

// Disk defines the contract for a named storage backend (S3, local, etc.).
// Implementations must check existence, delete, build public URLs
// and stream object contents.
type Disk interface {
	// Exists checks whether a file with the given path exists on the disk.
	Exists(ctx context.Context, path string) (exists bool, err error)

	// Delete removes a file identified by its path.
	Delete(ctx context.Context, path string) error

	// URL returns a direct URL for the file.
	// Usage: embed public media or link to it without signing.
	URL(ctx context.Context, path string) (url string, err error)

	// Open returns the object contents. The caller must close Object.Body.
	Open(ctx context.Context, path string) (*Object, error)
}

// TemporaryURLer is implemented by disks that can issue time-limited signed URLs.
// Disks without it are served through the download route.
type TemporaryURLer interface {
	TemporaryURL(ctx context.Context, path string, expiry time.Duration) (url string, err error)
}

// Object is an opened storage object.
type Object struct {
	Body        io.ReadCloser
	Size        int64 // -1 when unknown
	ContentType string
	ModTime     time.Time
}
