package localdriver

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	fileoutput "github.com/shoraid/go-fileoutput"
)

// Storage is a fileoutput.Disk backed by a directory on the local filesystem.
// It has no signed URLs, so files on it are served through the download route.
// It is safe for concurrent use.
type Storage struct {
	root    string // absolute base directory for all file operations
	baseURL string // prefix for public URLs, e.g. "/storage/"
}

var _ fileoutput.Disk = (*Storage)(nil)

// New creates a local disk rooted at root. All file operations are confined
// to root to prevent path traversal.
func New(root, baseURL string) (*Storage, error) {
	if root == "" {
		return nil, fileoutput.ErrInvalidConfig
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve root directory: %v", fileoutput.ErrInvalidConfig, err)
	}

	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create root directory: %v", fileoutput.ErrInvalidConfig, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Storage{
		root:    absRoot,
		baseURL: baseURL,
	}, nil
}

// Root returns the absolute base directory.
func (s *Storage) Root() string {
	return s.root
}

// Exists reports whether a regular file exists at path.
func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return false, nil
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		log.Error().Err(err).Str("path", path).Msg("failed to stat local file")
		return false, fileoutput.ErrInternal
	}

	return !info.IsDir(), nil
}

// Delete removes a single file.
func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", fileoutput.ErrNotFound, path)
		}
		log.Error().Err(err).Str("path", path).Msg("failed to stat local file")
		return fileoutput.ErrInternal
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", fileoutput.ErrInvalidPath, path)
	}

	if err := os.Remove(absPath); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to delete local file")
		return fileoutput.ErrInternal
	}

	return nil
}

// URL returns the public URL for a file.
func (s *Storage) URL(_ context.Context, path string) (string, error) {
	path = filepath.ToSlash(filepath.Clean(path))

	if strings.HasPrefix(path, "/") {
		return path, nil
	}

	return s.baseURL + path, nil
}

// Open opens a file for streaming.
func (s *Storage) Open(ctx context.Context, path string) (*fileoutput.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, fileoutput.ErrNotFound
	}

	f, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fileoutput.ErrNotFound
		}
		log.Error().Err(err).Str("path", path).Msg("failed to open local file")
		return nil, fileoutput.ErrInternal
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, fileoutput.ErrNotFound
	}

	return &fileoutput.Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(absPath))),
		ModTime:     info.ModTime(),
	}, nil
}

// resolvePath validates and resolves a path within the root directory.
func (s *Storage) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", fileoutput.ErrInvalidPath)
	}

	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %s contains relative segments", fileoutput.ErrInvalidPath, path)
		}
	}

	absPath, err := filepath.Abs(filepath.Join(s.root, filepath.Clean("/"+path)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", fileoutput.ErrInvalidPath, err)
	}

	if !strings.HasPrefix(absPath, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", fileoutput.ErrInvalidPath, path)
	}

	return absPath, nil
}
