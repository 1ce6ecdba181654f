package fileoutput

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Manager is the entry point for working with named disks.
// It provides existence checks, deletion, URL generation and streaming
// against a selected disk, falling back to the default one.
type Manager interface {
	// Disk returns a Manager bound to the disk registered under alias.
	// Operations on an unknown alias fail with ErrUnknownDisk.
	Disk(alias string) Manager

	// HasDisk reports whether a disk is registered under alias.
	HasDisk(alias string) bool

	// Name returns the alias of the selected disk.
	Name() string

	// Delete removes a single file.
	Delete(ctx context.Context, path string) error

	// DeleteMany removes multiple files concurrently.
	DeleteMany(ctx context.Context, paths ...string) error

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)

	// Missing returns true if a file does NOT exist (inverse of Exists).
	Missing(ctx context.Context, path string) (bool, error)

	// URL returns the direct URL of a file.
	URL(ctx context.Context, path string) (string, error)

	// SupportsTemporaryURLs reports whether the selected disk can sign URLs.
	SupportsTemporaryURLs() bool

	// TemporaryURL returns a signed URL valid for expiry.
	TemporaryURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// TemporaryURLs returns signed URLs for multiple files concurrently.
	TemporaryURLs(ctx context.Context, paths []string, expiry time.Duration) ([]string, error)

	// Open streams the file contents. The caller must close Object.Body.
	Open(ctx context.Context, path string) (*Object, error)
}

// diskManager delegates calls to the selected disk from disks.
type diskManager struct {
	disks    map[string]Disk // all available disks by alias
	name     string          // alias of the selected disk
	selected Disk            // nil when name is not registered
}

// NewManager creates a Manager with a default disk alias.
// Returns ErrInvalidDefaultDisk if the alias does not exist in disks.
func NewManager(defaultDisk string, disks map[string]Disk) (Manager, error) {
	selected, exists := disks[defaultDisk]
	if !exists || selected == nil {
		return nil, ErrInvalidDefaultDisk
	}

	return &diskManager{
		disks:    disks,
		name:     defaultDisk,
		selected: selected,
	}, nil
}

func (m *diskManager) Disk(alias string) Manager {
	return &diskManager{
		disks:    m.disks,
		name:     alias,
		selected: m.disks[alias],
	}
}

func (m *diskManager) HasDisk(alias string) bool {
	d, ok := m.disks[alias]
	return ok && d != nil
}

func (m *diskManager) Name() string {
	return m.name
}

func (m *diskManager) disk() (Disk, error) {
	if m.selected == nil {
		return nil, ErrUnknownDisk
	}
	return m.selected, nil
}

func (m *diskManager) Delete(ctx context.Context, path string) error {
	d, err := m.disk()
	if err != nil {
		return err
	}
	return d.Delete(ctx, path)
}

// DeleteMany removes files in parallel and returns the first error encountered.
func (m *diskManager) DeleteMany(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, path := range paths {
		g.Go(func() error {
			return m.Delete(ctx, path)
		})
	}

	return g.Wait()
}

func (m *diskManager) Exists(ctx context.Context, path string) (bool, error) {
	d, err := m.disk()
	if err != nil {
		return false, err
	}
	return d.Exists(ctx, path)
}

func (m *diskManager) Missing(ctx context.Context, path string) (bool, error) {
	exists, err := m.Exists(ctx, path)
	if err != nil {
		return false, err
	}

	return !exists, nil
}

func (m *diskManager) URL(ctx context.Context, path string) (string, error) {
	d, err := m.disk()
	if err != nil {
		return "", err
	}
	return d.URL(ctx, path)
}

func (m *diskManager) SupportsTemporaryURLs() bool {
	_, ok := m.selected.(TemporaryURLer)
	return ok
}

func (m *diskManager) TemporaryURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	d, err := m.disk()
	if err != nil {
		return "", err
	}

	signer, ok := d.(TemporaryURLer)
	if !ok {
		return "", ErrTemporaryURLUnsupported
	}

	return signer.TemporaryURL(ctx, path, expiry)
}

func (m *diskManager) TemporaryURLs(ctx context.Context, paths []string, expiry time.Duration) ([]string, error) {
	urls := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			url, err := m.TemporaryURL(ctx, path, expiry)
			if err != nil {
				return err
			}

			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return urls, nil
}

func (m *diskManager) Open(ctx context.Context, path string) (*Object, error) {
	d, err := m.disk()
	if err != nil {
		return nil, err
	}
	return d.Open(ctx, path)
}
