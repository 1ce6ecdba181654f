package fileoutput

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockDisk is a testify.Mock implementation of Disk.
type MockDisk struct {
	mock.Mock
}

var _ Disk = (*MockDisk)(nil)

func (m *MockDisk) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockDisk) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockDisk) URL(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockDisk) Open(ctx context.Context, path string) (*Object, error) {
	args := m.Called(ctx, path)
	if obj, ok := args.Get(0).(*Object); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSigningDisk is a MockDisk that also implements TemporaryURLer.
type MockSigningDisk struct {
	MockDisk
}

var _ TemporaryURLer = (*MockSigningDisk)(nil)

func (m *MockSigningDisk) TemporaryURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, path, expiry)
	return args.String(0), args.Error(1)
}
