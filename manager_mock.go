package fileoutput

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockManager is a testify mock implementing fileoutput.Manager
type MockManager struct {
	mock.Mock
}

var _ Manager = (*MockManager)(nil)

func (m *MockManager) Disk(alias string) Manager {
	args := m.Called(alias)
	if mgr, ok := args.Get(0).(Manager); ok {
		return mgr
	}
	return nil
}

func (m *MockManager) HasDisk(alias string) bool {
	args := m.Called(alias)
	return args.Bool(0)
}

func (m *MockManager) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockManager) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockManager) DeleteMany(ctx context.Context, paths ...string) error {
	callArgs := append([]any{ctx}, stringSliceToInterface(paths)...)
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockManager) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockManager) Missing(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockManager) URL(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockManager) SupportsTemporaryURLs() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockManager) TemporaryURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, path, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockManager) TemporaryURLs(ctx context.Context, paths []string, expiry time.Duration) ([]string, error) {
	args := m.Called(ctx, paths, expiry)
	if urls, ok := args.Get(0).([]string); ok {
		return urls, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockManager) Open(ctx context.Context, path string) (*Object, error) {
	args := m.Called(ctx, path)
	if obj, ok := args.Get(0).(*Object); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func stringSliceToInterface(slice []string) []any {
	res := make([]any, len(slice))
	for i, v := range slice {
		res[i] = v
	}
	return res
}
