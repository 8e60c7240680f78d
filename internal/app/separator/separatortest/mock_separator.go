// Package separatortest provides test doubles for separator.Separator.
package separatortest

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"vocal-separator/internal/app/separator"
)

var _ separator.Separator = (*MockSeparator)(nil)

// MockSeparator is a testify mock of separator.Separator.
type MockSeparator struct {
	mock.Mock
}

// NewMockSeparator creates a MockSeparator with no expectations.
func NewMockSeparator() *MockSeparator {
	return &MockSeparator{}
}

// LoadModel implements separator.Separator
func (m *MockSeparator) LoadModel(ctx context.Context, modelFilename string) error {
	args := m.Called(ctx, modelFilename)
	return args.Error(0)
}

// Separate implements separator.Separator
func (m *MockSeparator) Separate(ctx context.Context, inputPath string) ([]string, error) {
	args := m.Called(ctx, inputPath)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

// MockFactory hands out a fixed separator (or error) and records the
// options of every construction.
type MockFactory struct {
	mu        sync.Mutex
	Separator separator.Separator
	Err       error
	Calls     []separator.Options
}

// Factory returns the separator.Factory backed by f.
func (f *MockFactory) Factory() separator.Factory {
	return func(opts separator.Options) (separator.Separator, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Calls = append(f.Calls, opts)
		if f.Err != nil {
			return nil, f.Err
		}
		return f.Separator, nil
	}
}
