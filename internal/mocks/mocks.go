package mocks

import (
	"context"
	"io"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockImageStore is a mock implementation of the image store
type MockImageStore struct {
	mock.Mock
}

// UploadImage mocks the UploadImage method. The body is read so callers see it consumed.
func (m *MockImageStore) UploadImage(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	args := m.Called(ctx, key, contentType, string(data))
	return args.String(0), args.Error(1)
}

var _ service.IImageStore = (*MockImageStore)(nil)
