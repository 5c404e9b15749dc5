package mocks

import (
	"context"
	"fmt"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockMediaAPI implements domain.MediaAPI for testing
type MockMediaAPI struct {
	UploadImagesFunc func(ctx context.Context, files []domain.MediaFile) ([]domain.UploadOutcome, error)
	DeleteFileFunc   func(ctx context.Context, remoteID string) error

	// Deleted records DeleteFile calls when DeleteFileFunc is unset
	Deleted []string
}

// NewMockMediaAPI creates a new MockMediaAPI with default behaviors
func NewMockMediaAPI() *MockMediaAPI {
	return &MockMediaAPI{}
}

var _ domain.MediaAPI = (*MockMediaAPI)(nil)

// UploadImages uploads a batch
func (m *MockMediaAPI) UploadImages(ctx context.Context, files []domain.MediaFile) ([]domain.UploadOutcome, error) {
	if m.UploadImagesFunc != nil {
		return m.UploadImagesFunc(ctx, files)
	}
	outcomes := make([]domain.UploadOutcome, 0, len(files))
	for i, f := range files {
		outcomes = append(outcomes, domain.UploadOutcome{
			Name:     f.Name,
			RemoteID: fmt.Sprintf("mock_remote_%d", i+1),
			URL:      "/media/" + f.Name,
		})
	}
	return outcomes, nil
}

// DeleteFile removes an uploaded file
func (m *MockMediaAPI) DeleteFile(ctx context.Context, remoteID string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, remoteID)
	}
	m.Deleted = append(m.Deleted, remoteID)
	return nil
}
