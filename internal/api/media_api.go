package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/url"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MediaClient implements domain.MediaAPI against the upload endpoints
type MediaClient struct {
	client *Client
}

// NewMediaClient creates the media sub-client
func NewMediaClient(client *Client) *MediaClient {
	return &MediaClient{client: client}
}

var _ domain.MediaAPI = (*MediaClient)(nil)

type uploadedFile struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type uploadFailure struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

type uploadResponse struct {
	Files  []uploadedFile  `json:"files"`
	Failed []uploadFailure `json:"failed"`
}

// UploadImages posts a batch of images as one multipart request and maps the
// response back to per-file outcomes, matched by file name.
func (m *MediaClient) UploadImages(ctx context.Context, files []domain.MediaFile) ([]domain.UploadOutcome, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("images", f.Name)
		if err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	var resp uploadResponse
	if err := m.client.upload(ctx, "/upload/car-images/", writer.FormDataContentType(), &buf, &resp, reqOptions{auth: true}); err != nil {
		return nil, err
	}

	byName := make(map[string]uploadedFile, len(resp.Files))
	for _, f := range resp.Files {
		byName[f.FileName] = f
	}
	failures := make(map[string]string, len(resp.Failed))
	for _, f := range resp.Failed {
		failures[f.FileName] = f.Error
	}

	outcomes := make([]domain.UploadOutcome, 0, len(files))
	for _, f := range files {
		outcome := domain.UploadOutcome{Name: f.Name}
		switch {
		case byName[f.Name].ID != "":
			uploaded := byName[f.Name]
			outcome.RemoteID = uploaded.ID
			outcome.URL = uploaded.URL
			outcome.ThumbnailURL = uploaded.ThumbnailURL
		case failures[f.Name] != "":
			outcome.Err = fmt.Errorf("upload %s: %s", f.Name, failures[f.Name])
		default:
			outcome.Err = fmt.Errorf("upload %s: no result returned", f.Name)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// DeleteFile removes a previously uploaded file by its remote ID
func (m *MediaClient) DeleteFile(ctx context.Context, remoteID string) error {
	return m.client.delete(ctx, "/upload/files/"+url.PathEscape(remoteID)+"/", nil, reqOptions{auth: true})
}
