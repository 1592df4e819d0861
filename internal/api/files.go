package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	"dashboard-core/internal/models"
)

// FileService talks to the file storage endpoints. Upload validation
// happens before this layer (internal/files); the service only moves
// bytes and attachment records.
type FileService struct {
	client *Client
}

func NewFileService(client *Client) *FileService {
	return &FileService{client: client}
}

// Upload streams a file with its owning entity reference and returns
// the stored attachment record.
func (s *FileService) Upload(ctx context.Context, fileName string, content io.Reader, entityType models.EntityType, entityID string) (models.FileAttachment, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return models.FileAttachment{}, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return models.FileAttachment{}, err
	}
	if err := writer.WriteField("entityType", string(entityType)); err != nil {
		return models.FileAttachment{}, err
	}
	if err := writer.WriteField("entityId", entityID); err != nil {
		return models.FileAttachment{}, err
	}
	if err := writer.Close(); err != nil {
		return models.FileAttachment{}, err
	}

	data, err := s.client.doUpload(ctx, "/files/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		return models.FileAttachment{}, err
	}

	var attachment models.FileAttachment
	if err := json.Unmarshal(data, &attachment); err != nil {
		return models.FileAttachment{}, fmt.Errorf("decode attachment: %w", err)
	}
	return attachment, nil
}

// Delete removes a stored file by id.
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	return s.client.delete(ctx, "/files/"+fileID)
}

// ListByEntity returns the attachments owned by one entity.
func (s *FileService) ListByEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]models.FileAttachment, error) {
	data, err := s.client.get(ctx, fmt.Sprintf("/files/entity/%s/%s", entityType, entityID))
	if err != nil {
		return nil, err
	}

	var attachments []models.FileAttachment
	if err := json.Unmarshal(data, &attachments); err != nil {
		return nil, fmt.Errorf("decode attachments: %w", err)
	}
	return attachments, nil
}
