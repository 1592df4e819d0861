// Package files enforces the upload boundary: size and MIME type
// checks run synchronously before a file ever reaches the storage
// service, and rejections never enter slice state.
package files

import (
	"fmt"

	"dashboard-core/internal/common/config"
	stderrors "dashboard-core/internal/common/errors"
)

// Validate checks a candidate upload against the configured limits.
// A nil return means the file may be handed to the file service.
func Validate(fileName string, sizeBytes int64, mimeType string, cfg config.FilesConfig) error {
	maxBytes := int64(cfg.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && sizeBytes > maxBytes {
		return stderrors.NewFileRejectedError(
			fmt.Sprintf("%s: file size must be less than %dMB", fileName, cfg.MaxSizeMB))
	}

	allowed := false
	for _, t := range cfg.AllowedTypes {
		if t == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return stderrors.NewFileRejectedError(
			fmt.Sprintf("%s: file type %s is not allowed", fileName, mimeType))
	}

	return nil
}
