package attachment

import (
	"fmt"
	"path"
	"strings"
)

// DefaultMaxFileSize caps uploads at 50MB unless configured otherwise.
const DefaultMaxFileSize = 50 * 1024 * 1024

var allowedContentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"image/avif":      {},
	"application/pdf": {},
	"text/plain":      {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// ValidateFile checks size and content type before any byte reaches the
// object store.
func ValidateFile(size, maxSize int64, contentType string) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if size > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, size, maxSize)
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	return nil
}

// FileTypeFor buckets an upload into image, pdf or a generic file, from
// the content type with the filename extension as a fallback.
func FileTypeFor(contentType, filename string) string {
	if strings.HasPrefix(contentType, "image/") {
		return FileTypeImage
	}
	if contentType == "application/pdf" || strings.EqualFold(path.Ext(filename), ".pdf") {
		return FileTypePDF
	}
	return FileTypeFile
}

// StoragePath builds the object key userId/entityType/entityId/filename.
func StoragePath(userID string, entityType EntityType, entityID, filename string) string {
	return fmt.Sprintf("%s/%s/%s/%s", userID, entityType, entityID, filename)
}

// PathFromURL recovers the object key from a stored public URL by taking
// the last four segments: userId/entityType/entityId/filename.
func PathFromURL(url string) (string, error) {
	parts := strings.Split(url, "/")
	if len(parts) < 4 {
		return "", fmt.Errorf("%w: url %q has no storage path", ErrInvalidInput, url)
	}
	return strings.Join(parts[len(parts)-4:], "/"), nil
}
