package storage

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// Key prefixes per kind of stored file.
const (
	ClientPhotoPrefix        = "client-photos"
	InstructorDocumentPrefix = "instructor-documents"
)

var ErrObjectNotFound = errors.New("object not found in storage")

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// StatObject reports what was actually uploaded under objectKey.
	// Returns ErrObjectNotFound when nothing is there.
	StatObject(ctx context.Context, objectKey string) (*ObjectMetadata, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// ObjectMetadata describes a stored object.
type ObjectMetadata struct {
	Size         int64
	ContentType  string
	LastModified time.Time
}

// NewObjectKey builds a unique key under prefix/owner that keeps the
// original file extension, e.g. "client-photos/<owner>/<uuid>.jpg".
func NewObjectKey(prefix, owner, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(fileName, `\`, "/"))))
	return path.Join(prefix, owner, uuid.NewString()+ext)
}

// OwnsKey reports whether objectKey was issued for prefix/owner.
func OwnsKey(objectKey, prefix, owner string) bool {
	return strings.HasPrefix(objectKey, path.Join(prefix, owner)+"/")
}
