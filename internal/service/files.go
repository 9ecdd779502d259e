package service

import (
	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/storage"
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

var (
	ErrUploadURLError           = errors.New("failed to generate upload URL")
	ErrDownloadURLError         = errors.New("failed to generate download URL")
	ErrUploadConfirmationFailed = errors.New("failed to confirm upload")
	ErrFileMissing              = errors.New("no file is stored for this record")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the caller reports back on confirm
}

// FileOptions configures presigned URLs and upload limits.
type FileOptions struct {
	URLExpiry      time.Duration
	MaxUploadBytes int64
}

// files issues presigned URLs for one key prefix and checks what came back.
type files struct {
	storage storage.FileStorage
	prefix  string
	opts    FileOptions
}

func newFiles(fs storage.FileStorage, prefix string, opts FileOptions) files {
	if opts.URLExpiry <= 0 {
		opts.URLExpiry = storage.DefaultPresignedURLExpiry
	}
	return files{storage: fs, prefix: prefix, opts: opts}
}

// requestUpload returns a PUT URL for a new object owned by owner.
func (f files) requestUpload(ctx context.Context, owner, fileName, contentType string) (*UploadURLResponse, error) {
	objectKey := storage.NewObjectKey(f.prefix, owner, fileName)
	uploadURL, err := f.storage.GeneratePresignedUploadURL(ctx, objectKey, contentType, f.opts.URLExpiry)
	if err != nil {
		log.Printf("ERROR: presigning upload for %s: %v", objectKey, err)
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// confirm checks that objectKey was issued to owner and that the object is
// in storage within the size limit. The stored size and type win over
// whatever the caller claims.
func (f files) confirm(ctx context.Context, owner, objectKey, fileName string) (*domain.StoredFile, error) {
	if !storage.OwnsKey(objectKey, f.prefix, owner) {
		return nil, ErrInvalidUpload
	}
	meta, err := f.storage.StatObject(ctx, objectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrInvalidUpload
		}
		log.Printf("ERROR: checking uploaded object %s: %v", objectKey, err)
		return nil, ErrUploadConfirmationFailed
	}
	if f.opts.MaxUploadBytes > 0 && meta.Size > f.opts.MaxUploadBytes {
		f.remove(ctx, objectKey)
		return nil, ErrInvalidUpload
	}

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = objectKey[strings.LastIndex(objectKey, "/")+1:]
	}
	return &domain.StoredFile{
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: meta.ContentType,
		Size:        meta.Size,
		UploadedAt:  now().UTC(),
	}, nil
}

func (f files) downloadURL(ctx context.Context, objectKey string) (string, error) {
	url, err := f.storage.GeneratePresignedDownloadURL(ctx, objectKey, f.opts.URLExpiry)
	if err != nil {
		log.Printf("ERROR: presigning download for %s: %v", objectKey, err)
		return "", ErrDownloadURLError
	}
	return url, nil
}

// remove deletes an object that is no longer referenced. Failures only
// leave an orphan behind, so they are logged and swallowed.
func (f files) remove(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := f.storage.DeleteObject(ctx, objectKey); err != nil {
		log.Printf("WARN: failed to delete object %s: %v", objectKey, err)
	}
}
