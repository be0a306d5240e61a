package service

import (
	"context"
	"io"
)

type FileUploadService interface {
	// UploadFile stores the file under folder and returns its public URL.
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
