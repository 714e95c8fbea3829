package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/storage"
	"github.com/rs/zerolog"
)

// ImageFile is an uploaded image as received from a multipart form
type ImageFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// allowedImageTypes maps accepted MIME types to the stored file extension
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// uploadService is the concrete implementation of UploadService
type uploadService struct {
	files   storage.Storage
	maxSize int64
	now     func() time.Time
	log     zerolog.Logger
}

func newUploadService(files storage.Storage, maxSize int64, now func() time.Time, log zerolog.Logger) *uploadService {
	return &uploadService{
		files:   files,
		maxSize: maxSize,
		now:     now,
		log:     log.With().Str("service", "upload").Logger(),
	}
}

// StoreImage checks type and size, then saves the image under a generated name.
// The type is detected from content, not from the client's filename or header.
func (s *uploadService) StoreImage(ctx context.Context, file *ImageFile) (*models.UploadResult, error) {
	if file == nil || file.Content == nil {
		return nil, apperror.Validation("image", "No file uploaded or upload error occurred")
	}

	data, err := io.ReadAll(io.LimitReader(file.Content, s.maxSize+1))
	if err != nil {
		return nil, apperror.Validation("image", "No file uploaded or upload error occurred")
	}
	if len(data) == 0 {
		return nil, apperror.Validation("image", "No file uploaded or upload error occurred")
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return nil, apperror.Validation("image", "Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed.")
	}
	if file.Size > s.maxSize || int64(len(data)) > s.maxSize {
		return nil, apperror.Validation("image", fmt.Sprintf("File size exceeds %s limit.", formatSize(s.maxSize)))
	}

	filename := fmt.Sprintf("story_%s_%d.%s", uuid.NewString(), s.now().Unix(), ext)
	url, err := s.files.Upload(ctx, filename, data, mtype.String())
	if err != nil {
		return nil, fmt.Errorf("failed to save uploaded file: %w", err)
	}

	s.log.Info().Str("filename", filename).Int("bytes", len(data)).Str("mime", mtype.String()).Msg("Image stored")
	return &models.UploadResult{URL: url, Filename: filename}, nil
}

func (s *uploadService) DiscardImage(ctx context.Context, filename string) {
	if err := s.files.Delete(ctx, filename); err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("Failed to remove unused image")
		return
	}
	s.log.Info().Str("filename", filename).Msg("Unused image removed")
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
