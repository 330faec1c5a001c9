package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Register decoders for image formats.
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/arlden/adpanel/internal/apperror"
)

// Service stores creative images and resolves /media URLs back to files on
// disk. Its Store method satisfies the campaign form's creative store.
type Service interface {
	Store(ctx context.Context, originalName, mimeType string, data []byte) (string, error)
	Resolve(relPath string) (diskPath, contentType string, err error)
}

type service struct {
	mediaPath string // Root directory for file storage.
	maxSize   int64  // Maximum file size in bytes.
}

// NewService creates a media service storing files under mediaPath.
func NewService(mediaPath string, maxSize int64) Service {
	return &service{mediaPath: mediaPath, maxSize: maxSize}
}

// Store validates and writes a creative image, returning the /media URL to
// attach to the campaign's creative list.
func (s *service) Store(ctx context.Context, originalName, mimeType string, data []byte) (string, error) {
	if !AllowedMimeTypes[mimeType] {
		return "", apperror.NewBadRequest("unsupported file type: " + mimeType)
	}
	if int64(len(data)) > s.maxSize {
		return "", apperror.NewBadRequest(fmt.Sprintf("file too large; maximum size is %d MB", s.maxSize/(1024*1024)))
	}
	if !validateMagicBytes(data, mimeType) {
		return "", apperror.NewBadRequest("file content does not match declared type")
	}

	// UUID filename in a date-based directory.
	id := uuid.NewString()
	now := time.Now().UTC()
	relDir := now.Format("2006/01")
	ext := MimeToExtension[mimeType]
	filename := id + ext

	dir := filepath.Join(s.mediaPath, relDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperror.NewInternal(fmt.Errorf("creating media directory: %w", err))
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", apperror.NewInternal(fmt.Errorf("writing media file: %w", err))
	}

	// Thumbnail for the preview grids. Best effort: Resolve serves the full
	// image when generation was skipped or failed. GIFs keep their
	// animation and WebP has no encoder, so both are skipped.
	if mimeType != "image/gif" && mimeType != "image/webp" {
		if _, err := generateThumbnail(data, dir, id, ext, 300); err != nil {
			slog.Warn("thumbnail generation failed",
				slog.String("file_id", id),
				slog.Any("error", err),
			)
		}
	}

	file := &CreativeFile{
		ID:           id,
		Path:         relDir + "/" + filename,
		OriginalName: originalName,
		MimeType:     mimeType,
		FileSize:     int64(len(data)),
	}

	slog.Info("creative uploaded",
		slog.String("id", id),
		slog.String("mime_type", mimeType),
		slog.Int64("size", file.FileSize),
	)
	return file.URL(), nil
}

// Resolve maps a /media relative path to its file on disk, rejecting
// anything that escapes the storage root. A thumbnail path whose file was
// never generated (image already small, unsupported format) resolves to
// the original image instead.
func (s *service) Resolve(relPath string) (string, string, error) {
	cleaned := filepath.Clean(relPath)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", "", apperror.NewBadRequest("invalid media path")
	}

	contentType, ok := ExtensionToMime[strings.ToLower(filepath.Ext(cleaned))]
	if !ok {
		return "", "", apperror.NewNotFound("media file not found")
	}

	diskPath := filepath.Join(s.mediaPath, cleaned)
	if _, err := os.Stat(diskPath); err == nil {
		return diskPath, contentType, nil
	}

	if original := OriginalPath(cleaned); original != cleaned {
		diskPath = filepath.Join(s.mediaPath, original)
		if _, err := os.Stat(diskPath); err == nil {
			return diskPath, contentType, nil
		}
	}

	return "", "", apperror.NewNotFound("media file not found")
}

// generateThumbnail creates a resized copy of an image next to the original.
func generateThumbnail(data []byte, dir, id, ext string, maxDim int) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Skip if already small enough.
	if w <= maxDim && h <= maxDim {
		return "", fmt.Errorf("image already smaller than %d", maxDim)
	}

	// Calculate new dimensions maintaining aspect ratio.
	newW, newH := maxDim, maxDim
	if w > h {
		newH = h * maxDim / w
	} else {
		newW = w * maxDim / h
	}

	// Resize using Catmull-Rom interpolation.
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	thumbFilename := fmt.Sprintf("%s_%d%s", id, maxDim, ext)
	thumbPath := filepath.Join(dir, thumbFilename)

	f, err := os.Create(thumbPath)
	if err != nil {
		return "", fmt.Errorf("creating thumbnail file: %w", err)
	}
	defer f.Close()

	// Encode in the original's format so the extension (and the MIME type
	// Resolve derives from it) stays truthful.
	switch ext {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, dst, &jpeg.Options{Quality: 85})
	case ".png":
		err = png.Encode(f, dst)
	default:
		err = fmt.Errorf("no thumbnail encoder for %s", ext)
	}

	if err != nil {
		os.Remove(thumbPath)
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}

	return thumbFilename, nil
}

// validateMagicBytes checks that the file content's magic bytes match the
// declared MIME type. Prevents uploading non-image files with a spoofed
// Content-Type header.
func validateMagicBytes(data []byte, declaredMIME string) bool {
	if len(data) < 4 {
		return false
	}
	switch declaredMIME {
	case "image/jpeg":
		return len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
	case "image/png":
		return len(data) >= 8 &&
			data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
			data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A
	case "image/gif":
		return len(data) >= 6 && string(data[:3]) == "GIF"
	case "image/webp":
		return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP"
	default:
		return false
	}
}
