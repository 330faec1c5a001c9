package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arlden/adpanel/internal/apperror"
)

// Smallest valid PNG: 1x1 transparent pixel.
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

func TestStoreWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, 1024*1024)

	url, err := svc.Store(context.Background(), "pixel.png", "image/png", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "/media/") {
		t.Fatalf("expected a /media URL, got %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected a .png URL, got %q", url)
	}

	rel := strings.TrimPrefix(url, "/media/")
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestStoreRejectsUnsupportedType(t *testing.T) {
	svc := NewService(t.TempDir(), 1024*1024)

	_, err := svc.Store(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF-1.4"))
	if !apperror.IsType(err, apperror.TypeBadRequest) {
		t.Fatalf("expected a bad request error, got %v", err)
	}
}

func TestStoreRejectsSpoofedContentType(t *testing.T) {
	svc := NewService(t.TempDir(), 1024*1024)

	_, err := svc.Store(context.Background(), "fake.png", "image/png", []byte("not a png at all"))
	if !apperror.IsType(err, apperror.TypeBadRequest) {
		t.Fatalf("expected a bad request error, got %v", err)
	}
}

func TestStoreRejectsOversizedFile(t *testing.T) {
	svc := NewService(t.TempDir(), 8)

	_, err := svc.Store(context.Background(), "pixel.png", "image/png", pngBytes)
	if !apperror.IsType(err, apperror.TypeBadRequest) {
		t.Fatalf("expected a bad request error, got %v", err)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	svc := NewService(t.TempDir(), 1024)

	for _, p := range []string{"../etc/passwd", "..", "/etc/passwd.png"} {
		if _, _, err := svc.Resolve(p); err == nil {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestResolveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, 1024*1024)

	url, err := svc.Store(context.Background(), "pixel.png", "image/png", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	diskPath, contentType, err := svc.Resolve(strings.TrimPrefix(url, "/media/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "image/png" {
		t.Fatalf("expected image/png, got %q", contentType)
	}
	if _, err := os.Stat(diskPath); err != nil {
		t.Fatalf("resolved path missing: %v", err)
	}
}

func TestThumbURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"local creative", "/media/2026/08/abc.png", "/media/2026/08/abc_300.png"},
		{"jpeg creative", "/media/2026/08/abc.jpg", "/media/2026/08/abc_300.jpg"},
		{"remote creative untouched", "https://cdn.example.com/banner.png", "https://cdn.example.com/banner.png"},
		{"no extension untouched", "/media/2026/08/abc", "/media/2026/08/abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ThumbURL(tc.in); got != tc.want {
				t.Errorf("ThumbURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveMissingThumbnailServesOriginal(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, 1024*1024)

	// 1x1 pixel is below the thumbnail threshold, so no _300 file exists.
	url, err := svc.Store(context.Background(), "pixel.png", "image/png", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rel := strings.TrimPrefix(ThumbURL(url), "/media/")
	diskPath, contentType, err := svc.Resolve(rel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "image/png" {
		t.Fatalf("expected image/png, got %q", contentType)
	}
	if strings.Contains(diskPath, "_300") {
		t.Fatalf("expected the original file, got %q", diskPath)
	}
	if _, err := os.Stat(diskPath); err != nil {
		t.Fatalf("resolved path missing: %v", err)
	}
}
