// Package media stores uploaded creative images on the local filesystem in
// a date-based directory structure and serves them back under /media URLs.
package media

import (
	"path"
	"strings"
)

// thumbSuffix is appended to a file's base name for its downscaled copy.
const thumbSuffix = "_300"

// ThumbURL rewrites a locally served creative URL to its thumbnail
// variant. URLs pointing anywhere else (remote creatives coming back from
// the campaign server) pass through unchanged; Resolve serves the original
// when no thumbnail was generated.
func ThumbURL(url string) string {
	if !strings.HasPrefix(url, "/media/") {
		return url
	}
	ext := path.Ext(url)
	if ext == "" {
		return url
	}
	return strings.TrimSuffix(url, ext) + thumbSuffix + ext
}

// OriginalPath strips the thumbnail suffix from a media path. Paths that
// are not thumbnails come back unchanged.
func OriginalPath(p string) string {
	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	if !strings.HasSuffix(base, thumbSuffix) {
		return p
	}
	return strings.TrimSuffix(base, thumbSuffix) + ext
}

// CreativeFile describes one stored creative image.
type CreativeFile struct {
	ID           string `json:"id"`
	Path         string `json:"path"` // Relative path on disk (e.g. "2026/08/uuid.png").
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
}

// URL returns the public URL the stored file is served under.
func (f *CreativeFile) URL() string {
	return "/media/" + f.Path
}

// AllowedMimeTypes defines which MIME types are accepted for upload.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MimeToExtension maps MIME types to file extensions.
var MimeToExtension = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ExtensionToMime is the reverse mapping, used when serving files back.
var ExtensionToMime = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}
