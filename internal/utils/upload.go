package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

var allowedImageExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}
var allowedVideoExts = map[string]bool{"mp4": true, "mkv": true, "webm": true}

// AllowedImage reports whether the filename has a permitted image extension.
func AllowedImage(filename string) bool {
	return allowedImageExts[extOf(filename)]
}

// AllowedVideo reports whether the filename has a permitted video extension.
func AllowedVideo(filename string) bool {
	return allowedVideoExts[extOf(filename)]
}

func extOf(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename strips path components and replaces unsafe characters so
// the client-supplied name can be used on disk.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// SaveUpload writes the uploaded file under <uploadDir>/<class>/ and
// returns the public relative path it will be served from.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, uploadDir, class string) (string, error) {
	filename := SecureFilename(file.Filename)
	dir := filepath.Join(uploadDir, class)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return fmt.Sprintf("/uploads/%s/%s", class, filename), nil
}
