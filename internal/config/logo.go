package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Logo resolution errors.
var (
	ErrLogoNotFound   = errors.New("logo file not found")
	ErrLogoUnreadable = errors.New("logo file unreadable")
	ErrLogoNotImage   = errors.New("logo file is not an image")
	ErrLogoTooLarge   = errors.New("logo file too large")
)

// MaxLogoSize caps the embedded logo (5MB).
const MaxLogoSize = 5 << 20

// LogoDataURI reads the image at path and encodes it as a data URI.
func LogoDataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrLogoNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrLogoUnreadable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrLogoUnreadable, path)
	}
	if info.Size() > MaxLogoSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrLogoTooLarge, info.Size(), MaxLogoSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the branding config
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLogoUnreadable, err)
	}

	mime := sniffImageType(path, data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s detected as %s", ErrLogoNotImage, path, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// sniffImageType detects the content type from data. SVG is text and only
// recognizable by its extension.
func sniffImageType(path string, data []byte) string {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return "image/svg+xml"
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime
}
