package lqip

import (
	"path/filepath"
	"strings"
)

// SupportedMimes maps the accepted file extensions to their mime types.
// Keys are matched case-sensitively against the raw extension.
var SupportedMimes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
}

// Extension returns the part of the file name after its final dot, without
// the dot. It returns "" when the name has no dot. A leading dot alone
// (".png") marks a hidden file, not an extension.
func Extension(path string) string {
	base := strings.TrimPrefix(filepath.Base(path), ".")
	return strings.TrimPrefix(filepath.Ext(base), ".")
}

// MimeType looks up the mime type for a raw extension.
func MimeType(ext string) (string, bool) {
	mime, ok := SupportedMimes[ext]
	return mime, ok
}

// validateFormat returns the mime type for path or an *UnsupportedFormatError.
func validateFormat(path string) (string, error) {
	ext := Extension(path)
	mime, ok := MimeType(ext)
	if !ok {
		return "", &UnsupportedFormatError{Path: path, Ext: ext}
	}
	return mime, nil
}
