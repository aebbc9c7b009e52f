package qrcode

import "strings"

// Format is an image MIME type.
type Format string

const (
	FormatAVIF Format = "image/avif"
	FormatPNG  Format = "image/png"
	FormatJPEG Format = "image/jpeg"
	FormatGIF  Format = "image/gif"
	FormatWEBP Format = "image/webp"
)

// Formats lists every known format.
func Formats() []Format {
	return []Format{FormatAVIF, FormatPNG, FormatJPEG, FormatGIF, FormatWEBP}
}

// ParseFormat accepts a MIME type or a bare extension such as "png".
func ParseFormat(s string) (Format, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "image/") {
		if s == "jpg" {
			s = "jpeg"
		}
		s = "image/" + s
	}
	for _, f := range Formats() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Extension returns the file extension without a dot.
func (f Format) Extension() string {
	return strings.TrimPrefix(string(f), "image/")
}
