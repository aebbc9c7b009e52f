package qrcode

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/gif"
	"image/jpeg"
	"io"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// Image is an encoded QR code.
type Image struct {
	ContentType Format
	Data        []byte
}

// Reader returns a reader over the image bytes.
func (i *Image) Reader() io.Reader {
	return bytes.NewReader(i.Data)
}

// DataURI returns the image as a base64 data URI, usable as <img src>.
func (i *Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.ContentType, base64.StdEncoding.EncodeToString(i.Data))
}

// Encoder renders QR codes.
type Encoder struct {
	size     int
	recovery skipqrcode.RecoveryLevel
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithSize sets the image side in pixels. Non-positive values keep the default.
func WithSize(size int) EncoderOption {
	return func(e *Encoder) {
		if size > 0 {
			e.size = size
		}
	}
}

// WithRecoveryLevel sets the error correction level.
func WithRecoveryLevel(level skipqrcode.RecoveryLevel) EncoderOption {
	return func(e *Encoder) {
		e.recovery = level
	}
}

// NewEncoder returns an encoder producing 256px images at medium recovery.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		size:     defaultSize,
		recovery: skipqrcode.Medium,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supports reports whether Encode can produce format.
func (e *Encoder) Supports(format Format) bool {
	switch format {
	case FormatPNG, FormatJPEG, FormatGIF:
		return true
	}
	return false
}

// Encode renders content in the requested format.
func (e *Encoder) Encode(ctx context.Context, content string, format Format) (*Image, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !e.Supports(format) {
		return nil, ErrUnsupportedFormat
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if format == FormatPNG {
		png, err := skipqrcode.Encode(content, e.recovery, e.size)
		if err != nil {
			return nil, errors.Join(ErrFailedToGenerateQRCode, err)
		}
		return &Image{ContentType: format, Data: png}, nil
	}

	q, err := skipqrcode.New(content, e.recovery)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	img := q.Image(e.size)

	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return &Image{ContentType: format, Data: buf.Bytes()}, nil
}

// Generate creates a PNG QR code with the given content and size.
func Generate(content string, size int) ([]byte, error) {
	img, err := NewEncoder(WithSize(size)).Encode(context.Background(), content, FormatPNG)
	if err != nil {
		return nil, err
	}
	return img.Data, nil
}
