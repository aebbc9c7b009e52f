package qrcode

import "errors"

var (
	ErrEmptyContent           = errors.New("content cannot be empty")
	ErrUnsupportedFormat      = errors.New("unsupported image format")
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)
