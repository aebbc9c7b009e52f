// Package qrcode renders otpauth:// key URIs as QR code images.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode. Formats
// are identified by their MIME type; the encoder currently produces PNG, JPEG
// and GIF. WEBP and AVIF are recognised so callers can ask for them, but
// Supports reports false and Encode returns ErrUnsupportedFormat.
//
// # Usage
//
//	enc := qrcode.NewEncoder(qrcode.WithSize(320))
//
//	if !enc.Supports(qrcode.FormatPNG) {
//		// pick another format
//	}
//	img, err := enc.Encode(ctx, uri, qrcode.FormatPNG)
//	if err != nil {
//		// handle error
//	}
//	w.Header().Set("Content-Type", string(img.ContentType))
//	_, _ = io.Copy(w, img.Reader())
//
// Image.DataURI returns a base64 data URI that can be embedded directly in an
// <img> tag.
//
// # Error Handling
//
//   - ErrEmptyContent: the content argument was empty.
//   - ErrUnsupportedFormat: the encoder cannot produce the requested format.
//   - ErrFailedToGenerateQRCode: the underlying library or image encoder
//     failed.
package qrcode
