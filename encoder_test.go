package mfa_test

import (
	"context"
	"sync/atomic"

	"github.com/enteocode/mfa/pkg/qrcode"
)

type spyEncoder struct {
	supported bool
	err       error
	calls     atomic.Int32
}

func (s *spyEncoder) Supports(qrcode.Format) bool {
	return s.supported
}

func (s *spyEncoder) Encode(_ context.Context, content string, format qrcode.Format) (*qrcode.Image, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &qrcode.Image{ContentType: format, Data: []byte(content)}, nil
}
