// Package qrcode renders code values as QR images for the codes email.
package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"

	"eventpass/internal/domain"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

type encoder struct {
	size  int
	level goqrcode.RecoveryLevel
}

// NewEncoder returns a QRCodeEncoder producing size x size PNGs with medium error correction.
func NewEncoder(size int) domain.QRCodeEncoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &encoder{size: size, level: goqrcode.Medium}
}

func (e *encoder) EncodePNG(value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: empty qr payload", domain.ErrInvalidInput)
	}
	png, err := goqrcode.Encode(value, e.level, e.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
