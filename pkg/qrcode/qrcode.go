package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256
)

// Encode renders a check-in code as a PNG so the UI can show it at the
// door. Size is clamped rather than rejected.
func Encode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("nothing to encode")
	}
	if size < MinSize || size > MaxSize {
		size = DefaultSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
