package domain

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Position places the watermark text on the page or image.
type Position string

const (
	PositionCenter      Position = "center"
	PositionDiagonal    Position = "diagonal"     // Rotated text tiled on a 3x3 grid.
	PositionBottomRight Position = "bottom-right" // Anchored 20 units from the bottom-right corner.
)

// IsValid checks if the position is one of the known values.
func (p Position) IsValid() bool {
	switch p {
	case PositionCenter, PositionDiagonal, PositionBottomRight:
		return true
	default:
		return false
	}
}

// WatermarkOptions describes the text stamped onto an image or PDF.
type WatermarkOptions struct {
	// Text is the watermark string.
	//
	// Default: CONFIDENTIAL
	Text string `yaml:"text"`

	// Opacity in the range 0-1.
	//
	// Default: 0.5
	Opacity float64 `yaml:"opacity"`

	// Size is the font size in pixels for images. PDFs scale it with the page.
	//
	// Default: 24
	Size float64 `yaml:"size"`

	// Color is a #rgb or #rrggbb hex string.
	//
	// Default: #000000
	Color string `yaml:"color"`

	// Position defaults to diagonal.
	Position Position `yaml:"position"`
}

// DefaultWatermarkOptions returns the stamp applied when nothing is configured.
func DefaultWatermarkOptions() *WatermarkOptions {
	return &WatermarkOptions{
		Text:     "CONFIDENTIAL",
		Opacity:  0.5,
		Size:     24,
		Color:    "#000000",
		Position: PositionDiagonal,
	}
}

// ParseColor converts a #rgb or #rrggbb string into an opaque color.
func ParseColor(hex string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}

	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("color must be #rgb or #rrggbb, got %q", hex)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color must be #rgb or #rrggbb, got %q", hex)
	}

	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
