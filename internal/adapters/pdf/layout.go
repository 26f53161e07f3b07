package pdf

import (
	"image/color"
	"math"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
)

const (
	minBaseSize   = 12.0
	maxBaseSize   = 72.0
	minFontSize   = 10.0
	maxFontSize   = 120.0
	referenceSide = 600.0 // Page side length at which the base size is used unscaled.
	edgeMargin    = 20.0
	minOpacity    = 0.05
	diagonalAngle = -30.0
	gridDivisions = 3
)

// Placement is a text origin in PDF user space (origin bottom-left).
type Placement struct {
	X, Y  float64
	Angle float64
}

// Scale returns the page scale factor relative to a 600pt square page.
func Scale(width, height float64) float64 {
	return math.Min(width, height) / referenceSide
}

// FontSize scales the requested size with the page.
func FontSize(size, width, height float64) float64 {
	base := clamp(size, minBaseSize, maxBaseSize)
	return clamp(base*Scale(width, height), minFontSize, maxFontSize)
}

// Opacity clamps the requested opacity so the stamp never disappears.
func Opacity(opacity float64) float64 {
	return clamp(opacity, minOpacity, 1)
}

// Blend approximates a translucent stamp by mixing fill toward a white page.
func Blend(fill color.NRGBA, opacity float64) color.NRGBA {
	mix := func(c uint8) uint8 {
		return uint8(math.Round(float64(c)*opacity + 255*(1-opacity)))
	}
	return color.NRGBA{R: mix(fill.R), G: mix(fill.G), B: mix(fill.B), A: 0xFF}
}

// Placements lays out text of the given width on a page.
func Placements(position domain.Position, width, height, textWidth, fontSize float64) []Placement {
	switch position {
	case domain.PositionCenter:
		return []Placement{{X: (width - textWidth) / 2, Y: (height - fontSize) / 2}}
	case domain.PositionBottomRight:
		margin := edgeMargin * Scale(width, height)
		return []Placement{{X: width - textWidth - margin, Y: margin}}
	default:
		stepX := width / gridDivisions
		stepY := height / gridDivisions

		var out []Placement
		for i := 0; i <= gridDivisions+1; i++ {
			for j := 0; j <= gridDivisions+1; j++ {
				out = append(out, Placement{X: float64(i)*stepX - textWidth/2, Y: float64(j) * stepY, Angle: diagonalAngle})
			}
		}
		return out
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
