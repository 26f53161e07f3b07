package domain

import (
	"fmt"
	"strings"

	"github.com/iamNilotpal/squeeze/pkg/errors"
)

// Preset selects how aggressively a file is shrunk. The same preset drives
// two unrelated knobs: the gzip effort level for documents and the re-encode
// quality factor for images. The two mappings run in opposite directions.
type Preset string

const (
	PresetSmall  Preset = "small"  // Smallest output.
	PresetMedium Preset = "medium" // Balanced.
	PresetLarge  Preset = "large"  // Closest to the original.
)

// Presets lists every preset from smallest to largest output.
var Presets = []Preset{PresetSmall, PresetMedium, PresetLarge}

// ParsePreset converts user input into a Preset.
func ParsePreset(value string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(value)))
	if !p.IsValid() {
		return "", errors.NewValidationError(
			"preset", value, fmt.Errorf("preset must be one of small, medium, large"),
		)
	}
	return p, nil
}

// IsValid checks if the preset is one of the known values.
func (p Preset) IsValid() bool {
	switch p {
	case PresetSmall, PresetMedium, PresetLarge:
		return true
	default:
		return false
	}
}

// Level returns the document compression effort for the preset.
// small maps to maximum effort, large to minimum. Returns 0 for unknown presets.
func (p Preset) Level() int {
	switch p {
	case PresetSmall:
		return 9
	case PresetMedium:
		return 6
	case PresetLarge:
		return 3
	default:
		return 0
	}
}

// Quality returns the image re-encode quality factor on a 0-1 scale.
// small maps to the lowest quality, large to the highest. Returns 0 for unknown presets.
func (p Preset) Quality() float64 {
	switch p {
	case PresetSmall:
		return 0.5
	case PresetMedium:
		return 0.7
	case PresetLarge:
		return 0.9
	default:
		return 0
	}
}

func (p Preset) String() string {
	return string(p)
}
