package watermark

import (
	"fmt"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/pkg/errors"
)

// Validate checks a fully populated set of watermark options.
func Validate(opts *domain.WatermarkOptions) error {
	if opts == nil {
		return errors.NewValidationError("options", nil, fmt.Errorf("watermark options are required"))
	}

	if opts.Text == "" {
		return errors.NewValidationError("text", opts.Text, fmt.Errorf("watermark text must not be empty"))
	}

	if opts.Opacity < 0 || opts.Opacity > 1 {
		return errors.NewValidationError(
			"opacity", opts.Opacity, fmt.Errorf("opacity must be between 0 and 1, got %v", opts.Opacity),
		)
	}

	if opts.Size <= 0 {
		return errors.NewValidationError(
			"size", opts.Size, fmt.Errorf("size must be greater than 0, got %v", opts.Size),
		)
	}

	if _, err := domain.ParseColor(opts.Color); err != nil {
		return errors.NewValidationError("color", opts.Color, err)
	}

	if !opts.Position.IsValid() {
		return errors.NewValidationError(
			"position", opts.Position,
			fmt.Errorf("position must be one of center, diagonal, bottom-right, got %q", opts.Position),
		)
	}

	return nil
}
