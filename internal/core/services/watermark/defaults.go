package watermark

import (
	"strings"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
)

const (
	StatusStarting    = "Adding watermark..."
	StatusDone        = "Watermark added successfully"
	StatusUnsupported = "Watermarking not supported for this file type"
	StatusFailed      = "Watermarking failed: "

	// DownloadPrefix is prepended to the original name of a stamped file.
	DownloadPrefix = "watermarked_"
)

// prepareDefaults fills zero fields from the default stamp. The caller's
// options are not modified.
func prepareDefaults(opts *domain.WatermarkOptions) *domain.WatermarkOptions {
	defaults := domain.DefaultWatermarkOptions()
	if opts == nil {
		return defaults
	}

	out := *opts
	if strings.TrimSpace(out.Text) == "" {
		out.Text = defaults.Text
	}

	if out.Size == 0 {
		out.Size = defaults.Size
	}

	if strings.TrimSpace(out.Color) == "" {
		out.Color = defaults.Color
	}

	if out.Position == "" {
		out.Position = defaults.Position
	}

	return &out
}
