package main

import (
	"path/filepath"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/services/watermark"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	watermarkOptions  domain.WatermarkOptions
	watermarkPosition string
	watermarkOutput   string
	watermarkMime     string
)

var watermarkCmd = &cobra.Command{
	Use:   "watermark <file>",
	Short: "Stamp text onto an image or PDF",
	Long: `Stamp text onto an image or every page of a PDF.

Defaults come from the watermark section of the configuration; flags override
them. Other file types are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		opts := mergeWatermarkFlags(cmd, application.cfg.Watermark)

		data, err := application.readInput(input)
		if err != nil {
			return err
		}

		name := filepath.Base(input)
		mime := application.detect(watermarkMime, name, data)

		spinner, _ := pterm.DefaultSpinner.WithText(watermark.StatusStarting).Start()
		service, err := application.watermarker(func(status string) {
			if spinner != nil {
				spinner.UpdateText(status)
			}
		})
		if err != nil {
			return err
		}

		result, err := service.Apply(cmd.Context(), name, mime, data, &opts)
		if err != nil {
			if spinner != nil {
				spinner.Fail(watermark.StatusFailed + err.Error())
			}
			return err
		}

		if !result.Supported {
			if spinner != nil {
				spinner.Warning(result.Status)
			}
			return nil
		}

		output := watermarkOutput
		if output == "" {
			output = filepath.Join(filepath.Dir(input), result.Name)
		}
		if err := writeOutput(output, result.Data); err != nil {
			if spinner != nil {
				spinner.Fail(err.Error())
			}
			return err
		}

		if spinner != nil {
			spinner.Success(result.Status + ": " + output)
		}
		return nil
	},
}

// mergeWatermarkFlags overlays explicitly set flags on the configured stamp.
func mergeWatermarkFlags(cmd *cobra.Command, base domain.WatermarkOptions) domain.WatermarkOptions {
	flags := cmd.Flags()
	if flags.Changed("text") {
		base.Text = watermarkOptions.Text
	}
	if flags.Changed("opacity") {
		base.Opacity = watermarkOptions.Opacity
	}
	if flags.Changed("size") {
		base.Size = watermarkOptions.Size
	}
	if flags.Changed("color") {
		base.Color = watermarkOptions.Color
	}
	if flags.Changed("position") {
		base.Position = domain.Position(watermarkPosition)
	}
	return base
}

func init() {
	flags := watermarkCmd.Flags()
	flags.StringVar(&watermarkOptions.Text, "text", "", "watermark text")
	flags.Float64Var(&watermarkOptions.Opacity, "opacity", 0, "opacity between 0 and 1")
	flags.Float64Var(&watermarkOptions.Size, "size", 0, "font size in pixels")
	flags.StringVar(&watermarkOptions.Color, "color", "", "text color as #rrggbb")
	flags.StringVar(&watermarkPosition, "position", "", "center|diagonal|bottom-right")
	flags.StringVarP(&watermarkOutput, "output", "o", "", "output file (default: watermarked_<name> next to the input)")
	flags.StringVar(&watermarkMime, "mime", "", "content type of the input (detected when empty)")
}
