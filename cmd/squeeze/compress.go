package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/services/pipeline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	compressPreset      string
	compressOutput      string
	compressMime        string
	compressKeepArchive bool
)

var compressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Shrink a file",
	Long: `Shrink a file with one of the small, medium or large presets.

Images are re-encoded as JPEG. Other files are packed into a container and,
unless --keep-archive is given, restored again so the saved file matches the
original byte for byte. The container is what "decompress" and "inspect" read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		preset := application.cfg.DefaultPreset
		if cmd.Flags().Changed("preset") {
			p, err := domain.ParsePreset(compressPreset)
			if err != nil {
				return err
			}
			preset = p
		}

		data, err := application.readInput(input)
		if err != nil {
			return err
		}

		name := filepath.Base(input)
		mime := application.detect(compressMime, name, data)
		originalSize := len(data)

		spinner, _ := pterm.DefaultSpinner.WithText(pipeline.StatusStarting).Start()
		p, err := application.pipeline(func(status string) {
			if spinner != nil && !strings.HasPrefix(status, pipeline.StatusError) {
				spinner.UpdateText(status)
			}
		})
		if err != nil {
			return err
		}
		defer p.Close()

		outcome, err := p.Compress(cmd.Context(), pipeline.File{Name: name, Mime: mime, Data: data}, preset)
		if err != nil {
			if spinner != nil {
				spinner.Fail(pipeline.StatusError + err.Error())
			}
			return err
		}

		outName, _, outData := outcome.Download()
		if compressKeepArchive || outcome.Restored == nil {
			outName, outData = pipeline.CompressedPrefix+name, outcome.Blob
		}

		output := compressOutput
		if output == "" {
			output = filepath.Join(filepath.Dir(input), outName)
		}
		if samePath(output, input) {
			output = filepath.Join(filepath.Dir(input), pipeline.CompressedPrefix+outName)
		}

		if err := writeOutput(output, outData); err != nil {
			if spinner != nil {
				spinner.Fail(pipeline.StatusError + err.Error())
			}
			return err
		}

		if spinner != nil {
			spinner.Success(pipeline.StatusDone)
		}

		rows := [][]string{
			{"File", name},
			{"Kind", string(outcome.Kind())},
			{"Preset", preset.String()},
			{"Original size", pipeline.FormatSize(int64(originalSize))},
			{"Compressed size", pipeline.FormatSize(int64(outcome.CompressedSize()))},
			{"Reduction", fmt.Sprintf("%.1f%%", outcome.Ratio())},
			{"Saved to", output},
		}
		if outcome.RestoreErr != nil {
			pterm.Warning.Printfln("archive could not be restored, saved the container instead: %v", outcome.RestoreErr)
		}
		return pterm.DefaultTable.WithHasHeader(false).WithData(rows).Render()
	},
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func init() {
	compressCmd.Flags().StringVarP(&compressPreset, "preset", "p", "", "preset: small|medium|large (default from config)")
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "", "output file (default next to the input)")
	compressCmd.Flags().StringVar(&compressMime, "mime", "", "content type of the input (detected when empty)")
	compressCmd.Flags().BoolVar(&compressKeepArchive, "keep-archive", false, "save the container instead of the restored file")
}
