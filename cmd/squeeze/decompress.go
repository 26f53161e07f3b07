package main

import (
	"path/filepath"

	"github.com/iamNilotpal/squeeze/internal/core/domain"
	"github.com/iamNilotpal/squeeze/internal/core/services/pipeline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var decompressOutput string

var decompressCmd = &cobra.Command{
	Use:   "decompress <container>",
	Short: "Restore a file from a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		container, err := application.readContainer(input)
		if err != nil {
			return err
		}

		doc, err := application.codec.Decode(container)
		if err != nil {
			application.log.Errorw("decode container", "file", input, "error", err)
			return err
		}

		output := decompressOutput
		if output == "" {
			output = filepath.Join(filepath.Dir(input), restoredName(doc.Name))
		}

		if err := writeOutput(output, doc.Data); err != nil {
			return err
		}

		pterm.Success.Printfln("restored %s (%s, %s) to %s",
			doc.Name, doc.Mime, pipeline.FormatSize(int64(len(doc.Data))), output)
		return nil
	},
}

func init() {
	decompressCmd.Flags().StringVarP(&decompressOutput, "output", "o", "", "output file (default: the original name next to the container)")
}

// restoredName reduces a stored name to a plain file name. Names that do not
// name a file fall back to the default.
func restoredName(name string) string {
	base := filepath.Base(name)
	switch base {
	case ".", "..", string(filepath.Separator):
		return domain.DefaultFileName
	}
	return base
}
