package main

import (
	"strconv"

	"github.com/iamNilotpal/squeeze/internal/core/services/pipeline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <container>",
	Short: "Show the header of a container without unpacking it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := application.readContainer(args[0])
		if err != nil {
			return err
		}

		header, err := application.codec.Inspect(container)
		if err != nil {
			return err
		}

		rows := [][]string{
			{"Name", header.OriginalName},
			{"Type", header.OriginalMime},
			{"Level", strconv.Itoa(header.CompressionLevel)},
			{"Original size", pipeline.FormatSize(header.OriginalSize)},
			{"Container size", pipeline.FormatSize(int64(len(container)))},
		}
		return pterm.DefaultTable.WithHasHeader(false).WithData(rows).Render()
	},
}
