package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iamNilotpal/squeeze/config"
	"github.com/iamNilotpal/squeeze/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// GlobalFlags apply to every command.
type GlobalFlags struct {
	ConfigFile string // YAML configuration file
	LogLevel   string // Overrides log.level
	Force      bool   // Overwrite existing outputs
}

var (
	globalFlags GlobalFlags
	application *app
)

var rootCmd = &cobra.Command{
	Use:           "squeeze",
	Short:         "Shrink and watermark files locally",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `squeeze reduces file sizes and stamps watermarks without sending anything
over the network.

Images are re-encoded as JPEG at a quality chosen by the preset. Every other
file is wrapped in a gzip container that records its original name and type,
so it can be restored exactly with "squeeze decompress".

Examples:
  squeeze compress photo.png -p small
  squeeze compress report.docx --keep-archive
  squeeze inspect compressed_report.docx
  squeeze decompress compressed_report.docx -o restored.docx
  squeeze watermark contract.pdf --text DRAFT --position center`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(globalFlags.ConfigFile)
		if err != nil {
			return err
		}

		if globalFlags.LogLevel != "" {
			cfg.Log.Level = globalFlags.LogLevel
		}

		application, err = newApp(cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.close()
		}
	},
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if verr := errors.GetValidationError(err); verr != nil {
			pterm.Error.Printfln("invalid %s %v: %v", verr.Field, verr.Value, verr.Err)
		} else {
			pterm.Error.Println(err.Error())
		}
		if hint := retryHint(err); hint != "" {
			pterm.Info.Println(hint)
		}
		if application != nil {
			application.close()
		}
		return 1
	}
	return 0
}

// retryHint suggests running the command again when the failure is not a
// property of the input itself.
func retryHint(err error) string {
	if ce := errors.GetContainerError(err); ce != nil && ce.IsRetryAble() {
		return "this failure may be temporary, running the command again can succeed"
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"), "configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Force, "force", "f", false, "overwrite existing output files")

	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(watermarkCmd)
}

// writeOutput stores data at path unless it exists and --force is not set.
func writeOutput(path string, data []byte) error {
	exists, err := application.fs.Exists(path)
	if err != nil {
		return err
	}
	if exists && !globalFlags.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	return application.fs.WriteFile(path, 0o644, data)
}
