package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alkanes-dev/alkanes-abi/config"
)

// addRootFlags adds the various flags for the root extraction command
func addRootFlags() error {
	// Config file and output options
	rootCmd.Flags().String("config", "", "path to the project configuration file (default: "+DefaultProjectConfigFilename+" in the working directory)")
	rootCmd.Flags().String("out", "", "write the ABI description to the provided file path instead of standard output")
	rootCmd.Flags().Bool("compact", false, "emit compact single-line JSON instead of pretty-printed output")

	// Extraction overrides
	rootCmd.Flags().String("trait", "", "override the responder trait name matched against implementations")
	rootCmd.Flags().String("entry", "", "override the entry-point method name scanned for the dispatch match")

	// Logging overrides
	rootCmd.Flags().String("log-level", "", "override the log level (trace, debug, info, warn, error)")
	rootCmd.Flags().Bool("no-color", false, "disable ANSI coloring of log output")
	return nil
}

// updateProjectConfigWithRootFlags will update the given projectConfig with any CLI arguments that
// were provided to the root command
func updateProjectConfigWithRootFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update the responder trait name if --trait was used
	if cmd.Flags().Changed("trait") {
		projectConfig.Extraction.ResponderTrait, err = cmd.Flags().GetString("trait")
		if err != nil {
			return err
		}
	}

	// Update the entry-point method name if --entry was used
	if cmd.Flags().Changed("entry") {
		projectConfig.Extraction.EntryPoint, err = cmd.Flags().GetString("entry")
		if err != nil {
			return err
		}
	}

	// Update the log level if --log-level was used
	if cmd.Flags().Changed("log-level") {
		projectConfig.Logging.Level, err = cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
	}

	// Update color options if --no-color was used
	if cmd.Flags().Changed("no-color") {
		projectConfig.Logging.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}
	}

	return nil
}
