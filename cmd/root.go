package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alkanes-dev/alkanes-abi/abi"
	"github.com/alkanes-dev/alkanes-abi/cmd/exitcodes"
	"github.com/alkanes-dev/alkanes-abi/config"
	"github.com/alkanes-dev/alkanes-abi/extractor"
	"github.com/alkanes-dev/alkanes-abi/logging"
	"github.com/alkanes-dev/alkanes-abi/logging/colors"
	"github.com/alkanes-dev/alkanes-abi/syntax"
	"github.com/alkanes-dev/alkanes-abi/utils"
)

// cmdLogger describes the logger used by the CLI commands. Diagnostics go to stderr so that the ABI
// JSON remains the only stdout output of a successful run.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel)

// rootCmd represents the root command provider: invoking the program with a contract file performs
// the extraction itself, while maintenance operations live in sub-commands.
var rootCmd = &cobra.Command{
	Use:   "alkanes-abi <contract-file>",
	Short: "Extracts an ABI description from an Alkanes contract source file",
	Long: "alkanes-abi statically analyzes the Rust source of an Alkanes smart contract and prints a JSON\n" +
		"description of the opcodes handled by its execute dispatch, without compiling or executing it",
	Args:          cmdValidateRootArgs,
	RunE:          cmdRunExtract,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute provides an exportable function to invoke the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// CLI diagnostics are colorized console output on stderr by default.
	cmdLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, true)

	// Add all the flags allowed for the root command
	err := addRootFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the root command", err)
	}
}

// cmdValidateRootArgs makes sure that exactly one contract file path was provided to the root command
func cmdValidateRootArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		// A missing or extra positional argument prints usage to stderr and exits with a general
		// error status.
		fmt.Fprint(os.Stderr, cmd.UsageString())
		return exitcodes.NewErrorWithExitCode(fmt.Errorf("expected exactly one contract file argument"), exitcodes.ExitCodeGeneralError)
	}
	return nil
}

// cmdRunExtract executes the CLI extraction command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (alkanes.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If alkanes.json can't be found, use the default project configuration.
func cmdRunExtract(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the extraction command", err)
		return err
	}

	// If --config was not used, look for `alkanes.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the extraction command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Possibility #1: File was found
	if utils.FileExists(configPath) {
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the extraction command", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
		}
	} else if configFlagUsed {
		// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
		err = fmt.Errorf("unable to find the config file at %v", configPath)
		cmdLogger.Error("Failed to run the extraction command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	} else {
		// Possibility #3: --config flag was not used and alkanes.json was not found, so use the default config
		projectConfig = config.GetDefaultProjectConfig()
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithRootFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the extraction command", err)
		return err
	}

	// Validate the project configuration
	if err = projectConfig.Validate(); err != nil {
		cmdLogger.Error("Invalid project configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Apply the logging configuration to the CLI logger and the global logger, which package
	// sub-loggers (e.g. the extractor's) derive from.
	if projectConfig.Logging.NoColor {
		cmdLogger.RemoveWriter(os.Stderr, logging.UNSTRUCTURED, true)
		cmdLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, false)
	}
	cmdLogger.SetLevel(projectConfig.LogLevel())
	logging.GlobalLogger.SetLevel(projectConfig.LogLevel())
	logging.GlobalLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, !projectConfig.Logging.NoColor)

	// Each run gets a correlation ID so that diagnostics from one extraction can be grouped.
	contractPath := args[0]
	runID := uuid.New().String()
	cmdLogger.Debug("Starting ABI extraction", logging.StructuredLogInfo{"run": runID, "contract": contractPath})

	// Load -> parse -> extract -> serialize -> print. Every failure along the way aborts the run
	// with a diagnostic; no partial ABI is ever emitted.
	source, err := os.ReadFile(contractPath)
	if err != nil {
		cmdLogger.Error("Failed to read the contract file", errors.WithStack(err))
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	parsedFile, err := syntax.ParseFile(source)
	if err != nil {
		cmdLogger.Error("Failed to parse the contract file", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer parsedFile.Close()

	contractABI, err := extractor.New(projectConfig.Extraction).ExtractABI(parsedFile)
	if err != nil {
		cmdLogger.Error("Failed to extract the contract ABI", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	output, err := renderABI(cmd, contractABI)
	if err != nil {
		cmdLogger.Error("Failed to serialize the contract ABI", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Check to see if --out flag was used and write to the provided path instead of stdout
	if cmd.Flags().Changed("out") {
		outputPath, err := cmd.Flags().GetString("out")
		if err != nil {
			cmdLogger.Error("Failed to run the extraction command", err)
			return err
		}
		if err = utils.WriteFileWithDirs(outputPath, append(output, '\n')); err != nil {
			cmdLogger.Error("Failed to write the ABI description", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
		}
		cmdLogger.Info("ABI description written to: ", colors.Bold, outputPath, colors.Reset)
	} else {
		fmt.Println(string(output))
	}

	cmdLogger.Debug("Extraction complete", logging.StructuredLogInfo{
		"run":      runID,
		"contract": contractABI.Name,
		"methods":  len(contractABI.Methods),
	})
	return nil
}

// renderABI serializes the extracted ABI, honoring the --compact flag.
func renderABI(cmd *cobra.Command, contractABI *abi.ContractABI) ([]byte, error) {
	compact, err := cmd.Flags().GetBool("compact")
	if err != nil {
		return nil, err
	}
	return contractABI.Render(compact)
}
