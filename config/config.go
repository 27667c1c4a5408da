// Package config defines the project configuration for the ABI extractor and its JSON file form.
package config

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// ProjectConfig describes the full configuration for an extraction run.
type ProjectConfig struct {
	// Extraction describes the configuration used by the ABI extractor.
	Extraction ExtractionConfig `json:"extraction"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// ExtractionConfig describes the configuration options used by the extractor.Extractor.
type ExtractionConfig struct {
	// ResponderTrait describes the trait name whose implementations mark a contract. Matching is
	// nominal against the final path segment of the implemented trait.
	ResponderTrait string `json:"responderTrait"`

	// EntryPoint describes the name of the member function through which all opcode dispatch occurs.
	EntryPoint string `json:"entryPoint"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes the log level for diagnostic output. Must be one of SupportedLogLevels.
	Level string `json:"level"`

	// NoColor indicates whether log output should avoid ANSI coloring.
	NoColor bool `json:"noColor"`
}

// SupportedLogLevels describes the accepted values for LoggingConfig.Level.
var SupportedLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// identifierPattern matches a plain Rust identifier, the only shape the nominal trait and
// entry-point matching can ever succeed against.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path.
// Unspecified fields retain their defaults. Returns the ProjectConfig if it succeeds, or an error
// if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration over the defaults
	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// Verify the trait and entry-point names are plain identifiers; anything else can never match
	// a path segment and indicates a misconfiguration.
	if !identifierPattern.MatchString(p.Extraction.ResponderTrait) {
		return errors.Errorf("responder trait name %q must be a plain identifier", p.Extraction.ResponderTrait)
	}
	if !identifierPattern.MatchString(p.Extraction.EntryPoint) {
		return errors.Errorf("entry point name %q must be a plain identifier", p.Extraction.EntryPoint)
	}

	// Verify the log level is supported
	if !slices.Contains(SupportedLogLevels, p.Logging.Level) {
		return errors.Errorf("log level %q is not supported", p.Logging.Level)
	}

	return nil
}

// LogLevel returns the zerolog level for the configured logging level string. Validate must have
// passed for the result to be meaningful.
func (p *ProjectConfig) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(p.Logging.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
