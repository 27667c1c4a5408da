package config

// GetDefaultProjectConfig obtains a default configuration for an extraction run. The extraction
// defaults are the literal names used by Alkanes contracts.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Extraction: ExtractionConfig{
			ResponderTrait: "AlkaneResponder",
			EntryPoint:     "execute",
		},
		Logging: LoggingConfig{
			Level:   "info",
			NoColor: false,
		},
	}
}
