package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestDefaultProjectConfig ensures the default configuration carries the Alkanes literal names and
// passes validation.
func TestDefaultProjectConfig(t *testing.T) {
	projectConfig := GetDefaultProjectConfig()
	assert.Equal(t, "AlkaneResponder", projectConfig.Extraction.ResponderTrait)
	assert.Equal(t, "execute", projectConfig.Extraction.EntryPoint)
	assert.NoError(t, projectConfig.Validate())
	assert.Equal(t, zerolog.InfoLevel, projectConfig.LogLevel())
}

// TestValidateRejectsBadValues ensures malformed trait/entry names and unsupported log levels fail
// validation.
func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectConfig)
	}{
		{"empty trait", func(p *ProjectConfig) { p.Extraction.ResponderTrait = "" }},
		{"path trait", func(p *ProjectConfig) { p.Extraction.ResponderTrait = "a::b" }},
		{"spaced entry", func(p *ProjectConfig) { p.Extraction.EntryPoint = "run this" }},
		{"digit-leading entry", func(p *ProjectConfig) { p.Extraction.EntryPoint = "1execute" }},
		{"unknown level", func(p *ProjectConfig) { p.Logging.Level = "verbose" }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			projectConfig := GetDefaultProjectConfig()
			test.mutate(projectConfig)
			assert.Error(t, projectConfig.Validate())
		})
	}
}

// TestReadWriteRoundTrip ensures a written configuration file reads back identically.
func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alkanes.json")

	projectConfig := GetDefaultProjectConfig()
	projectConfig.Extraction.ResponderTrait = "MessageHandler"
	projectConfig.Logging.Level = "debug"
	assert.NoError(t, projectConfig.WriteToFile(path))

	readConfig, err := ReadProjectConfigFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, projectConfig, readConfig)
}

// TestReadPartialConfigKeepsDefaults ensures fields absent from the file retain their defaults.
func TestReadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alkanes.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"extraction": {"responderTrait": "Custom"}}`), 0644))

	readConfig, err := ReadProjectConfigFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "Custom", readConfig.Extraction.ResponderTrait)
	assert.Equal(t, "execute", readConfig.Extraction.EntryPoint)
	assert.Equal(t, "info", readConfig.Logging.Level)
}

// TestReadMissingConfig ensures reading a non-existent file surfaces an error.
func TestReadMissingConfig(t *testing.T) {
	readConfig, err := ReadProjectConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Nil(t, readConfig)
	assert.Error(t, err)
}
