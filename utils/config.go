// Package utils contains configuration and logging helpers shared by
// all commands
package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DisposaBoy/JsonConfigReader"
	yaml "gopkg.in/yaml.v3"
)

// ConfigStructure is structure of main configuration
type ConfigStructure struct {
	LogLevel  string `json:"logLevel"  yaml:"log_level"`
	LogFormat string `json:"logFormat" yaml:"log_format"`

	GpgProvider string `json:"gpgProvider" yaml:"gpg_provider"`
	TmpDir      string `json:"tmpDir"      yaml:"tmp_dir"`

	SignatureExtensions []string `json:"signatureExtensions" yaml:"signature_extensions"`
	KeyringExtensions   []string `json:"keyringExtensions"   yaml:"keyring_extensions"`
}

// DefaultConfig returns configuration used when no config file is present
func DefaultConfig() *ConfigStructure {
	return &ConfigStructure{
		LogLevel:    "info",
		LogFormat:   "default",
		GpgProvider: "gpg",
	}
}

// LoadConfig loads configuration from file, JSON with comment support
// or YAML
func LoadConfig(filename string, config *ConfigStructure) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	decJSON := json.NewDecoder(JsonConfigReader.New(f))
	if err = decJSON.Decode(&config); err != nil {
		_, _ = f.Seek(0, 0)
		decYAML := yaml.NewDecoder(f)
		if err2 := decYAML.Decode(&config); err2 != nil {
			err = fmt.Errorf("invalid yaml (%s) or json (%s)", err2, err)
		} else {
			err = nil
		}
	}
	return err
}

// SaveConfig write configuration to json file
func SaveConfig(filename string, config *ConfigStructure) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	encoded, err := json.MarshalIndent(&config, "", "  ")
	if err != nil {
		return err
	}

	_, err = f.Write(encoded)
	return err
}
