package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/leaperfx/lfx/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `tree:
  copy: false
token:
  issuer: leaperfx-contracts
  audience: leaperfx-admin
  ttl: 15m
translate:
  language: fa
  model: gemini-2.5-flash
  workers: 4
  memory: true
  tokens: false
  font: ""
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration file for the
// requested target and returns its path. An existing file is preserved
// unless Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := configurationDestination(options)
	if destinationError != nil {
		return "", destinationError
	}
	if !options.Force {
		_, statError := os.Stat(destinationPath)
		switch {
		case statError == nil:
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		case !errors.Is(statError, fs.ErrNotExist):
			return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, statError)
		}
	}
	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); writeError != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}
	return destinationPath, nil
}

// configurationDestination resolves the file the requested target writes to,
// creating the global configuration directory when needed.
func configurationDestination(options InitOptions) (string, error) {
	switch options.Target {
	case InitTargetLocal, "":
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if makeError := os.MkdirAll(configurationDirectory, 0o755); makeError != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, makeError)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
