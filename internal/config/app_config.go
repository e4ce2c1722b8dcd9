// Package config loads and merges lfx configuration from global and local files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/leaperfx/lfx/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Tree      TreeConfiguration      `mapstructure:"tree"`
	Token     TokenConfiguration     `mapstructure:"token"`
	Translate TranslateConfiguration `mapstructure:"translate"`
}

// TreeConfiguration defines defaults for the tree command.
type TreeConfiguration struct {
	Copy *bool `mapstructure:"copy"`
}

// TokenConfiguration defines defaults for token issuance.
type TokenConfiguration struct {
	Issuer     string        `mapstructure:"issuer"`
	Audience   string        `mapstructure:"audience"`
	TimeToLive time.Duration `mapstructure:"ttl"`
}

// TranslateConfiguration defines defaults for the translate command.
type TranslateConfiguration struct {
	Language string `mapstructure:"language"`
	Model    string `mapstructure:"model"`
	Workers  *int   `mapstructure:"workers"`
	Memory   *bool  `mapstructure:"memory"`
	Tokens   *bool  `mapstructure:"tokens"`
	Font     string `mapstructure:"font"`
}

// LoadApplicationConfiguration merges the global configuration under the home
// directory with the local configuration of the working directory. Later
// files override earlier ones field by field; missing files are skipped.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	candidatePaths, pathsError := configurationPaths(options)
	if pathsError != nil {
		return ApplicationConfiguration{}, pathsError
	}
	var merged ApplicationConfiguration
	for _, configurationPath := range candidatePaths {
		loaded, readError := readConfigurationFile(configurationPath)
		if readError != nil {
			return ApplicationConfiguration{}, readError
		}
		merged = merged.Merge(loaded)
	}
	return merged, nil
}

// configurationPaths returns the files to consult in merge order: the global
// file under the home directory, then the explicit file or the working
// directory's local file.
func configurationPaths(options LoadOptions) ([]string, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return nil, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	paths := make([]string, 0, 2)
	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		paths = append(paths, filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName))
	}
	switch {
	case options.ExplicitFilePath == "":
		paths = append(paths, filepath.Join(workingDirectory, utils.ConfigFileName))
	case filepath.IsAbs(options.ExplicitFilePath):
		paths = append(paths, options.ExplicitFilePath)
	default:
		paths = append(paths, filepath.Join(workingDirectory, options.ExplicitFilePath))
	}
	return paths, nil
}

// readConfigurationFile decodes one configuration file. A missing file yields
// the zero configuration.
func readConfigurationFile(filePath string) (ApplicationConfiguration, error) {
	fileInfo, statError := os.Stat(filePath)
	switch {
	case errors.Is(statError, fs.ErrNotExist):
		return ApplicationConfiguration{}, nil
	case statError != nil:
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", filePath, statError)
	case fileInfo.IsDir():
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", filePath)
	}

	reader := viper.New()
	reader.SetConfigFile(filePath)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", filePath, readError)
	}
	var loaded ApplicationConfiguration
	if decodeError := reader.Unmarshal(&loaded); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", filePath, decodeError)
	}
	return loaded, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	result.Token = result.Token.merge(override.Token)
	result.Translate = result.Translate.merge(override.Translate)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Copy != nil {
		result.Copy = clonePointer(override.Copy)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Issuer != "" {
		result.Issuer = override.Issuer
	}
	if override.Audience != "" {
		result.Audience = override.Audience
	}
	if override.TimeToLive != 0 {
		result.TimeToLive = override.TimeToLive
	}
	return result
}

func (config TranslateConfiguration) merge(override TranslateConfiguration) TranslateConfiguration {
	result := config
	if override.Language != "" {
		result.Language = override.Language
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Workers != nil {
		result.Workers = clonePointer(override.Workers)
	}
	if override.Memory != nil {
		result.Memory = clonePointer(override.Memory)
	}
	if override.Tokens != nil {
		result.Tokens = clonePointer(override.Tokens)
	}
	if override.Font != "" {
		result.Font = override.Font
	}
	return result
}

// clonePointer copies the pointed-at value so merged configurations do not
// alias their overrides.
func clonePointer[T any](value *T) *T {
	cloned := *value
	return &cloned
}
