// Package utils contains shared helpers used across the lfx tool.
package utils

// File and directory names shared across the project.
const (
	// ConfigFileName is the name of the lfx configuration file.
	ConfigFileName = ".lfx.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".lfx"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)
