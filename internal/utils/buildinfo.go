package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// gitDescribeAttempts orders the describe invocations tried for source builds:
// an exact tag first, then the nearest tag with commit distance and dirty state.
var gitDescribeAttempts = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion reports the application version. Released binaries
// carry it in the Go build info; source builds fall back to git describe
// against the enclosing repository.
func GetApplicationVersion() string {
	if buildInfo, available := debug.ReadBuildInfo(); available {
		mainVersion := buildInfo.Main.Version
		if mainVersion != "" && mainVersion != "(devel)" {
			return mainVersion
		}
	}

	repositoryRoot, found := findRepositoryRoot(".")
	if !found {
		return unknownVersion
	}
	for _, describeArguments := range gitDescribeAttempts {
		// #nosec G204
		describeCommand := exec.Command("git", describeArguments...)
		describeCommand.Dir = repositoryRoot
		if describeOutput, describeError := describeCommand.Output(); describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findRepositoryRoot walks upward from startDirectory until it reaches a
// directory holding a .git folder.
func findRepositoryRoot(startDirectory string) (string, bool) {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", false
	}
	for {
		gitInfo, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && gitInfo.IsDir() {
			return currentDirectory, true
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", false
		}
		currentDirectory = parentDirectory
	}
}
