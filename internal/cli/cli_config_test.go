package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leaperfx/lfx/internal/utils"
)

func TestConfigInitCommandWritesLocalFile(t *testing.T) {
	isolateConfiguration(t)

	outputText, executeError := executeCommand(t, "config", "init")
	if executeError != nil {
		t.Fatalf("config init failed: %v", executeError)
	}
	if !strings.HasPrefix(outputText, "Configuration written to ") {
		t.Fatalf("expected confirmation message, got %q", outputText)
	}

	workingDirectory, _ := os.Getwd()
	configurationPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	content, readError := os.ReadFile(configurationPath)
	if readError != nil {
		t.Fatalf("expected configuration file at %s: %v", configurationPath, readError)
	}
	for _, expectedSection := range []string{"tree:", "token:", "translate:"} {
		if !strings.Contains(string(content), expectedSection) {
			t.Fatalf("configuration missing %q section:\n%s", expectedSection, string(content))
		}
	}
}

func TestConfigInitCommandRefusesToOverwrite(t *testing.T) {
	isolateConfiguration(t)

	if _, firstError := executeCommand(t, "config", "init"); firstError != nil {
		t.Fatalf("first config init failed: %v", firstError)
	}
	if _, secondError := executeCommand(t, "config", "init"); secondError == nil {
		t.Fatal("expected error when the configuration file already exists")
	}
	if _, forcedError := executeCommand(t, "config", "init", "--force"); forcedError != nil {
		t.Fatalf("forced config init failed: %v", forcedError)
	}
}

func TestConfigInitCommandWritesGlobalFile(t *testing.T) {
	isolateConfiguration(t)

	if _, executeError := executeCommand(t, "config", "init", "--global"); executeError != nil {
		t.Fatalf("global config init failed: %v", executeError)
	}

	homeDirectory, _ := os.UserHomeDir()
	configurationPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
	if _, statError := os.Stat(configurationPath); statError != nil {
		t.Fatalf("expected global configuration at %s: %v", configurationPath, statError)
	}
}
