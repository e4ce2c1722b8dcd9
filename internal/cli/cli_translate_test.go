package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/leaperfx/lfx/internal/translate"
)

func TestTranslateCommandRequiresInputFiles(t *testing.T) {
	isolateConfiguration(t)

	if _, executeError := executeCommand(t, "translate"); executeError == nil {
		t.Fatal("expected error without input files")
	}
}

func TestTranslateCommandRejectsNonPositiveWorkerCount(t *testing.T) {
	isolateConfiguration(t)

	_, executeError := executeCommand(t, "translate", "--workers", "0", "page.html")
	if executeError == nil {
		t.Fatal("expected error for a zero worker count")
	}
	if !strings.Contains(executeError.Error(), "worker count") {
		t.Fatalf("expected worker count error, got %v", executeError)
	}
}

func TestTranslateCommandAppliesConfiguredWorkerCount(t *testing.T) {
	isolateConfiguration(t)
	if writeError := os.WriteFile(".lfx.yaml", []byte("translate:\n  workers: 0\n"), 0o600); writeError != nil {
		t.Fatalf("write local configuration: %v", writeError)
	}

	_, executeError := executeCommand(t, "translate", "page.html")
	if executeError == nil {
		t.Fatal("expected the configured zero worker count to be rejected")
	}
	if !strings.Contains(executeError.Error(), "worker count") {
		t.Fatalf("expected worker count error, got %v", executeError)
	}
}

func TestTranslateCommandFlagOverridesConfiguredWorkerCount(t *testing.T) {
	isolateConfiguration(t)
	t.Setenv(translate.APIKeyEnvironmentVariable, "")
	if writeError := os.WriteFile(".lfx.yaml", []byte("translate:\n  workers: 0\n"), 0o600); writeError != nil {
		t.Fatalf("write local configuration: %v", writeError)
	}

	_, executeError := executeCommand(t, "translate", "--workers", "2", "page.html")
	if executeError == nil {
		t.Fatal("expected error for a missing API key")
	}
	if !strings.Contains(executeError.Error(), translate.APIKeyEnvironmentVariable) {
		t.Fatalf("expected missing API key error after the flag override, got %v", executeError)
	}
}

func TestTranslateCommandRequiresAPIKey(t *testing.T) {
	isolateConfiguration(t)
	t.Setenv(translate.APIKeyEnvironmentVariable, "")

	_, executeError := executeCommand(t, "translate", "page.html")
	if executeError == nil {
		t.Fatal("expected error when the translation API key is unset")
	}
	if !strings.Contains(executeError.Error(), translate.APIKeyEnvironmentVariable) {
		t.Fatalf("expected error naming %s, got %v", translate.APIKeyEnvironmentVariable, executeError)
	}
}
