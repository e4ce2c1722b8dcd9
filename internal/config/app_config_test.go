package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leaperfx/lfx/internal/utils"
)

type loadConfigurationTestCase struct {
	name           string
	globalContent  string
	localContent   string
	explicitPath   string
	expectCopy     *bool
	expectIssuer   string
	expectTTL      time.Duration
	expectLanguage string
	expectModel    string
	expectWorkers  *int
	expectMemory   *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []loadConfigurationTestCase{
		{
			name:           "local_overrides_global",
			globalContent:  "tree:\n  copy: true\ntranslate:\n  language: es\n  workers: 2\n",
			localContent:   "translate:\n  language: fa\n  model: gemini-2.5-pro\n  memory: false\n",
			expectCopy:     boolPointer(true),
			expectLanguage: "fa",
			expectModel:    "gemini-2.5-pro",
			expectWorkers:  intPointer(2),
			expectMemory:   boolPointer(false),
		},
		{
			name:          "explicit_path_overrides_global",
			globalContent: "token:\n  issuer: global-issuer\n  ttl: 30m\n",
			explicitPath:  "custom.yaml",
			expectIssuer:  "explicit-issuer",
			expectTTL:     30 * time.Minute,
		},
		{
			name:          "duration_strings_decode",
			globalContent: "token:\n  ttl: 1h30m\n",
			expectTTL:     90 * time.Minute,
		},
		{
			name: "missing_files_yield_zero_configuration",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			workingDirectory := t.TempDir()
			t.Setenv("HOME", homeDirectory)
			t.Setenv("USERPROFILE", homeDirectory)

			globalDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
			if makeError := os.MkdirAll(globalDirectory, 0o755); makeError != nil {
				t.Fatalf("create global configuration directory: %v", makeError)
			}
			writeFixture := func(filePath string, content string) {
				t.Helper()
				if writeError := os.WriteFile(filePath, []byte(content), 0o600); writeError != nil {
					t.Fatalf("write configuration fixture %s: %v", filePath, writeError)
				}
			}
			if testCase.globalContent != "" {
				writeFixture(filepath.Join(globalDirectory, utils.ConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeFixture(filepath.Join(workingDirectory, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeFixture(filepath.Join(workingDirectory, testCase.explicitPath), "token:\n  issuer: explicit-issuer\n")
			}

			mergedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitPath,
			})
			if loadError != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", loadError)
			}

			if testCase.expectCopy == nil {
				if mergedConfiguration.Tree.Copy != nil {
					t.Fatalf("expected no copy override, got %v", *mergedConfiguration.Tree.Copy)
				}
			} else if mergedConfiguration.Tree.Copy == nil || *mergedConfiguration.Tree.Copy != *testCase.expectCopy {
				t.Fatalf("unexpected copy value: %v", mergedConfiguration.Tree.Copy)
			}
			if mergedConfiguration.Token.Issuer != testCase.expectIssuer {
				t.Fatalf("expected issuer %q, got %q", testCase.expectIssuer, mergedConfiguration.Token.Issuer)
			}
			if mergedConfiguration.Token.TimeToLive != testCase.expectTTL {
				t.Fatalf("expected ttl %s, got %s", testCase.expectTTL, mergedConfiguration.Token.TimeToLive)
			}
			if mergedConfiguration.Translate.Language != testCase.expectLanguage {
				t.Fatalf("expected language %q, got %q", testCase.expectLanguage, mergedConfiguration.Translate.Language)
			}
			if mergedConfiguration.Translate.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, mergedConfiguration.Translate.Model)
			}
			if testCase.expectWorkers == nil {
				if mergedConfiguration.Translate.Workers != nil {
					t.Fatalf("expected no workers override, got %d", *mergedConfiguration.Translate.Workers)
				}
			} else if mergedConfiguration.Translate.Workers == nil || *mergedConfiguration.Translate.Workers != *testCase.expectWorkers {
				t.Fatalf("unexpected workers value: %v", mergedConfiguration.Translate.Workers)
			}
			if testCase.expectMemory == nil {
				if mergedConfiguration.Translate.Memory != nil {
					t.Fatalf("expected no memory override, got %v", *mergedConfiguration.Translate.Memory)
				}
			} else if mergedConfiguration.Translate.Memory == nil || *mergedConfiguration.Translate.Memory != *testCase.expectMemory {
				t.Fatalf("unexpected memory value: %v", mergedConfiguration.Translate.Memory)
			}
		})
	}
}

func TestMergeClonesPointerOverrides(t *testing.T) {
	overrideMemory := boolPointer(false)
	merged := ApplicationConfiguration{}.Merge(ApplicationConfiguration{
		Translate: TranslateConfiguration{Memory: overrideMemory},
	})
	if merged.Translate.Memory == nil || *merged.Translate.Memory {
		t.Fatalf("expected merged memory override to be false")
	}
	*overrideMemory = true
	if *merged.Translate.Memory {
		t.Fatalf("expected merged configuration to hold an independent copy")
	}
}

func TestMergeKeepsBaseWhenOverrideIsEmpty(t *testing.T) {
	base := ApplicationConfiguration{
		Token:     TokenConfiguration{Issuer: "issuer", TimeToLive: 15 * time.Minute},
		Translate: TranslateConfiguration{Language: "fa", Workers: intPointer(4)},
	}
	merged := base.Merge(ApplicationConfiguration{})
	if merged.Token.Issuer != "issuer" || merged.Token.TimeToLive != 15*time.Minute {
		t.Fatalf("token configuration was not preserved: %+v", merged.Token)
	}
	if merged.Translate.Language != "fa" || merged.Translate.Workers == nil || *merged.Translate.Workers != 4 {
		t.Fatalf("translate configuration was not preserved: %+v", merged.Translate)
	}
}
