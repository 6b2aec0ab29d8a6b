package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetState() {
	CloseAll()
	logsDir = ""
	stateDir = ""
	config = loggingConfig{}
	logLevel = LevelInfo
}

func TestInitializeWithoutConfigIsSilent(t *testing.T) {
	defer resetState()

	dir := t.TempDir()
	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if IsDebugMode() {
		t.Fatal("debug mode on without config")
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Fatal("logs directory created in production mode")
	}

	// Logging into the void must not panic.
	Draft("saved draft %s", "issue-report")
}

func TestDebugModeWritesCategoryFile(t *testing.T) {
	defer resetState()

	dir := t.TempDir()
	cfg := `{"logging": {"debug_mode": true, "level": "debug"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	Wizard("step %d -> %d", 0, 1)
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_wizard.log") {
			found = true
			data, _ := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if !strings.Contains(string(data), "step 0 -> 1") {
				t.Errorf("wizard log missing message, got: %s", data)
			}
		}
	}
	if !found {
		t.Error("no wizard category log file written")
	}
}

func TestCategoryFilter(t *testing.T) {
	defer resetState()

	dir := t.TempDir()
	cfg := `{"logging": {"debug_mode": true, "categories": {"draft": false}}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryDraft) {
		t.Error("draft category enabled despite filter")
	}
	if !IsCategoryEnabled(CategoryLetter) {
		t.Error("unlisted category disabled")
	}
}
