package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func reset() {
	CloseAll()
	stateMu.Lock()
	enabled = false
	logsDir = ""
	stateMu.Unlock()
}

func TestDisabledIsNoOp(t *testing.T) {
	defer reset()
	dir := t.TempDir()
	if err := Initialize(dir, false, "info"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	Poll("should go nowhere")
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory created in non-debug mode")
	}
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	defer reset()
	dir := t.TempDir()
	if err := Initialize(dir, true, "debug"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	Poll("job %s tick %d", "abc123", 1)
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("read logs dir: %v", err)
	}

	var found bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_poll.log") {
			found = true
			data, err := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			if !strings.Contains(string(data), "job abc123 tick 1") {
				t.Errorf("log content missing message: %s", data)
			}
		}
	}
	if !found {
		t.Error("no poll category log file written")
	}
}

func TestLevelFiltering(t *testing.T) {
	defer reset()
	dir := t.TempDir()
	if err := Initialize(dir, true, "warn"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	l := Get(CategoryAPI)
	l.Info("filtered out")
	l.Warn("kept")
	CloseAll()

	entries, _ := os.ReadDir(filepath.Join(dir, "logs"))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_api.log") {
			data, _ := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if strings.Contains(string(data), "filtered out") {
				t.Error("info message logged at warn level")
			}
			if !strings.Contains(string(data), "kept") {
				t.Error("warn message missing")
			}
		}
	}
}
