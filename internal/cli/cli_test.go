package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/goaltrack/internal/model"
	"github.com/sandeepkv93/goaltrack/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "goaltrack.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDoAndStatusShareStorage(t *testing.T) {
	db := filepath.Join(t.TempDir(), "goaltrack.db")
	cfg := writeConfig(t, "storage:\n  driver: sqlite\n  path: "+db+"\nnotifications:\n  desktop: false\n")

	out, err := run(t, "--config", cfg, "do", "/add", "Buy", "milk")
	if err != nil {
		t.Fatalf("do add: %v", err)
	}
	if !strings.Contains(out, "added task: Buy milk") {
		t.Fatalf("unexpected do output: %q", out)
	}

	out, err = run(t, "--config", cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "5. [ ] Buy milk") {
		t.Fatalf("expected new task in status, got:\n%s", out)
	}
}

func TestDoRejectsUnknownCommand(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  driver: memory\nnotifications:\n  desktop: false\n")
	if _, err := run(t, "--config", cfg, "do", "/fly", "away"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestDoReviewWithoutAIFails(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  driver: memory\nnotifications:\n  desktop: false\n")
	if _, err := run(t, "--config", cfg, "do", "/review", "a long enough reflection about my week"); err == nil {
		t.Fatalf("expected review to fail without an AI client")
	}
}

func TestConfigShowMasksSecrets(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  driver: memory\nai:\n  api_key: sk-very-secret\n")
	out, err := run(t, "--config", cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "sk-very-secret") {
		t.Fatalf("api key leaked: %s", out)
	}
	if !strings.Contains(out, "driver: memory") {
		t.Fatalf("expected storage driver in output: %s", out)
	}
}

func TestConfigPathReportsFileInUse(t *testing.T) {
	cfg := writeConfig(t, "storage:\n  driver: memory\n")
	out, err := run(t, "--config", cfg, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, "In use:  "+cfg) {
		t.Fatalf("expected used file in output: %s", out)
	}
}

func TestPrintStatusEmpty(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, state.Snapshot{UserStats: model.UserStats{Level: 1}})
	out := buf.String()
	if !strings.Contains(out, "Level 1  0/100 XP") {
		t.Fatalf("unexpected header: %q", out)
	}
	if strings.Count(out, "(none)") != 2 {
		t.Fatalf("expected empty task and goal lists: %q", out)
	}
}
