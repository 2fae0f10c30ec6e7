package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masterly.log")
	log, err := New(Config{Mode: "prod", Level: "info", File: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	log.Debug("hidden", "k", 1)
	log.With("component", "test").Info("user created", "username", "ana", "api_key", "sk-123")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	for _, want := range []string{`"msg":"user created"`, `"username":"ana"`, `"component":"test"`, `[REDACTED]`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sk-123") {
		t.Error("api key leaked into log")
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestRedactLeavesInputUntouched(t *testing.T) {
	in := []any{"token", "abc", "name", "x", "dangling"}
	out := redact(in)
	if in[1] != "abc" {
		t.Error("input slice modified")
	}
	if out[1] != "[REDACTED]" || out[3] != "x" || out[4] != "dangling" {
		t.Errorf("redact = %v", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded", "k", "v")
	l.Sync()
}
