package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func useTempDatabase(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", filepath.Join(t.TempDir(), "rtfilms.db"))
	t.Setenv("STATIC_DIR", t.TempDir())
	t.Setenv("ASSET_BACKEND", "dir")
	t.Setenv("LOOKUP_MODE", "title")
}

func TestSeedThenLookup(t *testing.T) {
	useTempDatabase(t)

	out, err := runCLI(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "seed data loaded") {
		t.Fatalf("unexpected seed output: %s", out)
	}

	out, err = runCLI(t, "lookup", "the princess bride")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	var vm struct {
		Heading    string `json:"heading"`
		PosterPath string `json:"posterPath"`
		Reviews    []struct {
			Reviewer string `json:"reviewer"`
		} `json:"reviews"`
	}
	if err := json.Unmarshal([]byte(out), &vm); err != nil {
		t.Fatalf("decode lookup output %q: %v", out, err)
	}
	if vm.Heading != "The Princess Bride (1987)" {
		t.Fatalf("heading = %q", vm.Heading)
	}
	if vm.PosterPath != "/images/poster2.png" {
		t.Fatalf("poster = %q", vm.PosterPath)
	}
	if len(vm.Reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(vm.Reviews))
	}
}

func TestLookupNotFound(t *testing.T) {
	useTempDatabase(t)
	if _, err := runCLI(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err := runCLI(t, "lookup", "NoSuchMovie")
	if err == nil || !strings.Contains(err.Error(), "no movie matches") {
		t.Fatalf("expected not-found error, got %v", err)
	}

	_, err = runCLI(t, "lookup", "   ")
	if err == nil || !strings.Contains(err.Error(), "non-empty title") {
		t.Fatalf("expected missing title error, got %v", err)
	}
}

func TestLookupArgs(t *testing.T) {
	useTempDatabase(t)
	if _, err := runCLI(t, "lookup"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestInvalidConfig(t *testing.T) {
	useTempDatabase(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := runCLI(t, "migrate")
	if err == nil || !strings.Contains(err.Error(), "DB_DRIVER") {
		t.Fatalf("expected DB_DRIVER error, got %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	useTempDatabase(t)
	if _, err := runCLI(t, "migrate", "--config", filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
