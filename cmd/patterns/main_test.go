package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/patterns/internal/config"
	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/pkg/catalog"
)

// run executes the CLI in a clean working directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	return runHere(t, args...)
}

func runHere(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Creational", "Structural", "Behavioral", "Singleton", "Observer", "Adapter"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Creational") > strings.Index(out, "Behavioral") {
		t.Error("categories should appear in canonical order")
	}
}

func TestListJSON(t *testing.T) {
	out, err := run(t, "list", "--json", "--category", "behavioral")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []catalog.Pattern
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) == 0 {
		t.Fatal("expected behavioral patterns")
	}
	for _, p := range got {
		if p.Category != catalog.Behavioral {
			t.Errorf("unexpected %s", p.ID)
		}
	}
}

func TestListBadCategory(t *testing.T) {
	_, err := run(t, "list", "--category", "magic")
	if !errors.HasCode(err, "P060") {
		t.Errorf("expected P060, got %v", err)
	}
}

func TestListCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	yaml := `patterns:
  - id: pool
    name: Object Pool
    category: creational
    description: Reuses expensive objects.
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "list", "--catalog", path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Object Pool") || strings.Contains(out, "Singleton") {
		t.Errorf("expected only the file's patterns:\n%s", out)
	}

	if err := os.WriteFile(path, []byte("patterns:\n  - id: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := runHere(t, "list", "--catalog", path); !errors.HasCode(err, "P002") {
		t.Errorf("expected P002 for an invalid catalog, got %v", err)
	}
}

func TestShow(t *testing.T) {
	out, err := run(t, "show", "singleton")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Singleton", "Quick Reference", "Object creation", "When to Use", "Also in Creational"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowNotFound(t *testing.T) {
	_, err := run(t, "show", "singelton")
	if !errors.HasCode(err, "P001") {
		t.Fatalf("expected P001, got %v", err)
	}
	e := errors.FromError(err, "")
	if !strings.Contains(e.Detail, `"singelton"`) {
		t.Errorf("detail should name the id, got %q", e.Detail)
	}
	if !strings.Contains(e.Suggestion, `"singleton"`) {
		t.Errorf("expected a suggestion, got %q", e.Suggestion)
	}
}

func TestShowArgs(t *testing.T) {
	if _, err := run(t, "show"); !errors.HasCode(err, "P060") {
		t.Errorf("expected P060, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := runHere(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, config.ConfigFileName) {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(config.ConfigFileName); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := runHere(t, "config", "init"); !errors.HasCode(err, "P060") {
		t.Errorf("second init without --force should fail, got %v", err)
	}
	if _, err := runHere(t, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	t.Setenv("PATTERNS_SERVER_PORT", "9999")
	out, err = runHere(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, `"port": 9999`) {
		t.Errorf("expected env override in effective config:\n%s", out)
	}
}

func TestBadEnvironment(t *testing.T) {
	t.Setenv("PATTERNS_CATALOG_LATENCY", "later")
	if _, err := run(t, "list"); !errors.HasCode(err, "P022") {
		t.Errorf("expected P022, got %v", err)
	}
}

func TestLogLevelFlag(t *testing.T) {
	if _, err := run(t, "list", "--log-level", "loud"); !errors.HasCode(err, "P020") {
		t.Errorf("expected P020, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
