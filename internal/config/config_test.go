package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wisp-lang/wispc/internal/config"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "wisp.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesBuildDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
main = "src/main.wisp"
`)

	m, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("Package.Name = %q, want demo", m.Config.Package.Name)
	}
	if m.Config.Build.MaxDiagnostics != 200 {
		t.Errorf("Build.MaxDiagnostics = %d, want default 200", m.Config.Build.MaxDiagnostics)
	}
	wantMain := filepath.Join(dir, "src", "main.wisp")
	if got := m.MainPath(); got != wantMain {
		t.Errorf("MainPath() = %q, want %q", got, wantMain)
	}
}

func TestLoadMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
main = "src/main.wisp"
`)

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected an error for a manifest missing [package].name")
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"
main = "main.wisp"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	found, ok, err := config.FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if !ok {
		t.Fatal("expected to find a manifest walking up from a nested directory")
	}
	wantPath := filepath.Join(root, "wisp.toml")
	if found != wantPath {
		t.Errorf("found = %q, want %q", found, wantPath)
	}
}
