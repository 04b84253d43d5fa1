package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "sscp.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "imaging"

[kernels]
names = ["blur", "sharpen"]

[target]
triple = "x86_64-unknown-linux-gnu"
cpu = "skylake"

[build]
inputs = ["kernels/blur.bc"]
output_dir = "out"
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Package.Name != "imaging" {
		t.Fatalf("package name: %q", cfg.Package.Name)
	}
	if len(cfg.Kernels.Names) != 2 || cfg.Kernels.Names[0] != "blur" {
		t.Fatalf("kernel names: %v", cfg.Kernels.Names)
	}
	if cfg.Target.CPU != "skylake" || cfg.Target.Triple != "x86_64-unknown-linux-gnu" {
		t.Fatalf("target section: %+v", cfg.Target)
	}
	if cfg.Build.OutputDir != "out" || len(cfg.Build.Inputs) != 1 {
		t.Fatalf("build section: %+v", cfg.Build)
	}
}

func TestLoadProjectConfig_MissingPackageName(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[kernels]
names = ["blur"]
`)
	if _, err := loadProjectConfig(path); err == nil || !strings.Contains(err.Error(), "[package]") {
		t.Fatalf("expected missing [package] error, got: %v", err)
	}

	path = writeManifest(t, t.TempDir(), `
[package]
name = "   "
`)
	if _, err := loadProjectConfig(path); err == nil || !strings.Contains(err.Error(), "[package].name") {
		t.Fatalf("expected missing name error, got: %v", err)
	}
}

func TestFindManifest_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"p\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := findManifest(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if path != filepath.Join(root, "sscp.toml") {
		t.Fatalf("found wrong manifest: %q", path)
	}
}

func TestFindManifest_Absent(t *testing.T) {
	_, ok, err := findManifest(t.TempDir())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty tree")
	}
}
