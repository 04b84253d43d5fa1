// Package install locates the compiler installation on disk, in
// particular the precompiled per-target builtin bitcode libraries linked
// into every module during flavoring.
package install

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides installation-root discovery, mainly for tests and
// uninstalled development trees.
const RootEnv = "SSCP_INSTALL_ROOT"

// Root returns the installation root: the environment override if set,
// otherwise the prefix above the running executable's bin directory.
func Root() (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		return root, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// BuiltinBitcodePath returns the path of the builtin library holding the
// target-specific implementations of the low-level primitives kernels
// depend on: <root>/lib/sscp/bitcode/libkernel-sscp-<target>-full.bc.
func BuiltinBitcodePath(root, target string) string {
	return filepath.Join(root, "lib", "sscp", "bitcode",
		fmt.Sprintf("libkernel-sscp-%s-full.bc", target))
}
