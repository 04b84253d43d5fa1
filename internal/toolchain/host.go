package toolchain

import (
	"os"
	"runtime"
	"strings"
)

// HostTriple returns a target triple for the machine the translator
// runs on, in the form <arch>-<vendor>-<os>-<abi>.
func HostTriple() string {
	arch, vendor, osName, abi := "unknown", "unknown", "unknown", "unknown"

	switch runtime.GOARCH {
	case "amd64":
		arch = "x86_64"
	case "386":
		arch = "i386"
	case "arm64":
		arch = "aarch64"
	case "arm":
		arch = "armv7"
	case "riscv64":
		arch = "riscv64"
	}

	switch runtime.GOOS {
	case "linux":
		osName, abi = "linux", "gnu"
	case "darwin":
		vendor, osName = "apple", "darwin"
	case "windows":
		vendor, osName, abi = "pc", "windows", "msvc"
	case "freebsd":
		osName = "freebsd"
	}

	return strings.Join([]string{arch, vendor, osName, abi}, "-")
}

// HostCPU returns the default microarchitecture string. The environment
// variable SSCP_HOST_CPU overrides it; otherwise "native" asks the
// toolchain to pick the host microarchitecture itself.
func HostCPU() string {
	if cpu := os.Getenv("SSCP_HOST_CPU"); cpu != "" {
		return cpu
	}
	return "native"
}
