// Package toolchain locates and gates the external assembler and linker the
// driver hands emitted assembly to (spec §6: out of the compiler core, but
// specified for the boundary). Only the discovery and version-gating logic
// lives here — invocation itself is a couple of exec.Command calls in
// cmd/lumenc.
package toolchain

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Tool is a discovered external binary and the minimum version it must
// satisfy before the driver will shell out to it.
type Tool struct {
	Name       string
	Path       string
	MinVersion *semver.Version
}

// MinNasmVersion and MinLdVersion are the lowest versions this driver is
// known to produce compatible output for.
var (
	MinNasmVersion = semver.MustParse("2.14.0")
	MinLdVersion   = semver.MustParse("2.30.0")
)

// Find locates name on PATH and verifies it reports at least minVersion via
// `<name> -v` (nasm/ld both support this flag). ExecutableOnPath repeats the
// platform-specific executable-bit check on the path exec.LookPath returned.
func Find(name string, minVersion *semver.Version) (*Tool, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("toolchain: %s not found on PATH: %w", name, err)
	}
	if err := ExecutableOnPath(path); err != nil {
		return nil, fmt.Errorf("toolchain: %s is not executable: %w", name, err)
	}

	out, err := exec.Command(path, "-v").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("toolchain: could not query %s version: %w", name, err)
	}

	v, err := parseVersion(string(out))
	if err != nil {
		return nil, fmt.Errorf("toolchain: could not parse %s version from %q: %w", name, out, err)
	}
	if v.LessThan(minVersion) {
		return nil, fmt.Errorf("toolchain: %s version %s is older than the required %s", name, v, minVersion)
	}

	return &Tool{Name: name, Path: path, MinVersion: minVersion}, nil
}

// parseVersion pulls the first semver-shaped token out of a version banner
// like "NASM version 2.16.01 compiled on ...".
func parseVersion(banner string) (*semver.Version, error) {
	for _, field := range strings.Fields(banner) {
		if v, err := semver.NewVersion(field); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no version token found")
}
