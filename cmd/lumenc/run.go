package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ztrue/tracerr"
)

// readFile wraps os.ReadFile with a phase-tagged error matching the rest of
// the driver's diagnostics, per spec §6's read-phase contract.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(fmt.Errorf("Error [read]: %w", err))
	}
	return string(data), nil
}

// runCompiledProgram implements the "run" subcommand: compile to a
// temporary executable in the cache directory, execute it, stream its
// stdout/stderr through, and propagate its exit code.
func runCompiledProgram(input string, verbose bool) error {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	exePath, err := cacheArtifactPath(stem, "")
	if err != nil {
		return err
	}

	opts := Options{
		InputFile:  input,
		OutputFile: exePath,
		Verbose:    verbose,
	}
	if err := Compile(opts); err != nil {
		return err
	}
	defer os.Remove(exePath)

	cmd := exec.Command(exePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}
