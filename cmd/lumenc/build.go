package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/lumen-lang/lumenc/internal/codegen"
	"github.com/lumen-lang/lumenc/internal/parser"
	"github.com/lumen-lang/lumenc/internal/toolchain"
	"github.com/lumen-lang/lumenc/internal/typechecker"
)

// Options mirrors the driver contract of spec §6: an input file, an optional
// output path, and flags controlling whether to stop at assembly and
// whether to keep it.
type Options struct {
	InputFile        string
	OutputFile       string
	EmitAssemblyOnly bool
	KeepAssembly     bool
	Verbose          bool
	Target           string // "", "linux", "darwin", "windows" — overrides host ABI detection
}

// Compile runs the full pipeline and, unless EmitAssemblyOnly, invokes the
// external assembler and linker. It returns an error on the first failure in
// any phase (spec §7: first error terminates the entire compilation; no
// partial outputs persist).
func Compile(opts Options) error {
	source, err := readFile(opts.InputFile)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(source, opts.InputFile)
	if err != nil {
		return err
	}

	if err := typechecker.Check(prog); err != nil {
		return err
	}

	abi := resolveABI(opts.Target)
	asm, err := codegen.GenerateForABI(prog, abi)
	if err != nil {
		return err
	}

	if opts.EmitAssemblyOnly {
		fmt.Print(asm)
		return nil
	}

	stem := strings.TrimSuffix(filepath.Base(opts.InputFile), filepath.Ext(opts.InputFile))
	outputExe := opts.OutputFile
	if outputExe == "" {
		outputExe = stem
	}

	asmStem := stem
	if opts.KeepAssembly {
		asmStem = filepath.Join(filepath.Dir(opts.InputFile), stem)
	}
	asmPath, cleanupAsm, err := writeAssembly(asmStem, asm, opts.KeepAssembly)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer cleanupAsm()

	objPath, err := assemble(asmPath, abi, opts.Verbose)
	if err != nil {
		return err
	}
	defer os.Remove(objPath)

	if err := link(objPath, outputExe, abi, opts.Verbose); err != nil {
		return err
	}

	return nil
}

func resolveABI(target string) codegen.ABI {
	switch target {
	case "windows":
		return codegen.Win64
	case "linux", "darwin":
		return codegen.SystemV
	default:
		return codegen.HostABI()
	}
}

// writeAssembly writes asm either alongside the source (keep requested) or
// under the cache directory (spec §2.2), returning its path and a cleanup
// func that removes it unless keep is set.
func writeAssembly(stem, asm string, keep bool) (path string, cleanup func(), err error) {
	if keep {
		path = stem + ".asm"
	} else {
		path, err = cacheArtifactPath(stem, ".asm")
		if err != nil {
			return "", nil, err
		}
	}

	if err := os.WriteFile(path, []byte(asm), 0o644); err != nil {
		return "", nil, err
	}

	cleanup = func() {
		if !keep {
			os.Remove(path)
		}
	}
	return path, cleanup, nil
}

// assemble invokes nasm per spec §6: elf64/macho64 on POSIX, win64 (falling
// back to win32) on Windows.
func assemble(asmPath string, abi codegen.ABI, verbose bool) (string, error) {
	nasm, err := toolchain.Find("nasm", toolchain.MinNasmVersion)
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	objPath := strings.TrimSuffix(asmPath, filepath.Ext(asmPath)) + ".o"
	format := nasmFormat(abi)

	cmd := exec.Command(nasm.Path, "-f", format, asmPath, "-o", objPath)
	if verbose {
		fmt.Fprintln(os.Stderr, cmd.String())
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("Error [assembler]: %s", strings.TrimSpace(string(out)))
	}
	return objPath, nil
}

func nasmFormat(abi codegen.ABI) string {
	switch abi {
	case codegen.Win64:
		return "win64"
	default:
		if runtime.GOOS == "darwin" {
			return "macho64"
		}
		return "elf64"
	}
}

// link invokes the system linker per spec §6, falling back to gcc when the
// primary linker is unavailable.
func link(objPath, outputExe string, abi codegen.ABI, verbose bool) error {
	if abi == codegen.Win64 {
		return linkWindows(objPath, outputExe, verbose)
	}
	return linkPOSIX(objPath, outputExe, verbose)
}

func linkPOSIX(objPath, outputExe string, verbose bool) error {
	ld, err := toolchain.Find("ld", toolchain.MinLdVersion)
	if err == nil {
		cmd := exec.Command(ld.Path, objPath, "-o", outputExe, "-dynamic-linker", dynamicLinkerPath(), "-lc")
		if verbose {
			fmt.Fprintln(os.Stderr, cmd.String())
		}
		if out, lerr := cmd.CombinedOutput(); lerr == nil {
			return nil
		} else if verbose {
			fmt.Fprintln(os.Stderr, string(out))
		}
	}

	// Fallback: gcc -no-pie.
	cmd := exec.Command("gcc", "-no-pie", objPath, "-o", outputExe)
	if verbose {
		fmt.Fprintln(os.Stderr, cmd.String())
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("Error [linker]: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func linkWindows(objPath, outputExe string, verbose bool) error {
	cmd := exec.Command("link", "/subsystem:console", "/entry:main", objPath, "/out:"+outputExe+".exe")
	if verbose {
		fmt.Fprintln(os.Stderr, cmd.String())
	}
	if out, err := cmd.CombinedOutput(); err == nil {
		return nil
	} else if verbose {
		fmt.Fprintln(os.Stderr, string(out))
	}

	cmd = exec.Command("gcc", objPath, "-o", outputExe+".exe")
	if verbose {
		fmt.Fprintln(os.Stderr, cmd.String())
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("Error [linker]: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func dynamicLinkerPath() string {
	if runtime.GOARCH == "arm64" {
		return "/lib/ld-linux-aarch64.so.1"
	}
	return "/lib64/ld-linux-x86-64.so.2"
}
