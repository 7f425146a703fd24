// Command lumenc is the Lumen compiler driver: argument parsing, file I/O,
// and invocation of the external assembler/linker (spec §6) around the
// lexer/parser/typechecker/codegen core in internal/.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	lumencli "github.com/lumen-lang/lumenc/internal/cli"
)

var version = lumencli.Version

func main() {
	app := &cli.App{
		Name:    "lumenc",
		Usage:   "compile a Lumen source file to a native executable",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print --version output as JSON"},
		},
		Commands: []*cli.Command{
			buildCommand(),
			runCommand(),
		},
	}
	cli.VersionPrinter = func(c *cli.Context) {
		lumencli.PrintVersion("lumenc", c.Bool("json"))
	}

	if err := app.Run(os.Args); err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

// reportFailure prints a driver-level failure. When wrapped with tracerr (IO
// and toolchain errors are, in build.go) it prints the call stack too, the
// way --verbose asks the driver to explain where in itself a failure
// originated rather than only what the failure was.
func reportFailure(err error) {
	if st, ok := err.(tracerr.Error); ok {
		fmt.Fprintln(os.Stderr, tracerr.Sprint(st))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
