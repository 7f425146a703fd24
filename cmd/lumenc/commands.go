package main

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"

	"github.com/lumen-lang/lumenc/internal/parser"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "compile a Lumen source file to a native executable",
		ArgsUsage: "<file.lum>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output executable path"},
			&cli.BoolFlag{Name: "emit-asm", Aliases: []string{"S"}, Usage: "write assembly to stdout instead of linking"},
			&cli.BoolFlag{Name: "keep-asm", Usage: "keep the generated .asm file alongside the source"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print assembler/linker invocations"},
			&cli.BoolFlag{Name: "watch", Usage: "recompile whenever the source file changes"},
			&cli.BoolFlag{Name: "dump-ast", Usage: "print the parsed AST and exit, without type-checking or code-gen"},
			&cli.StringFlag{Name: "target", Usage: "override host detection: linux, darwin, or windows"},
			&cli.StringFlag{Name: "config", Usage: "path to a lumen.yaml project file"},
		},
		Action: runBuild,
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "compile and immediately execute a Lumen source file",
		ArgsUsage: "<file.lum>",
		Action:    runAndExecute,
	}
}

func runBuild(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("lumenc build: expected exactly one input file", 1)
	}
	input := c.Args().Get(0)

	if c.Bool("dump-ast") {
		return dumpAST(input)
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	opts := Options{
		InputFile:        input,
		OutputFile:       firstNonEmpty(c.String("output"), cfg.Output),
		EmitAssemblyOnly: c.Bool("emit-asm"),
		KeepAssembly:     cfg.KeepAsm,
		Verbose:          c.Bool("verbose"),
		Target:           firstNonEmpty(c.String("target"), cfg.Target),
	}
	if c.IsSet("keep-asm") {
		opts.KeepAssembly = c.Bool("keep-asm")
	}

	if c.Bool("watch") {
		return watch(input, opts)
	}

	if err := Compile(opts); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func runAndExecute(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("lumenc run: expected exactly one input file", 1)
	}
	return runCompiledProgram(c.Args().Get(0), c.Bool("verbose"))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// dumpAST parses (but does not type-check or code-gen) input and pretty
// prints its AST with alecthomas/repr, for --dump-ast debugging.
func dumpAST(input string) error {
	source, err := readFile(input)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	prog, err := parser.Parse(source, input)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Println(repr.String(prog, repr.Indent("  ")))
	return nil
}
