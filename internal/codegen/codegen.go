// Package codegen emits textual NASM-compatible x86-64 assembly for a
// type-checked Lumen Program. Values are handled uniformly as 64-bit
// quantities; floats move between a general register and xmm0 as needed
// (spec §4.4 — see also the Design Notes on float routing fidelity).
package codegen

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumenc/internal/ast"
	"github.com/lumen-lang/lumenc/internal/types"
)

// ABI selects the calling convention to emit, chosen at Generate time by host
// detection (or overridden by the driver's --target flag).
type ABI int

const (
	SystemV ABI = iota // Linux/macOS: integer args in rdi,rsi,rdx,rcx,r8,r9
	Win64              // Windows x64: integer args in rcx,rdx,r8,r9 + shadow space
)

// frameSlab is the fixed per-function stack reservation (spec §4.4's Design
// Note: not size-driven — a correct reimplementation would compute the exact
// frame size in a pre-pass and align up to 16 bytes instead).
const (
	frameSlabFunc = 128
	frameSlabMain = 256
)

// localSlot is a declared local's storage: its stack offset, static type, and
// mutability.
type localSlot struct {
	Offset  int
	Type    types.Info
	Mutable bool
}

type localScope map[string]localSlot

// loopTarget is an explicit (break, continue) label pair. A redesign of the
// counter-coupled original scheme (spec §9) — callers push one per loop on
// entry and pop it on exit, so nested loops never need to recompute label
// numbers to find their target.
type loopTarget struct {
	BreakLabel    string
	ContinueLabel string
}

// Generator holds all per-compilation state: the output buffer, the
// code-generator's own scope stack (distinct from the type checker's, since
// each phase's symbol tables are discarded at its own teardown), the label
// factory, the string intern table, and the loop-target stack.
type Generator struct {
	abi ABI

	buf strings.Builder

	scopes    []localScope
	frameOff  int // next free stack offset (positive distance below rbp)
	loopStack []loopTarget

	labelCounter int
	strs         *stringTable

	funcs map[string]funcInfo // declared function name -> param/return info, for call-site typing
}

type funcInfo struct {
	Params []types.Info
	Return types.Info
}

// Generate lowers a type-checked Program to NASM assembly text using the ABI
// appropriate for the current host OS.
func Generate(prog *ast.Program) (string, error) {
	return GenerateForABI(prog, HostABI())
}

// GenerateForABI is Generate with an explicit ABI override (driver --target).
func GenerateForABI(prog *ast.Program, abi ABI) (string, error) {
	g := &Generator{abi: abi, strs: newStringTable(), funcs: map[string]funcInfo{}}
	return g.run(prog)
}

func (g *Generator) run(prog *ast.Program) (string, error) {
	var funcs []*ast.Function
	var topLevel []ast.Statement

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.Function:
			funcs = append(funcs, s)
			g.funcs[s.Name] = funcInfo{Params: paramTypes(s), Return: types.FromName(s.ReturnType.Name)}
		case *ast.Import:
			// dropped: no semantic effect in the core (spec §9).
		default:
			topLevel = append(topLevel, stmt)
		}
	}

	g.emitHeader()

	g.buf.WriteString("section .text\n")
	for _, fn := range funcs {
		if err := g.emitFunction(fn); err != nil {
			return "", err
		}
	}
	g.emitBuiltinRuntime()

	if err := g.emitMain(topLevel); err != nil {
		return "", err
	}

	g.emitDataSection()
	g.buf.WriteString("section .bss\n")

	return g.buf.String(), nil
}

func paramTypes(fn *ast.Function) []types.Info {
	out := make([]types.Info, len(fn.Params))
	for i, p := range fn.Params {
		out[i] = types.FromName(p.Type.Name)
	}
	return out
}

func (g *Generator) emitHeader() {
	g.buf.WriteString("default rel\n")
	g.buf.WriteString("global main\n")
	g.buf.WriteString("extern printf\n")
	if g.abi == Win64 {
		g.buf.WriteString("extern ExitProcess\n")
	}
}

func (g *Generator) newLabel(prefix string) string {
	g.labelCounter++
	return fmt.Sprintf(".L%s_%d", prefix, g.labelCounter)
}

func (g *Generator) pushScope() { g.scopes = append(g.scopes, localScope{}) }
func (g *Generator) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

// declareLocal allocates the next 8-byte stack slot for name and records its
// type and mutability in the innermost scope.
func (g *Generator) declareLocal(name string, t types.Info, mutable bool) localSlot {
	g.frameOff += 8
	slot := localSlot{Offset: g.frameOff, Type: t, Mutable: mutable}
	g.scopes[len(g.scopes)-1][name] = slot
	return slot
}

// resolveLocal looks up name from the innermost scope outward. ok is false
// for an undeclared name (spec §3 invariant: code-gen emits a zero
// placeholder for these — see emitIdentifier).
func (g *Generator) resolveLocal(name string) (localSlot, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if slot, ok := g.scopes[i][name]; ok {
			return slot, true
		}
	}
	return localSlot{}, false
}
