package codegen

// emitBuiltinRuntime inlines the four tiny built-in printers into every
// program (spec §4.4). Each delegates to the C runtime's printf; the ABI's
// call convention decides which registers carry the format string and the
// value.
func (g *Generator) emitBuiltinRuntime() {
	fmtReg, valReg := g.printfArgRegs()

	g.buf.WriteString("_print_int:\n")
	g.emitFramelessPrologue()
	g.buf.WriteString("  mov " + valReg + ", " + g.intArgRegs()[0] + "\n")
	g.buf.WriteString("  lea " + fmtReg + ", [rel fmt_int]\n")
	g.emitPrintfCall(false)
	g.emitFramelessEpilogue()

	g.buf.WriteString("_print_float:\n")
	g.emitFramelessPrologue()
	g.buf.WriteString("  mov " + valReg + ", " + g.intArgRegs()[0] + "\n")
	g.buf.WriteString("  lea " + fmtReg + ", [rel fmt_float]\n")
	g.emitPrintfCall(true)
	g.emitFramelessEpilogue()

	g.buf.WriteString("_print_str:\n")
	g.emitFramelessPrologue()
	g.buf.WriteString("  mov " + valReg + ", " + g.intArgRegs()[0] + "\n")
	g.buf.WriteString("  lea " + fmtReg + ", [rel fmt_str]\n")
	g.emitPrintfCall(false)
	g.emitFramelessEpilogue()

	g.buf.WriteString("_print_bool:\n")
	g.emitFramelessPrologue()
	g.buf.WriteString("  lea rax, [rel str_true]\n")
	g.buf.WriteString("  lea rcx, [rel str_false]\n")
	g.buf.WriteString("  cmp " + g.intArgRegs()[0] + ", 0\n")
	g.buf.WriteString("  cmovz rax, rcx\n")
	g.buf.WriteString("  mov " + valReg + ", rax\n")
	g.buf.WriteString("  lea " + fmtReg + ", [rel fmt_str]\n")
	g.emitPrintfCall(false)
	g.emitFramelessEpilogue()
}

// printfArgRegs returns the (format, value) registers printf's call expects
// in the active ABI: the first two integer argument registers.
func (g *Generator) printfArgRegs() (fmtReg, valReg string) {
	regs := g.intArgRegs()
	return regs[0], regs[1]
}

func (g *Generator) emitFramelessPrologue() {
	g.buf.WriteString("  push rbp\n")
	g.buf.WriteString("  mov rbp, rsp\n")
	if g.shadowSpace() > 0 {
		g.buf.WriteString("  sub rsp, 32\n")
	} else {
		g.buf.WriteString("  sub rsp, 16\n") // maintain 16-byte alignment across the call
	}
}

func (g *Generator) emitFramelessEpilogue() {
	g.buf.WriteString("  mov rsp, rbp\n")
	g.buf.WriteString("  pop rbp\n")
	g.buf.WriteString("  ret\n")
}

// emitPrintfCall invokes printf. Under System V it first sets rax to the
// number of vector registers used by the variadic call (spec §4.4): 0, or 1
// when isFloat, in which case the pending value is also moved into xmm0.
// Under Win64 rax is left as it is.
func (g *Generator) emitPrintfCall(isFloat bool) {
	if g.abi == SystemV {
		if isFloat {
			g.buf.WriteString("  movq xmm0, " + g.intArgRegs()[1] + "\n")
			g.buf.WriteString("  mov rax, 1\n")
		} else {
			g.buf.WriteString("  mov rax, 0\n")
		}
	}
	g.buf.WriteString("  call printf\n")
}
