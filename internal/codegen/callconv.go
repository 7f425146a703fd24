package codegen

import "runtime"

// intArgRegs returns the integer/pointer argument registers for the ABI, in
// order, per spec §4.4.
func (g *Generator) intArgRegs() []string {
	switch g.abi {
	case Win64:
		return []string{"rcx", "rdx", "r8", "r9"}
	default:
		return []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}
	}
}

// floatArgRegs returns the float argument registers for the ABI, in order.
func (g *Generator) floatArgRegs() []string {
	return []string{"xmm0", "xmm1", "xmm2", "xmm3"}
}

// shadowSpace is the caller-reserved scratch area required before a call
// under Win64; System V callers reserve nothing.
func (g *Generator) shadowSpace() int {
	if g.abi == Win64 {
		return 32
	}
	return 0
}

// HostABI selects System V for POSIX hosts and Win64 for Windows, matching
// the compile-time host detection of spec §4.4.
func HostABI() ABI {
	if runtime.GOOS == "windows" {
		return Win64
	}
	return SystemV
}

func (a ABI) String() string {
	if a == Win64 {
		return "win64"
	}
	return "systemv"
}
