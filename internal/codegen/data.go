package codegen

import (
	"fmt"
	"strings"
)

// emitDataSection writes the fixed format-string/boolean constants plus every
// interned string literal, each as NUL-terminated comma-separated decimal
// bytes (spec §6 Assembly output contract).
func (g *Generator) emitDataSection() {
	g.buf.WriteString("section .data\n")
	writeBytes(&g.buf, "fmt_int", "%lld\n")
	writeBytes(&g.buf, "fmt_float", "%g\n")
	writeBytes(&g.buf, "fmt_str", "%s\n")
	writeBytes(&g.buf, "str_true", "true")
	writeBytes(&g.buf, "str_false", "false")

	for _, content := range g.strs.order {
		writeBytes(&g.buf, g.strs.labels[content], content)
	}
}

func writeBytes(b *strings.Builder, label, content string) {
	fmt.Fprintf(b, "%s: db ", label)
	for i := 0; i < len(content); i++ {
		fmt.Fprintf(b, "%d,", content[i])
	}
	b.WriteString("0\n")
}
