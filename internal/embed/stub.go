// Package embed generates the Go source for a standalone native executable
// that links a host-provided VM library and runs one embedded chunk,
// per spec.md §6. It performs no compilation itself; emberc shells out to
// `go build` against the emitted source.
package embed

import (
	"fmt"
	"strings"
)

// Stub returns package-main Go source declaring chunkBytes as a []byte
// literal and calling vm.NewFromBytes/(*VM).Run on it.
func Stub(chunk []byte, packageName string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Code generated by emberc from %s; DO NOT EDIT.\n", packageName)
	sb.WriteString("package main\n\n")
	sb.WriteString("import (\n")
	sb.WriteString("\t\"fmt\"\n")
	sb.WriteString("\t\"os\"\n\n")
	sb.WriteString("\t\"github.com/simondevenish/EmberScript/internal/vm\"\n")
	sb.WriteString(")\n\n")

	sb.WriteString("var chunkBytes = []byte{")
	for i, b := range chunk {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "0x%02x", b)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("func main() {\n")
	sb.WriteString("\tc, err := vm.NewFromBytes(chunkBytes)\n")
	sb.WriteString("\tif err != nil {\n")
	sb.WriteString("\t\tfmt.Fprintln(os.Stderr, err)\n")
	sb.WriteString("\t\tos.Exit(3)\n")
	sb.WriteString("\t}\n")
	sb.WriteString("\tm := vm.New(c)\n")
	sb.WriteString("\tif err := m.Run(func(s string) { fmt.Println(s) }); err != nil {\n")
	sb.WriteString("\t\tfmt.Fprintln(os.Stderr, err)\n")
	sb.WriteString("\t\tos.Exit(2)\n")
	sb.WriteString("\t}\n")
	sb.WriteString("}\n")

	return []byte(sb.String())
}
