package embed_test

import (
	"strings"
	"testing"

	"github.com/simondevenish/EmberScript/internal/embed"
)

func TestStubEmitsRunnableMainPackage(t *testing.T) {
	src := string(embed.Stub([]byte{0x01, 0x02, 0xff}, "demo.ember"))
	if !strings.Contains(src, "package main") {
		t.Fatalf("expected a package main declaration, got:\n%s", src)
	}
	if !strings.Contains(src, "0x01,0x02,0xff") {
		t.Fatalf("expected the chunk bytes inlined as a literal, got:\n%s", src)
	}
	if !strings.Contains(src, "vm.NewFromBytes") || !strings.Contains(src, "vm.New(") {
		t.Fatalf("expected the stub to call vm.NewFromBytes and vm.New, got:\n%s", src)
	}
}
