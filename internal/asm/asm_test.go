package asm

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/nyasm/qasm/internal/base4"
	"github.com/nyasm/qasm/internal/config"
)

func TestAssemble_Trivial(t *testing.T) {
	limits := config.Default()

	src := "MAIN: mov #1, r1\n" +
		"      stop\n"

	out, err := Assemble(limits, nil, "trivial", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out.Object), "\n"), "\n")
	if len(lines) != 5 { // header + mov's 3 words (opcode, immediate, register) + stop's 1 word
		t.Fatalf("object lines = %v", lines)
	}

	if out.Entries != nil {
		t.Errorf("Entries = %q, want nil", out.Entries)
	}

	if out.Externals != nil {
		t.Errorf("Externals = %q, want nil", out.Externals)
	}
}

func TestAssemble_EntryAndExternal(t *testing.T) {
	limits := config.Default()

	src := ".extern SHARED\n" +
		"MAIN: jmp SHARED\n" +
		".entry MAIN\n"

	out, err := Assemble(limits, nil, "linkage", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := base4.ParseEntries(bufio.NewScanner(bytes.NewReader(out.Entries)))
	if err != nil {
		t.Fatalf("parsing entries: %v", err)
	}

	if len(entries) != 1 || entries[0].Name != "MAIN" || entries[0].Address != uint16(limits.Memory.ICStart) {
		t.Errorf("entries = %v", entries)
	}

	externals, err := base4.ParseEntries(bufio.NewScanner(bytes.NewReader(out.Externals)))
	if err != nil {
		t.Fatalf("parsing externals: %v", err)
	}

	if len(externals) != 1 || externals[0].Name != "SHARED" {
		t.Errorf("externals = %v", externals)
	}
}

func TestAssemble_DataRebasing(t *testing.T) {
	limits := config.Default()

	src := "MAIN: mov #1, r1\n" +
		"NUM:  .data 42\n" +
		"      lea NUM, r2\n" +
		"      stop\n"

	out, err := Assemble(limits, nil, "rebase", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Object) == 0 {
		t.Fatal("empty object output")
	}
}

func TestAssemble_DuplicateLabelFails(t *testing.T) {
	limits := config.Default()

	src := "L: clr r1\nL: clr r2\n"

	if _, err := Assemble(limits, nil, "dup", strings.NewReader(src)); err == nil {
		t.Error("expected error for duplicate label")
	}
}

func TestAssemble_MatrixOperand(t *testing.T) {
	limits := config.Default()

	src := "M: .mat [2][2] 1, 2, 3, 4\n" +
		"   mov M[r1][r2], r3\n" +
		"   stop\n"

	out, err := Assemble(limits, nil, "matrix", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Object) == 0 {
		t.Fatal("empty object output")
	}
}
