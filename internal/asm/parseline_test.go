package asm

import (
	"strings"
	"testing"

	"github.com/nyasm/qasm/internal/config"
)

func TestParseLine_Basic(t *testing.T) {
	limits := config.Default()

	p, err := ParseLine(limits, "LOOP: add r1, r2, r3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Label != "LOOP" || p.Command != "add" {
		t.Fatalf("got label=%q command=%q", p.Label, p.Command)
	}

	if want := []string{"r1", "r2", "r3"}; !equalStrings(p.Operands, want) {
		t.Errorf("operands = %v, want %v", p.Operands, want)
	}
}

func TestParseLine_NoLabel(t *testing.T) {
	limits := config.Default()

	p, err := ParseLine(limits, "  mov r1, r2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Label != "" || p.Command != "mov" {
		t.Fatalf("got label=%q command=%q", p.Label, p.Command)
	}
}

func TestParseLine_BlankAndComment(t *testing.T) {
	limits := config.Default()

	for _, line := range []string{"", "   ", "; a comment", "  ; indented comment"} {
		p, err := ParseLine(limits, line)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", line, err)
		}

		if !p.Empty() {
			t.Errorf("ParseLine(%q) not empty: %+v", line, p)
		}
	}
}

func TestParseLine_TooLong(t *testing.T) {
	limits := config.Default()

	long := strings.Repeat("a", limits.Line.MaxLength+1)

	if _, err := ParseLine(limits, long); err == nil {
		t.Error("expected error for over-length line")
	}
}

func TestParseLine_UnknownCommand(t *testing.T) {
	limits := config.Default()

	if _, err := ParseLine(limits, "frobnicate r1"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestParseLine_QuotedOperand(t *testing.T) {
	limits := config.Default()

	p, err := ParseLine(limits, `STR: .string "hello, world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Operands) != 1 || p.Operands[0] != `"hello, world"` {
		t.Errorf("operands = %v", p.Operands)
	}
}

func TestSplitOperands_Errors(t *testing.T) {
	if _, err := splitOperands("a,,b"); err == nil {
		t.Error("expected error for doubled comma")
	}

	if _, err := splitOperands(",a"); err == nil {
		t.Error("expected error for leading comma")
	}

	if _, err := splitOperands("a,"); err == nil {
		t.Error("expected error for trailing comma")
	}

	if _, err := splitOperands(`"unterminated`); err == nil {
		t.Error("expected error for unterminated quote")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
