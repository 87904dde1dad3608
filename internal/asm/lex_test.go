package asm

import (
	"testing"

	"github.com/nyasm/qasm/internal/config"
)

func TestIsDirective(t *testing.T) {
	for _, name := range []string{".data", ".string", ".mat", ".extern", ".entry"} {
		if !isDirective(name) {
			t.Errorf("isDirective(%q) = false, want true", name)
		}
	}

	if isDirective(".foo") {
		t.Error("isDirective(.foo) = true, want false")
	}
}

func TestRegisterNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"r0", 0}, {"r7", 7}, {"R3", 3}, {"r8", -1}, {"rr", -1}, {"x1", -1}, {"r", -1},
	}

	for _, c := range cases {
		if got := registerNumber(c.in); got != c.want {
			t.Errorf("registerNumber(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsValidLabel(t *testing.T) {
	limits := config.Default()

	good := []string{"LOOP", "x1", "a", "Main2"}
	for _, s := range good {
		if !isValidLabel(s, limits) {
			t.Errorf("isValidLabel(%q) = false, want true", s)
		}
	}

	bad := []string{"1x", "r3", "mov", ".data"[1:], "", "_foo"}
	for _, s := range bad {
		if isValidLabel(s, limits) {
			t.Errorf("isValidLabel(%q) = true, want false", s)
		}
	}

	long := make([]byte, limits.Symbol.MaxLabelLength+1)
	for i := range long {
		long[i] = 'a'
	}

	if isValidLabel(string(long), limits) {
		t.Error("isValidLabel(too-long) = true, want false")
	}
}

func TestIsValidMacroName(t *testing.T) {
	limits := config.Default()

	if !isValidMacroName("my_macro", limits) {
		t.Error("isValidMacroName(my_macro) = false, want true")
	}

	for _, s := range []string{"mcro", "mcroend", "r1", "add"} {
		if isValidMacroName(s, limits) {
			t.Errorf("isValidMacroName(%q) = true, want false", s)
		}
	}
}

func TestClassifyOperand(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"r3", ModeRegister},
		{"#7", ModeImmediate},
		{"#-3", ModeImmediate},
		{"LOOP", ModeDirect},
		{"M[r1][r2]", ModeMatrix},
	}

	for _, c := range cases {
		mode, err := classifyOperand(c.in)
		if err != nil {
			t.Errorf("classifyOperand(%q) error: %v", c.in, err)
			continue
		}

		if mode != c.want {
			t.Errorf("classifyOperand(%q) = %v, want %v", c.in, mode, c.want)
		}
	}

	if _, err := classifyOperand("#abc"); err == nil {
		t.Error("classifyOperand(#abc) succeeded, want error")
	}

	if _, err := classifyOperand("3bad"); err == nil {
		t.Error("classifyOperand(3bad) succeeded, want error")
	}
}

func TestParseMatrixOperand(t *testing.T) {
	label, r1, r2, err := parseMatrixOperand("M[r1][r2]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if label != "M" || r1 != 1 || r2 != 2 {
		t.Errorf("parseMatrixOperand = %q, %d, %d, want M, 1, 2", label, r1, r2)
	}

	if _, _, _, err := parseMatrixOperand("M[r1]"); err == nil {
		t.Error("parseMatrixOperand(M[r1]) succeeded, want error")
	}
}

func TestParseMatDims(t *testing.T) {
	rows, cols, rest, err := parseMatDims("[2][3]1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rows != 2 || cols != 3 || rest != "1" {
		t.Errorf("parseMatDims = %d, %d, %q, want 2, 3, \"1\"", rows, cols, rest)
	}

	if _, _, _, err := parseMatDims("[2]"); err == nil {
		t.Error("parseMatDims([2]) succeeded, want error")
	}
}
