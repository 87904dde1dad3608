package asm

import (
	"testing"

	"github.com/nyasm/qasm/internal/config"
)

func TestFirstPass_Basic(t *testing.T) {
	limits := config.Default()

	src := []string{
		"MAIN: mov #5, r1",
		"      add r1, r2",
		"NUM:  .data 7, 8, 9",
		"      stop",
	}

	result, err := FirstPass(limits, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	main, ok := result.Symbols.Lookup("MAIN")
	if !ok || main.Address != uint16(limits.Memory.ICStart) || main.Kind != KindCode {
		t.Errorf("MAIN = %+v", main)
	}

	num, ok := result.Symbols.Lookup("NUM")
	if !ok || num.Kind != KindData {
		t.Fatalf("NUM = %+v", num)
	}

	// NUM was defined at DC=0, then rebased by ICFinal.
	if num.Address != result.ICFinal {
		t.Errorf("NUM.Address = %d, want %d (rebased to ICFinal)", num.Address, result.ICFinal)
	}

	if result.DCFinal != 3 {
		t.Errorf("DCFinal = %d, want 3", result.DCFinal)
	}
}

func TestFirstPass_DuplicateLabel(t *testing.T) {
	limits := config.Default()

	src := []string{
		"L: clr r1",
		"L: clr r2",
	}

	if _, err := FirstPass(limits, src); err == nil {
		t.Error("expected duplicate-symbol error")
	}
}

func TestFirstPass_ExternAndEntry(t *testing.T) {
	limits := config.Default()

	src := []string{
		".extern FOO",
		"LOOP: jmp FOO",
		".entry LOOP",
	}

	result, err := FirstPass(limits, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	foo, ok := result.Symbols.Lookup("FOO")
	if !ok || foo.Kind != KindExternal {
		t.Errorf("FOO = %+v", foo)
	}

	loop, ok := result.Symbols.Lookup("LOOP")
	if !ok || !loop.IsEntry || loop.Kind != KindCode {
		t.Errorf("LOOP = %+v", loop)
	}
}

func TestFirstPass_ExternEntryConflict(t *testing.T) {
	limits := config.Default()

	src := []string{
		".extern FOO",
		".entry FOO",
	}

	if _, err := FirstPass(limits, src); err == nil {
		t.Error("expected extern/entry conflict error")
	}
}

func TestFirstPass_IllegalAddressingMode(t *testing.T) {
	limits := config.Default()

	src := []string{"lea #3, r1"}

	if _, err := FirstPass(limits, src); err == nil {
		t.Error("expected illegal-addressing-mode error")
	}
}

func TestFirstPass_MatrixDirective(t *testing.T) {
	limits := config.Default()

	src := []string{"M: .mat [2][2] 1, 2, 3, 4"}

	result, err := FirstPass(limits, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.DCFinal != 4 {
		t.Errorf("DCFinal = %d, want 4", result.DCFinal)
	}

	m, ok := result.Symbols.Lookup("M")
	if !ok || m.Kind != KindData {
		t.Errorf("M = %+v", m)
	}
}

func TestFirstPass_StringDirective(t *testing.T) {
	limits := config.Default()

	src := []string{`S: .string "hi"`}

	result, err := FirstPass(limits, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.DCFinal != 3 {
		t.Errorf("DCFinal = %d, want 3 (2 chars + terminator)", result.DCFinal)
	}
}
