package asm

import (
	"errors"
	"fmt"
)

// Sentinel errors identify the broad category of a failure; concrete error
// values below wrap one of these so callers can test with errors.Is without
// caring about the precise diagnostic.
var (
	// ErrLexical covers malformed lines: control characters, lines that are
	// too long, malformed labels, numbers or quoted strings.
	ErrLexical = errors.New("lexical error")

	// ErrSyntax covers malformed structure: unknown commands, wrong operand
	// counts, malformed matrix indices, stray commas.
	ErrSyntax = errors.New("syntax error")

	// ErrSemantic covers meaning errors that are only detectable once
	// symbols and operand modes are known: duplicate definitions, undefined
	// symbols, extern/entry/local conflicts, illegal addressing modes.
	ErrSemantic = errors.New("semantic error")

	// ErrResource covers I/O and allocation failures unrelated to source
	// content.
	ErrResource = errors.New("resource error")
)

// LineError annotates an error with the line number (in the expanded source)
// and the offending text, the way the teacher's SyntaxError wraps a cause
// with source position.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// SemanticError reports a meaning error discovered while resolving a symbol
// or validating an addressing mode. Opcode and Slot are set when the error
// concerns a specific operand position; both are zero otherwise.
type SemanticError struct {
	Reason string
	Symbol string
	Opcode string
	Slot   int
}

func (e *SemanticError) Error() string {
	switch {
	case e.Opcode != "":
		return fmt.Sprintf("%s: %s: %s (operand %d)", ErrSemantic, e.Reason, e.Opcode, e.Slot)
	case e.Symbol != "":
		return fmt.Sprintf("%s: %s: %q", ErrSemantic, e.Reason, e.Symbol)
	default:
		return fmt.Sprintf("%s: %s", ErrSemantic, e.Reason)
	}
}

func (e *SemanticError) Unwrap() error { return ErrSemantic }

// ErrExternEntryConflict is the supplemental diagnostic this assembler adds
// over the distilled specification: a symbol cannot be both external and an
// entry point, matching the original C implementation's behaviour.
var ErrExternEntryConflict = errors.New("symbol cannot be both external and entry")

// ErrDuplicateSymbol is returned by SymbolTable.Define when a symbol is
// already defined.
var ErrDuplicateSymbol = errors.New("symbol already defined")

// ErrUndefinedSymbol is returned when an operand references a symbol that is
// neither defined locally nor declared external.
var ErrUndefinedSymbol = errors.New("undefined symbol")

// passErrors accumulates every diagnostic a pass encounters. A pass keeps
// going after an error (report and continue scanning) and fails only once,
// at the very end, iff anything was recorded.
type passErrors struct {
	errs []error
}

func (p *passErrors) add(err error) {
	if err != nil {
		p.errs = append(p.errs, err)
	}
}

func (p *passErrors) failed() bool { return len(p.errs) > 0 }

func (p *passErrors) err() error {
	if len(p.errs) == 0 {
		return nil
	}

	return errors.Join(p.errs...)
}
