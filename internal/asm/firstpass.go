package asm

// firstpass.go walks the macro-expanded source once, building the symbol
// table and counting instruction and data words. It never emits object code;
// that is the second pass's job, once every label's final address is known.

import (
	"strconv"
	"strings"

	"github.com/nyasm/qasm/internal/config"
)

// FirstPassResult is everything the second pass needs that only becomes
// known once the whole source has been scanned once: the symbol table (with
// data addresses already rebased past the instruction segment) and the final
// instruction and data counters.
type FirstPassResult struct {
	Symbols *SymbolTable
	ICFinal uint16
	DCFinal uint16
}

// FirstPass scans expanded (macro-free) source lines, defining every label
// at the address it is seen and sizing every instruction and data directive.
// It reports every error it finds rather than stopping at the first one, and
// fails only once scanning is complete.
func FirstPass(limits *config.Limits, expanded []string) (*FirstPassResult, error) {
	symbols := NewSymbolTable()

	var errs passErrors

	ic := uint16(limits.Memory.ICStart)
	dc := uint16(0)

	for i, raw := range expanded {
		lineNo := i + 1

		parsed, err := ParseLine(limits, raw)
		if err != nil {
			errs.add(annotate(lineNo, raw, err))
			continue
		}

		if parsed.Empty() {
			continue
		}

		switch {
		case isDirective(parsed.Command):
			words, err := firstPassDirective(symbols, limits, parsed, ic, dc)
			if err != nil {
				errs.add(annotate(lineNo, raw, err))
				continue
			}

			dc += words

		case isOpcode(parsed.Command):
			words, err := firstPassInstruction(symbols, parsed, ic)
			if err != nil {
				errs.add(annotate(lineNo, raw, err))
				continue
			}

			ic += uint16(words)

		default:
			errs.add(annotate(lineNo, raw, &LineError{Err: ErrSyntax, Text: parsed.Command}))
		}
	}

	if errs.failed() {
		return nil, errs.err()
	}

	symbols.Rebase(ic)

	return &FirstPassResult{Symbols: symbols, ICFinal: ic, DCFinal: dc}, nil
}

// annotate wraps err in a LineError carrying the physical line number and
// text, unless err is already a *LineError (parsing already attached one).
func annotate(lineNo int, raw string, err error) error {
	if le, ok := err.(*LineError); ok {
		if le.Line == 0 {
			le.Line = lineNo
		}

		return le
	}

	return &LineError{Line: lineNo, Text: strings.TrimSpace(raw), Err: err}
}

// firstPassDirective handles one of the five directives, defining its label
// (if any, and if the directive defines one) and returning the number of
// data words it contributes. ".extern" and ".entry" contribute none.
func firstPassDirective(symbols *SymbolTable, limits *config.Limits, parsed ParsedLine, ic, dc uint16) (uint16, error) {
	switch strings.ToLower(parsed.Command) {
	case ".data":
		values, err := parseDataOperands(parsed.Operands)
		if err != nil {
			return 0, err
		}

		if parsed.Label != "" {
			if err := symbols.Define(parsed.Label, dc, KindData); err != nil {
				return 0, err
			}
		}

		return uint16(len(values)), nil

	case ".string":
		length, err := parseStringOperand(parsed.Operands)
		if err != nil {
			return 0, err
		}

		if parsed.Label != "" {
			if err := symbols.Define(parsed.Label, dc, KindData); err != nil {
				return 0, err
			}
		}

		return uint16(length + 1), nil

	case ".mat":
		rows, cols, _, err := parseMatOperands(parsed.Operands)
		if err != nil {
			return 0, err
		}

		if parsed.Label != "" {
			if err := symbols.Define(parsed.Label, dc, KindData); err != nil {
				return 0, err
			}
		}

		return uint16(rows * cols), nil

	case ".extern":
		if len(parsed.Operands) == 0 {
			return 0, &SemanticError{Reason: "extern directive requires at least one symbol"}
		}

		for _, name := range parsed.Operands {
			if !isValidLabel(name, limits) {
				return 0, &LineError{Err: ErrLexical, Text: name}
			}

			if err := symbols.MarkExternal(name); err != nil {
				return 0, err
			}
		}

		return 0, nil

	case ".entry":
		if len(parsed.Operands) == 0 {
			return 0, &SemanticError{Reason: "entry directive requires at least one symbol"}
		}

		for _, name := range parsed.Operands {
			if !isValidLabel(name, limits) {
				return 0, &LineError{Err: ErrLexical, Text: name}
			}

			if err := symbols.MarkEntry(name); err != nil {
				return 0, err
			}
		}

		return 0, nil

	default:
		return 0, &LineError{Err: ErrSyntax, Text: parsed.Command}
	}
}

// firstPassInstruction handles one instruction line: validates operand
// modes, defines the label (if any) at ic, and returns the word count.
func firstPassInstruction(symbols *SymbolTable, parsed ParsedLine, ic uint16) (int, error) {
	spec, ok := lookupInstruction(parsed.Command)
	if !ok {
		return 0, &LineError{Err: ErrSyntax, Text: parsed.Command}
	}

	modes := make([]Mode, len(parsed.Operands))

	for i, operand := range parsed.Operands {
		mode, err := classifyOperand(operand)
		if err != nil {
			return 0, err
		}

		modes[i] = mode
	}

	words, err := WordsPerInstruction(spec, modes)
	if err != nil {
		return 0, err
	}

	if parsed.Label != "" {
		if err := symbols.Define(parsed.Label, ic, KindCode); err != nil {
			return 0, err
		}
	}

	return words, nil
}

// parseDataOperands validates that every ".data" operand is a signed decimal
// integer and returns them.
func parseDataOperands(operands []string) ([]int, error) {
	if len(operands) == 0 {
		return nil, &SemanticError{Reason: "data directive requires at least one value"}
	}

	values := make([]int, len(operands))

	for i, raw := range operands {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &LineError{Err: ErrLexical, Text: raw}
		}

		values[i] = n
	}

	return values, nil
}

// parseStringOperand validates the sole, quoted operand of a ".string"
// directive and returns the number of characters inside the quotes (not
// counting the terminator word the directive always appends).
func parseStringOperand(operands []string) (int, error) {
	if len(operands) != 1 {
		return 0, &SemanticError{Reason: "string directive takes exactly one operand"}
	}

	s := operands[0]

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return 0, &LineError{Err: ErrLexical, Text: s}
	}

	return len(s) - 2, nil
}

// parseMatOperands parses a ".mat" directive's operands: a leading
// "[R][C]" dimension spec (possibly sharing its operand slot with the first
// initializer value, since there is no comma between them), followed by 0 or
// R*C further comma-separated integers.
func parseMatOperands(operands []string) (rows, cols int, values []int, err error) {
	if len(operands) == 0 {
		return 0, 0, nil, &SemanticError{Reason: "mat directive requires dimensions"}
	}

	rows, cols, rest, err := parseMatDims(operands[0])
	if err != nil {
		return 0, 0, nil, err
	}

	var raw []string

	if rest = strings.TrimSpace(rest); rest != "" {
		raw = append(raw, rest)
	}

	raw = append(raw, operands[1:]...)

	if len(raw) != 0 && len(raw) != rows*cols {
		return 0, 0, nil, &SemanticError{Reason: "mat initializer count does not match dimensions"}
	}

	values = make([]int, len(raw))

	for i, s := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, 0, nil, &LineError{Err: ErrLexical, Text: s}
		}

		values[i] = n
	}

	return rows, cols, values, nil
}
