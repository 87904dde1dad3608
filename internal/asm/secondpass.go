package asm

// secondpass.go re-walks the macro-expanded source a second time, now that
// every label's final address is known, and emits the instruction and data
// memory images along with the external-reference and entry tables.

import (
	"strings"

	"github.com/nyasm/qasm/internal/config"
)

// SecondPassResult holds everything the object, entries and externals files
// are rendered from.
type SecondPassResult struct {
	Image     MemoryImage
	Externals []ExternalRef
	Entries   []*Symbol
}

// SecondPass re-scans expanded source, now resolving every operand against
// symbols (whose data addresses FirstPass has already rebased), and builds
// the final memory image. Like FirstPass, it collects every error it finds
// before failing.
func SecondPass(limits *config.Limits, symbols *SymbolTable, icStart uint16, expanded []string) (*SecondPassResult, error) {
	var (
		errs      passErrors
		instr     []uint16
		data      []uint16
		externals []ExternalRef
	)

	dc := uint16(0)

	for i, raw := range expanded {
		lineNo := i + 1

		parsed, err := ParseLine(limits, raw)
		if err != nil {
			// Already reported by the first pass; skip silently here.
			continue
		}

		if parsed.Empty() {
			continue
		}

		switch {
		case isDirective(parsed.Command):
			words, err := secondPassDirective(parsed)
			if err != nil {
				errs.add(annotate(lineNo, raw, err))
				continue
			}

			data = append(data, words...)
			dc += uint16(len(words))

		case isOpcode(parsed.Command):
			addrOfFirstWord := icStart + uint16(len(instr))

			words, refs, err := secondPassInstruction(symbols, parsed, addrOfFirstWord)
			if err != nil {
				errs.add(annotate(lineNo, raw, err))
				continue
			}

			instr = append(instr, words...)
			externals = append(externals, refs...)
		}
	}

	if errs.failed() {
		return nil, errs.err()
	}

	for _, entry := range symbols.Entries() {
		if !entry.Defined {
			errs.add(&SemanticError{Reason: "entry symbol never defined", Symbol: entry.Name})
		}
	}

	if errs.failed() {
		return nil, errs.err()
	}

	return &SecondPassResult{
		Image:     MemoryImage{Instructions: instr, Data: data},
		Externals: externals,
		Entries:   symbols.Entries(),
	}, nil
}

// secondPassDirective returns the data words a ".data", ".string" or ".mat"
// directive contributes. ".extern" and ".entry" contribute none and are
// fully handled by FirstPass already.
func secondPassDirective(parsed ParsedLine) ([]uint16, error) {
	switch strings.ToLower(parsed.Command) {
	case ".data":
		values, err := parseDataOperands(parsed.Operands)
		if err != nil {
			return nil, err
		}

		words := make([]uint16, len(values))
		for i, v := range values {
			words[i] = uint16(v) & 0x3ff
		}

		return words, nil

	case ".string":
		s := parsed.Operands[0]
		text := s[1 : len(s)-1]

		words := make([]uint16, len(text)+1)
		for i := 0; i < len(text); i++ {
			words[i] = uint16(text[i])
		}

		words[len(text)] = 0

		return words, nil

	case ".mat":
		rows, cols, values, err := parseMatOperands(parsed.Operands)
		if err != nil {
			return nil, err
		}

		words := make([]uint16, rows*cols)
		for i, v := range values {
			words[i] = uint16(v) & 0x3ff
		}

		return words, nil

	case ".extern", ".entry":
		return nil, nil

	default:
		return nil, &LineError{Err: ErrSyntax, Text: parsed.Command}
	}
}

// secondPassInstruction emits the words for one instruction line, starting
// at address addr, and returns any external references its operands made.
func secondPassInstruction(symbols *SymbolTable, parsed ParsedLine, addr uint16) ([]uint16, []ExternalRef, error) {
	spec, ok := lookupInstruction(parsed.Command)
	if !ok {
		return nil, nil, &LineError{Err: ErrSyntax, Text: parsed.Command}
	}

	modes := make([]Mode, len(parsed.Operands))

	for i, operand := range parsed.Operands {
		mode, err := classifyOperand(operand)
		if err != nil {
			return nil, nil, err
		}

		modes[i] = mode
	}

	if err := validateModes(spec, modes); err != nil {
		return nil, nil, err
	}

	var (
		src, dst Mode
		words    []uint16
		refs     []ExternalRef
	)

	switch len(modes) {
	case 1:
		dst = modes[0]
	case 2:
		src, dst = modes[0], modes[1]
	}

	words = append(words, encodeInstructionWord(spec.Opcode, src, dst, AreAbsolute))

	cursor := addr + 1

	switch len(modes) {
	case 0:
		// No operand words.

	case 1:
		opWords, opRefs, err := emitOperandWords(symbols, modes[0], parsed.Operands[0], cursor)
		if err != nil {
			return nil, nil, err
		}

		words = append(words, opWords...)
		refs = append(refs, opRefs...)

	case 2:
		if modes[0] == ModeRegister && modes[1] == ModeRegister {
			words = append(words, encodePackedRegisterWord(registerNumber(parsed.Operands[0]), registerNumber(parsed.Operands[1])))
			break
		}

		srcWords, srcRefs, err := emitOperandWords(symbols, modes[0], parsed.Operands[0], cursor)
		if err != nil {
			return nil, nil, err
		}

		words = append(words, srcWords...)
		refs = append(refs, srcRefs...)
		cursor += uint16(len(srcWords))

		dstWords, dstRefs, err := emitOperandWords(symbols, modes[1], parsed.Operands[1], cursor)
		if err != nil {
			return nil, nil, err
		}

		words = append(words, dstWords...)
		refs = append(refs, dstRefs...)
	}

	return words, refs, nil
}

// emitOperandWords encodes one operand's word(s), given the address its
// first word will occupy (needed only to record an external reference's
// use-site address).
func emitOperandWords(symbols *SymbolTable, mode Mode, raw string, addr uint16) ([]uint16, []ExternalRef, error) {
	switch mode {
	case ModeRegister:
		return []uint16{encodeRegisterWord(registerNumber(raw))}, nil, nil

	case ModeImmediate:
		value, err := parseImmediateValue(raw)
		if err != nil {
			return nil, nil, err
		}

		return []uint16{encodeImmediateWord(value)}, nil, nil

	case ModeDirect:
		word, ref, err := resolveSymbolWord(symbols, raw, addr)
		if err != nil {
			return nil, nil, err
		}

		var refs []ExternalRef
		if ref != nil {
			refs = append(refs, *ref)
		}

		return []uint16{word}, refs, nil

	case ModeMatrix:
		label, r1, r2, err := parseMatrixOperand(raw)
		if err != nil {
			return nil, nil, err
		}

		word, ref, err := resolveSymbolWord(symbols, label, addr)
		if err != nil {
			return nil, nil, err
		}

		var refs []ExternalRef
		if ref != nil {
			refs = append(refs, *ref)
		}

		return []uint16{word, encodeMatrixRegisterWord(r1, r2)}, refs, nil

	default:
		return nil, nil, &SemanticError{Reason: "unreachable addressing mode"}
	}
}

// resolveSymbolWord encodes a label reference's word: Relocatable if the
// symbol is locally defined, External (and recorded as a use site at addr)
// if it was declared external. An unknown symbol is a semantic error.
func resolveSymbolWord(symbols *SymbolTable, name string, addr uint16) (uint16, *ExternalRef, error) {
	sym, ok := symbols.Lookup(name)
	if !ok || !sym.Defined && sym.Kind != KindExternal {
		return 0, nil, &SemanticError{Reason: ErrUndefinedSymbol.Error(), Symbol: name}
	}

	if sym.Kind == KindExternal {
		return encodeExternalWord(), &ExternalRef{Symbol: name, Address: addr}, nil
	}

	return encodeDirectWord(sym.Address), nil, nil
}
