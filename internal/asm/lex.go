package asm

// lex.go classifies tokens: opcodes, directives, registers, labels, macro
// names and operands.

import (
	"strconv"
	"strings"

	"github.com/nyasm/qasm/internal/config"
)

var directiveNames = map[string]bool{
	".data":   true,
	".string": true,
	".mat":    true,
	".extern": true,
	".entry":  true,
}

// isDirective reports whether s (as written in source, including its
// leading dot) names one of the five directives.
func isDirective(s string) bool {
	return directiveNames[strings.ToLower(s)]
}

// isOpcode reports whether s names one of the sixteen opcodes.
func isOpcode(s string) bool {
	_, ok := lookupInstruction(s)
	return ok
}

// isRegister reports whether s is a register name r0 through r7.
func isRegister(s string) bool {
	return registerNumber(s) >= 0
}

// registerNumber returns the register's number (0..7), or -1 if s is not a
// valid register name.
func registerNumber(s string) int {
	if len(s) != 2 || (s[0] != 'r' && s[0] != 'R') {
		return -1
	}

	if s[1] < '0' || s[1] > '7' {
		return -1
	}

	return int(s[1] - '0')
}

// isValidLabel reports whether s satisfies the label-naming rules: 1..max
// characters, alphabetic first character, alphanumeric remainder, and no
// collision with a register name, opcode mnemonic or directive keyword.
func isValidLabel(s string, limits *config.Limits) bool {
	if len(s) < 1 || len(s) > limits.Symbol.MaxLabelLength {
		return false
	}

	if !isAlpha(rune(s[0])) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !isAlphaNumeric(rune(s[i])) {
			return false
		}
	}

	if isRegister(s) || isOpcode(s) {
		return false
	}

	if directiveNames["."+strings.ToLower(s)] {
		return false
	}

	return true
}

// isValidMacroName reports whether s is usable as a macro name: the label
// rules, but with underscore also permitted.
func isValidMacroName(s string, limits *config.Limits) bool {
	if len(s) < 1 || len(s) > limits.Symbol.MaxLabelLength {
		return false
	}

	if !isAlpha(rune(s[0])) {
		return false
	}

	for i := 1; i < len(s); i++ {
		c := rune(s[i])
		if !isAlphaNumeric(c) && c != '_' {
			return false
		}
	}

	if isRegister(s) || isOpcode(s) {
		return false
	}

	if directiveNames["."+strings.ToLower(s)] {
		return false
	}

	if s == "mcro" || s == "mcroend" {
		return false
	}

	return true
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}

// classifyOperand determines an instruction operand's addressing mode from
// its raw text. It does not consult the instruction table -- whether the
// mode is legal for a given opcode slot is checked separately.
func classifyOperand(s string) (Mode, error) {
	switch {
	case s == "":
		return 0, &SemanticError{Reason: "empty operand"}

	case isRegister(s):
		return ModeRegister, nil

	case strings.HasPrefix(s, "#"):
		if _, err := parseImmediateValue(s); err != nil {
			return 0, err
		}

		return ModeImmediate, nil

	case strings.ContainsRune(s, '['):
		if _, _, _, err := parseMatrixOperand(s); err != nil {
			return 0, err
		}

		return ModeMatrix, nil

	case isAlpha(rune(s[0])):
		for i := 1; i < len(s); i++ {
			if !isAlphaNumeric(rune(s[i])) {
				return 0, &LineError{Err: ErrSyntax, Text: s}
			}
		}

		return ModeDirect, nil

	default:
		return 0, &LineError{Err: ErrSyntax, Text: s}
	}
}

// parseImmediateValue parses a "#N" operand, where N is an optionally-signed
// decimal integer, and returns N.
func parseImmediateValue(s string) (int, error) {
	if !strings.HasPrefix(s, "#") {
		return 0, &LineError{Err: ErrLexical, Text: s}
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, &LineError{Err: ErrLexical, Text: s}
	}

	return n, nil
}

// parseMatDims parses a leading "[R][C]" dimension spec from a ".mat"
// directive's first operand, returning the parsed dimensions and whatever
// text follows (the optional first initializer value, still un-trimmed).
func parseMatDims(s string) (rows, cols int, rest string, err error) {
	if len(s) == 0 || s[0] != '[' {
		return 0, 0, "", &SemanticError{Reason: "mat directive requires dimensions"}
	}

	close1 := strings.IndexByte(s, ']')
	if close1 < 0 {
		return 0, 0, "", &LineError{Err: ErrSyntax, Text: s}
	}

	rowsStr := s[1:close1]

	remain := s[close1+1:]
	if len(remain) == 0 || remain[0] != '[' {
		return 0, 0, "", &LineError{Err: ErrSyntax, Text: s}
	}

	close2 := strings.IndexByte(remain, ']')
	if close2 < 0 {
		return 0, 0, "", &LineError{Err: ErrSyntax, Text: s}
	}

	colsStr := remain[1:close2]

	rows, err1 := strconv.Atoi(rowsStr)
	cols, err2 := strconv.Atoi(colsStr)

	if err1 != nil || err2 != nil || rows <= 0 || cols <= 0 {
		return 0, 0, "", &LineError{Err: ErrSyntax, Text: s}
	}

	return rows, cols, remain[close2+1:], nil
}

// parseMatrixOperand parses a "LABEL[rX][rY]" operand into its label and two
// register numbers.
func parseMatrixOperand(s string) (label string, r1, r2 int, err error) {
	open1 := strings.IndexByte(s, '[')
	if open1 <= 0 {
		return "", 0, 0, &LineError{Err: ErrSyntax, Text: s}
	}

	close1 := strings.IndexByte(s[open1:], ']')
	if close1 < 0 {
		return "", 0, 0, &LineError{Err: ErrSyntax, Text: s}
	}

	close1 += open1

	rest := s[close1+1:]

	open2 := strings.IndexByte(rest, '[')
	close2 := strings.IndexByte(rest, ']')

	if open2 != 0 || close2 < 0 || close2 != len(rest)-1 {
		return "", 0, 0, &LineError{Err: ErrSyntax, Text: s}
	}

	label = s[:open1]

	r1 = registerNumber(s[open1+1 : close1])
	r2 = registerNumber(rest[open2+1 : close2])

	if label == "" || !isAlpha(rune(label[0])) || r1 < 0 || r2 < 0 {
		return "", 0, 0, &LineError{Err: ErrSyntax, Text: s}
	}

	for i := 1; i < len(label); i++ {
		if !isAlphaNumeric(rune(label[i])) {
			return "", 0, 0, &LineError{Err: ErrSyntax, Text: s}
		}
	}

	return label, r1, r2, nil
}
