package asm

// parseline.go splits one physical source line into an optional label, a
// command, and an ordered list of raw operand strings.

import (
	"strings"

	"github.com/nyasm/qasm/internal/config"
)

// ParsedLine is the result of parsing one physical source line. A blank line
// or a comment-only line parses to the zero value; callers should check
// Empty before doing anything with it.
type ParsedLine struct {
	Label    string
	Command  string
	Operands []string
}

// Empty reports whether the line carried no label, command or operands --
// true for blank lines and comment-only lines.
func (p ParsedLine) Empty() bool {
	return p.Label == "" && p.Command == "" && len(p.Operands) == 0
}

// ParseLine parses one line of source, enforcing the configured line-length
// limit, rejecting control characters, and checking the operand list's comma
// and quote structure. It does not check the shape of an individual operand
// (addressing-mode, integer or label syntax) nor an opcode's operand modes
// against the instruction table -- the passes check both.
func ParseLine(limits *config.Limits, raw string) (ParsedLine, error) {
	line := strings.TrimRight(raw, "\r\n")

	if len(line) > limits.Line.MaxLength {
		return ParsedLine{}, &LineError{Err: ErrLexical, Text: line}
	}

	for i := 0; i < len(line); i++ {
		if line[i] < 0x20 || line[i] == 0x7f {
			return ParsedLine{}, &LineError{Err: ErrLexical, Text: line}
		}
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return ParsedLine{}, nil
	}

	remain := line

	var label string

	if idx := strings.IndexByte(remain, ':'); idx >= 0 {
		candidate := strings.TrimSpace(remain[:idx])

		if candidate != "" {
			if !isValidLabel(candidate, limits) {
				return ParsedLine{}, &LineError{Err: ErrLexical, Text: candidate}
			}

			label = candidate
			remain = remain[idx+1:]
		}
	}

	remain = strings.TrimSpace(remain)
	if remain == "" {
		return ParsedLine{}, &LineError{Err: ErrSyntax, Text: line}
	}

	command, rest := splitToken(remain)

	if !isOpcode(command) && !isDirective(command) {
		return ParsedLine{}, &LineError{Err: ErrSyntax, Text: command}
	}

	operands, err := splitOperands(rest)
	if err != nil {
		return ParsedLine{}, &LineError{Err: err, Text: line}
	}

	return ParsedLine{Label: label, Command: command, Operands: operands}, nil
}

// splitToken splits s into its first whitespace-delimited token and the
// (untrimmed) remainder.
func splitToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")

	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}

	return s[:i], s[i:]
}

// splitOperands splits a comma-separated operand list, respecting quoted
// strings (a comma inside quotes does not separate operands) and rejecting
// leading, trailing or doubled commas.
func splitOperands(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var (
		operands []string
		cur      strings.Builder
		inQuote  bool
	)

	flush := func() error {
		op := strings.TrimSpace(cur.String())
		if op == "" {
			return ErrSyntax
		}

		operands = append(operands, op)
		cur.Reset()

		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '"':
			inQuote = !inQuote
			cur.WriteByte(c)
		case c == ',' && !inQuote:
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			cur.WriteByte(c)
		}
	}

	if inQuote {
		return nil, ErrLexical
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return operands, nil
}
