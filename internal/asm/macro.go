package asm

// macro.go implements the macro pre-processor: two linear scans over the
// source that produce a flat, expanded listing with every "mcro NAME ...
// mcroend" call site replaced by the macro's body.
//
// Per the re-architecture notes this package is built from, both scans work
// against an in-memory slice of lines rather than rewinding a file handle
// twice.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nyasm/qasm/internal/config"
)

// ErrMissingMcroend is returned when end-of-file is reached while still
// collecting a macro body.
var ErrMissingMcroend = errors.New("missing endmcro")

// ErrMacroBodyTooLarge is returned when a macro body exceeds the configured
// limit.
var ErrMacroBodyTooLarge = errors.New("macro body too large")

type macroTable struct {
	order []string
	body  map[string][]string
}

func newMacroTable() *macroTable {
	return &macroTable{body: make(map[string][]string)}
}

func (m *macroTable) has(name string) bool {
	_, ok := m.body[name]
	return ok
}

func (m *macroTable) define(name string, lines []string) {
	m.body[name] = lines
	m.order = append(m.order, name)
}

// Preprocess reads source, expands every macro call site, and returns the
// expanded source as a slice of lines (without trailing newlines).
func Preprocess(limits *config.Limits, source io.Reader) ([]string, error) {
	lines, err := readLines(source)
	if err != nil {
		return nil, fmt.Errorf("asm: %w", err)
	}

	macros, err := collectMacros(limits, lines)
	if err != nil {
		return nil, err
	}

	return expand(lines, macros), nil
}

func readLines(source io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(source)

	var lines []string

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

// collectMacros runs the collection pass: a two-state machine (OUTSIDE,
// INSIDE) that gathers each "mcro NAME ... mcroend" block's body.
func collectMacros(limits *config.Limits, lines []string) (*macroTable, error) {
	macros := newMacroTable()

	var (
		inside bool
		name   string
		body   []string
		size   int
	)

	for lineNo, line := range lines {
		trimmed := strings.TrimSpace(line)
		token, _ := splitToken(trimmed)

		switch {
		case !inside && token == "mcro":
			_, rest := splitToken(trimmed)
			candidate := strings.TrimSpace(rest)

			if !isValidMacroName(candidate, limits) || macros.has(candidate) {
				return nil, &LineError{Line: lineNo + 1, Err: ErrSyntax, Text: line}
			}

			inside = true
			name = candidate
			body = nil
			size = 0

		case inside && trimmed == "mcroend":
			macros.define(name, body)
			inside = false

		case inside:
			size += len(line) + 1
			if size > limits.Macro.MaxBody {
				return nil, &LineError{Line: lineNo + 1, Err: ErrMacroBodyTooLarge, Text: name}
			}

			body = append(body, line)

		default:
			// OUTSIDE: lines are ignored during collection.
		}
	}

	if inside {
		return nil, fmt.Errorf("asm: %w: %s", ErrMissingMcroend, name)
	}

	return macros, nil
}

// expand runs the emission pass: rewrite every call site of a known macro
// with its body; definition blocks are suppressed entirely.
func expand(lines []string, macros *macroTable) []string {
	var out []string

	var inside bool

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		token, _ := splitToken(trimmed)

		switch {
		case !inside && token == "mcro":
			inside = true
		case inside && trimmed == "mcroend":
			inside = false
		case inside:
			// Suppressed: contents of a definition block are not emitted.
		case macros.has(token):
			out = append(out, macros.body[token]...)
		default:
			out = append(out, line)
		}
	}

	return out
}
