// Package config loads the assembler's tunable limits from an optional TOML file.
//
// The reference implementation this assembler is modeled on hard-codes its limits
// (line length, macro body size, label length, the instruction counter's starting
// address) as preprocessor constants. This package keeps the same defaults but
// makes them data: a deployment can override any of them without a recompile.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Limits holds every tunable bound the assembler's passes consult.
type Limits struct {
	Line struct {
		// MaxLength is the maximum number of printable characters a source line may
		// contain, not counting the trailing newline.
		MaxLength int `toml:"max_length"`
	} `toml:"line"`

	Symbol struct {
		// MaxLabelLength is the maximum number of characters in a label or macro name.
		MaxLabelLength int `toml:"max_label_length"`
	} `toml:"symbol"`

	Macro struct {
		// MaxBody is the maximum number of characters in an expanded macro body.
		MaxBody int `toml:"max_body"`
	} `toml:"macro"`

	Memory struct {
		// ICStart is the address of the first instruction word in the memory image.
		ICStart int `toml:"ic_start"`
	} `toml:"memory"`
}

// Default returns the limits mandated by the specification: an 80-character source
// line, a 30-character label, a 1000-character macro body, and instructions starting
// at address 100.
func Default() *Limits {
	l := &Limits{}

	l.Line.MaxLength = 80
	l.Symbol.MaxLabelLength = 30
	l.Macro.MaxBody = 1000
	l.Memory.ICStart = 100

	return l
}

// Load reads limits from a TOML file at path, starting from Default and overriding
// only the fields present in the file. A missing file is not an error; Load returns
// the defaults unchanged.
func Load(path string) (*Limits, error) {
	limits := Default()

	if path == "" {
		return limits, nil
	}

	bs, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return limits, nil
	} else if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := toml.Unmarshal(bs, limits); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return limits, nil
}
