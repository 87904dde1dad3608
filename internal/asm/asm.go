package asm

// asm.go ties the three stages together: macro expansion, then the first
// and second passes, then rendering the object, entries and externals
// files. This is the package's one entry point; everything else is an
// implementation detail of one of the three stages.

import (
	"fmt"
	"io"

	"github.com/nyasm/qasm/internal/base4"
	"github.com/nyasm/qasm/internal/config"
	"github.com/nyasm/qasm/internal/log"
)

// Output holds the rendered bytes of a successfully assembled translation
// unit. Entries is nil (not empty) when no symbol is marked as an entry, and
// Externals is nil when no external symbol is referenced, so callers can tell "no entries" from "an empty entries file" and
// skip writing it, matching the specification's external interface.
type Output struct {
	Object    []byte
	Entries   []byte
	Externals []byte
}

// Assemble runs the full pipeline -- macro expansion, first pass, second
// pass -- over one named translation unit's source and renders its object
// code. name is used only in log records and returned error messages; it does
// not appear in the output.
func Assemble(limits *config.Limits, logger *log.Logger, name string, src io.Reader) (*Output, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	expanded, err := Preprocess(limits, src)
	if err != nil {
		logger.Error("macro expansion failed", log.String("unit", name), log.Any("error", err))
		return nil, fmt.Errorf("asm: %s: %w", name, err)
	}

	logger.Debug("macro expansion complete", log.String("unit", name), log.Any("lines", len(expanded)))

	first, err := FirstPass(limits, expanded)
	if err != nil {
		logger.Error("first pass failed", log.String("unit", name), log.Any("error", err))
		return nil, fmt.Errorf("asm: %s: %w", name, err)
	}

	logger.Debug("first pass complete",
		log.String("unit", name),
		log.Any("ic", first.ICFinal),
		log.Any("dc", first.DCFinal),
		log.Any("symbols", first.Symbols.Len()),
	)

	second, err := SecondPass(limits, first.Symbols, uint16(limits.Memory.ICStart), expanded)
	if err != nil {
		logger.Error("second pass failed", log.String("unit", name), log.Any("error", err))
		return nil, fmt.Errorf("asm: %s: %w", name, err)
	}

	out := &Output{
		Object: base4.Object(
			len(second.Image.Instructions),
			len(second.Image.Data),
			uint16(limits.Memory.ICStart),
			second.Image.Instructions,
			first.ICFinal,
			second.Image.Data,
		),
	}

	if len(second.Entries) > 0 {
		entries := make([]base4.Entry, len(second.Entries))
		for i, sym := range second.Entries {
			entries[i] = base4.Entry{Name: sym.Name, Address: sym.Address}
		}

		out.Entries = base4.Entries(entries)
	}

	if len(second.Externals) > 0 {
		refs := make([]base4.Entry, len(second.Externals))
		for i, ref := range second.Externals {
			refs[i] = base4.Entry{Name: ref.Symbol, Address: ref.Address}
		}

		out.Externals = base4.Externals(refs)
	}

	logger.Info("assembly succeeded",
		log.String("unit", name),
		log.Any("instructions", len(second.Image.Instructions)),
		log.Any("data", len(second.Image.Data)),
		log.Any("entries", len(second.Entries)),
		log.Any("externals", len(second.Externals)),
	)

	return out, nil
}
