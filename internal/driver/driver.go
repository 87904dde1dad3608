// Package driver sequences the assembler over a batch of translation units,
// writing each unit's object, entries and externals files and aggregating a
// process-level exit status.
//
// Each unit is assembled independently: its own macro table, its own symbol
// table, its own instruction and data counters. Nothing about one unit's
// source affects another's -- this assembler does not link or share state
// across files, by design.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nyasm/qasm/internal/asm"
	"github.com/nyasm/qasm/internal/config"
	"github.com/nyasm/qasm/internal/log"
)

// Result records the outcome of assembling one translation unit.
type Result struct {
	Name string
	Err  error
}

// Run assembles every named source file in turn, writing each one's object
// code (and, when present, its entries and externals files) alongside the
// source file with a ".ob", ".ent" and ".ext" extension respectively -- the
// convention the reference implementation's driver used.
//
// Run does not stop at the first failing file: every file is attempted, and
// the aggregate result reports every failure. Its own return value is
// non-nil iff any unit failed, or ctx was cancelled before every file was
// attempted (then the results cover only the files attempted so far).
func Run(ctx context.Context, limits *config.Limits, logger *log.Logger, names []string) ([]Result, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	results := make([]Result, 0, len(names))

	var failed bool

	for _, name := range names {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		err := assembleOne(limits, logger, name)
		results = append(results, Result{Name: name, Err: err})

		if err != nil {
			failed = true
			logger.Error("assembly failed", log.String("file", name), log.Any("error", err))
		}
	}

	if failed {
		return results, fmt.Errorf("driver: %d of %d files failed", countFailed(results), len(results))
	}

	return results, nil
}

func countFailed(results []Result) int {
	n := 0

	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}

	return n
}

// assembleOne assembles a single file and writes its output files, deriving
// their names from name's base, replacing any ".as"/".asm" suffix with the
// object, entries and externals extensions.
func assembleOne(limits *config.Limits, logger *log.Logger, name string) error {
	src, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("driver: %w", err)
	}
	defer src.Close()

	out, err := asm.Assemble(limits, logger, name, src)
	if err != nil {
		return err
	}

	base := stripSourceExt(name)

	if err := os.WriteFile(base+".ob", out.Object, 0o644); err != nil {
		return fmt.Errorf("driver: %w", err)
	}

	if out.Entries != nil {
		if err := os.WriteFile(base+".ent", out.Entries, 0o644); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
	}

	if out.Externals != nil {
		if err := os.WriteFile(base+".ext", out.Externals, 0o644); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
	}

	return nil
}

func stripSourceExt(name string) string {
	ext := filepath.Ext(name)
	if ext == ".as" || ext == ".asm" {
		return strings.TrimSuffix(name, ext)
	}

	return name
}
