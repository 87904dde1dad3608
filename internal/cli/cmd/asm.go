package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/nyasm/qasm/internal/cli"
	"github.com/nyasm/qasm/internal/config"
	"github.com/nyasm/qasm/internal/driver"
	"github.com/nyasm/qasm/internal/log"
)

// Assembler is the command that translates assembly source into base-4
// object code.
//
//	qasm asm [-limits limits.toml] FILE.as...
func Assembler() cli.Command {
	return new(assembler)
}

type assembler struct {
	debug      bool
	limitsFile string
}

func (assembler) Description() string {
	return "assemble source files into object, entries and externals files"
}

func (assembler) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `asm [-limits limits.toml] file.as...

Assemble one or more source files. Each file.as produces file.ob and, when
the source declares any, file.ent and file.ext.`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")
	fs.StringVar(&a.limitsFile, "limits", "", "path to a TOML file overriding the default limits")

	return fs
}

// Run assembles every file named in args, in order.
func (a *assembler) Run(ctx context.Context, args []string, _ io.Writer, logger *log.Logger) int {
	if a.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) == 0 {
		logger.Error("asm: no input files")
		return 1
	}

	limits, err := config.Load(a.limitsFile)
	if err != nil {
		logger.Error("asm: loading limits", "err", err)
		return 1
	}

	results, err := driver.Run(ctx, limits, logger, args)
	if err != nil {
		for _, r := range results {
			if r.Err != nil {
				logger.Error("asm: failed", "file", r.Name, "err", r.Err)
			}
		}

		return 1
	}

	return 0
}
