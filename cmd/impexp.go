package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/marcwinter/stocklog"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole ledger as one JSON document" }
func (*exportCmd) Usage() string {
	return `export [-o <file>]

  Writes the transactions, stored prices, and settings as one JSON document
  to the given file, or to stdout.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}

func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := os.Stdout
	if p.output != "" {
		file, err := os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	if err := stocklog.Export(out, stocklog.NewFileStore(*storeFile)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if p.output != "" {
		fmt.Printf("Exported ledger to %s\n", p.output)
	}
	return subcommands.ExitSuccess
}

// --- Import Command ---

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a previously exported JSON document" }
func (*importCmd) Usage() string {
	return `import <file>

  Reads an exported document and replaces the matching collections in the
  store. Each top-level key is all-or-nothing: a corrupt key is reported and
  its collection is left untouched. Documents in the legacy key layout are
  migrated automatically.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening import file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := stocklog.Import(file, stocklog.NewFileStore(*storeFile)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %s into %s\n", f.Arg(0), *storeFile)
	return subcommands.ExitSuccess
}
