package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	force bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the data files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fin fmt [-f]

  Validates and formats the data folder. This command reads all the records,
  validates them, gives an id to the records without one, sorts the
  transactions by date, and writes them back in a canonical JSONL format.

  Invalid data is left untouched, unless -f is given.

Usage Examples:
$ fin -data ~/finance fmt

`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "f", false, "Format the files even if the data is invalid")
}

func (p *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := FromContext(ctx)
	// amounts without a currency are kept without one.
	ledger, err := finance.DecodeLedger(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load data folder: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Check(); err != nil {
		if !p.force {
			fmt.Fprintf(os.Stderr, "Error: invalid data folder, use -f to format anyway:\n%v\n", err)
			return subcommands.ExitFailure
		}
		log.Warn().Err(err).Msg("formatting an invalid data folder")
	}

	if err := finance.EncodeLedger(*dataDir, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving data folder %q: %v\n", *dataDir, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %q.\n", *dataDir)
	return subcommands.ExitSuccess
}
