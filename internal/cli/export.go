package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/smartspend/backend/pkg/export"
	"github.com/smartspend/backend/pkg/ledger"
)

type exportCmd struct {
	app    *App
	output string
	from   string
	until  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export transactions to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `smartspend export -o <file.xlsx> [-from YYYY-MM-DD] [-until YYYY-MM-DD]

  Writes the transactions in the range and a per category summary to an
  xlsx workbook. until is exclusive.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "smartspend.xlsx", "Output file")
	f.StringVar(&c.from, "from", "", "First day to include")
	f.StringVar(&c.until, "until", "", "First day to exclude")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var filter ledger.TransactionFilter
	var err error

	if filter.From, err = parseDay(c.from); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	if filter.Until, err = parseDay(c.until); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -until: %v\n", err)
		return subcommands.ExitUsageError
	}

	f, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := export.Write(f, c.app.Ledger.Snapshot(), filter, c.app.Config.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.app.out(), "Exported to %s\n", c.output)
	return subcommands.ExitSuccess
}

// parseDay parses a YYYY-MM-DD date in UTC. The empty string is the zero time.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
