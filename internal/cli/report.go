package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/smartspend/backend/internal/types"
)

type reportCmd struct {
	app   *App
	month string
	raw   bool
	now   func() time.Time
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the monthly report" }
func (*reportCmd) Usage() string {
	return `smartspend report [-m YYYY-MM] [-raw]

  Displays income, spending per category, budgets and goals for a month.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month in YYYY-MM format (defaults to the current month)")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	now := time.Now()
	if c.now != nil {
		now = c.now()
	}

	month := types.MonthOf(now)
	if c.month != "" {
		m, err := types.ParseMonth(c.month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid month %q, use YYYY-MM\n", c.month)
			return subcommands.ExitUsageError
		}
		month = m
	}

	c.app.printMarkdown(ReportMarkdown(c.app.Ledger.Snapshot(), month, now, c.app.Config.Currency), c.raw)
	return subcommands.ExitSuccess
}
