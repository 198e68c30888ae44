package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type balanceCmd struct {
	app *App
	raw bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of all sources" }
func (*balanceCmd) Usage() string {
	return `smartspend balance [-raw]

  Displays every source with its balance and the total. Sources whose
  balance disagrees with their transactions are reported as warnings.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *balanceCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	for _, d := range c.app.Ledger.CheckBalances() {
		log.Warn().Str("source", d.SourceID).Str("cached", d.Cached.String()).Str("expected", d.Expected.String()).Msg("balance drift")
	}

	c.app.printMarkdown(BalanceMarkdown(c.app.Ledger.Snapshot(), c.app.Config.Currency), c.raw)
	return subcommands.ExitSuccess
}
