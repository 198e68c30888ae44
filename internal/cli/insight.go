package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type insightCmd struct {
	app *App
	raw bool
}

func (*insightCmd) Name() string     { return "insight" }
func (*insightCmd) Synopsis() string { return "ask the model for a spending insight" }
func (*insightCmd) Usage() string {
	return `smartspend insight [-raw]

  Sends the balances and recent transactions to Gemini and displays its
  summary, spending trend and tip. Requires GEMINI_API_KEY.
`
}

func (c *insightCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *insightCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	i := c.app.Insights.Analyze(ctx, c.app.Ledger.Snapshot())

	c.app.printMarkdown(InsightMarkdown(i), c.raw)
	if i == nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
