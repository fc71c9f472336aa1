package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// pnlCmd holds the flags for the 'pnl' subcommand.
type pnlCmd struct {
	date string
}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "per-asset realized and unrealized profit and loss" }
func (*pnlCmd) Usage() string {
	return `tlr pnl [-d <yyyy-mm-dd>]

  Replays the transfer history and displays per-asset profit and loss.
  Open positions are valued with the prices file at the -d date
  (today by default).
`
}

func (c *pnlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date for open positions (yyyy-mm-dd, default today)")
}

func (c *pnlCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf := time.Now().UTC()
	if c.date != "" {
		var err error
		asOf, err = time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -d date %q: %v\n", c.date, err)
			return subcommands.ExitUsageError
		}
	}

	events, err := DecodeTransfers()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	prices, err := DecodePrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PnLMarkdown(taxlot.CalculatePnL(events, prices, asOf)))
	return subcommands.ExitSuccess
}
