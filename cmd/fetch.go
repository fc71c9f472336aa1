package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	address  string
	explorer string
	limit    int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch transfer events for an address from a block explorer" }
func (*fetchCmd) Usage() string {
	return `tlr fetch -a <address>

  Queries the block explorer for the native and token transfers of the
  address, prices them with the prices file, and writes the result to
  the transfers file in canonical order.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.address, "a", "", "Address to fetch transfers for")
	f.StringVar(&c.explorer, "explorer", "https://api.etherscan.io/api", "Block explorer API endpoint")
	f.IntVar(&c.limit, "limit", 10000, "Maximum number of transactions per listing")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.address == "" {
		fmt.Fprintln(os.Stderr, "missing -a address")
		return subcommands.ExitUsageError
	}

	prices, err := DecodePrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	feed := taxlot.NewExplorerFeed(c.explorer, prices)
	events, warnings, err := feed.Transfers(c.address, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching transfers for %s: %v\n", c.address, err)
		return subcommands.ExitFailure
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w)
	}

	out, err := os.Create(*transfersFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot create transfers file %q: %v\n", *transfersFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := taxlot.EncodeTransfers(out, events); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %d transfer events to %s.\n", len(events), *transfersFile)
	return subcommands.ExitSuccess
}
