package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year  int
	watch bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "realized capital gains report with FIFO lot matching" }
func (*reportCmd) Usage() string {
	return `tlr report [-year <year>] [-w]

  Replays the transfer history through a fresh lot ledger and displays the
  realized gains, split by holding period. With -year, only disposals of
  that year are reported; their cost basis still comes from the full
  history.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Report disposals of this civil year only (0 for all time)")
	f.BoolVar(&c.watch, "w", false, "Watch the transfers file and re-render on change")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if status := c.render(); status != subcommands.ExitSuccess {
		return status
	}
	if !c.watch {
		return subcommands.ExitSuccess
	}
	if err := watchFile(*transfersFile, func() { c.render() }); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %q: %v\n", *transfersFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) render() subcommands.ExitStatus {
	events, err := DecodeTransfers()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var window taxlot.Range
	if c.year != 0 {
		window = taxlot.YearRange(c.year)
	}

	report := taxlot.Run(events, window)
	printMarkdown(renderer.TaxReportMarkdown(report))
	return subcommands.ExitSuccess
}

// watchFile re-runs render every time the file is written, until interrupted.
func watchFile(file string, render func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(file); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fmt.Println("\033[2J")
				render()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
