package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	year    int
	profile string
	output  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the disposals of a tax report as CSV" }
func (*exportCmd) Usage() string {
	return `tlr export [-year <year>] [-p generic|turbotax|koinly] [-o <file>]

  Runs the tax report and writes its disposals as CSV in the layout
  expected by the target tax software.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Export disposals of this civil year only (0 for all time)")
	f.StringVar(&c.profile, "p", "generic", "Column layout: generic, turbotax or koinly")
	f.StringVar(&c.output, "o", "", "Output file (default stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profile, err := taxlot.ParseExportProfile(c.profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

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

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot create output file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := taxlot.ExportCSV(out, report, profile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
