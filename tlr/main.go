package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/taxlot/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion hook: when invoked by the shell it prints the
	// candidates and exits, otherwise it is a no-op.
	tlr := &complete.Command{
		Flags: map[string]complete.Predictor{
			"transfers-file": predict.Files("*.jsonl"),
			"prices-file":    predict.Files("*.jsonl"),
			"currency":       predict.Set{"USD", "EUR"},
		},
		Sub: map[string]*complete.Command{
			"report": {Flags: map[string]complete.Predictor{"year": predict.Nothing, "w": predict.Nothing}},
			"pnl":    {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
			"export": {Flags: map[string]complete.Predictor{
				"year": predict.Nothing,
				"p":    predict.Set{"generic", "turbotax", "koinly"},
				"o":    predict.Files("*.csv"),
			}},
			"fetch":  {Flags: map[string]complete.Predictor{"a": predict.Nothing, "explorer": predict.Nothing, "limit": predict.Nothing}},
			"assist": {Flags: map[string]complete.Predictor{"year": predict.Nothing}},
			"topic":  {Args: predict.Set{"readme", "fifo", "report", "pnl", "fetch", "export", "files"}},
			"help":   {},
		},
	}
	tlr.Complete("tlr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
