// Package cmd implements the CLI application to report tax lots and PnL
// for an on-chain address.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "feed")

	c.Register(&reportCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var transfersFile = flag.String("transfers-file", "transfers.jsonl", "Path to the transfer events file (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the unit price history file (JSONL format)")
var currencyFlag = flag.String("currency", "USD", "Reporting currency of prices and gains")

// DecodeTransfers reads the transfer events from the app transfers file.
func DecodeTransfers() ([]taxlot.TransferEvent, error) {
	f, err := os.Open(*transfersFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open transfers file %q: %w", *transfersFile, err)
	}
	defer f.Close()
	return taxlot.DecodeTransfers(f)
}

// DecodePrices reads the price table from the app prices file.
// A missing file is not fatal: reports then flag unpriced assets instead.
func DecodePrices() (*taxlot.PriceTable, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, prices file does not exist, assets will be unpriced")
		return taxlot.NewPriceTable(*currencyFlag), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open prices file %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return taxlot.DecodePriceTable(f, *currencyFlag)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer cannot be used.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
