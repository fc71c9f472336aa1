package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

const assistModel = "gemini-2.5-flash"

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	year int
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask an AI assistant about the tax report" }
func (*assistCmd) Usage() string {
	return `tlr assist [-year <year>] [question]

  Starts a session with an AI assistant that has the tax report in
  context. With a question on the command line, answers it and exits;
  otherwise reads questions interactively from stdin.

  Requires the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Report disposals of this civil year only (0 for all time)")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	events, err := DecodeTransfers()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var window taxlot.Range
	if c.year != 0 {
		window = taxlot.YearRange(c.year)
	}
	report := renderer.TaxReportMarkdown(taxlot.Run(events, window))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
You are an accountant assistant specialized in FIFO cost basis reporting
for on-chain assets. The user's capital gains report is below. Answer
questions about it concisely, and say so when an answer would require
data the report does not contain. This is not tax advice.

` + report}}},
	}
	chat, err := client.Chats.Create(ctx, assistModel, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the assistant chat:", err)
		return subcommands.ExitFailure
	}

	ask := func(question string) subcommands.ExitStatus {
		resp, err := chat.Send(ctx, &genai.Part{Text: question})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Assistant failed:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(resp.Text())
		return subcommands.ExitSuccess
	}

	if f.NArg() > 0 {
		return ask(strings.Join(f.Args(), " "))
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "exit" || question == "quit" {
			break
		}
		if question != "" {
			ask(question)
		}
		fmt.Print("> ")
	}
	return subcommands.ExitSuccess
}
