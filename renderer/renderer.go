// Package renderer renders reports as markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxlot"
)

// TaxReportMarkdown renders the disposals and summary of a tax report.
func TaxReportMarkdown(report *taxlot.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report (%s)\n\n", report.Window.Identifier())
	fmt.Fprintf(&b, "Method: fifo\n\n")

	fmt.Fprint(&b, "## Disposals\n\n")
	fmt.Fprintln(&b, "| Date | Asset | Quantity | Proceeds | Cost Basis | Gain/Loss | Period |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|:---|")
	for _, d := range report.Disposals {
		period := d.HoldingPeriod.String()
		if d.PartialMatch {
			period += " ⚠"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			d.Time.UTC().Format("2006-01-02"),
			d.Asset,
			d.QuantitySold,
			d.Proceeds,
			d.CostBasis,
			d.GainLoss.SignedString(),
			period,
		)
	}

	s := report.Summary
	fmt.Fprint(&b, "\n## Summary\n\n")
	fmt.Fprintln(&b, "| | Gains | Losses | Net |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	fmt.Fprintf(&b, "| Short term | %s | %s | %s |\n", s.ShortTermGains, s.ShortTermLosses, s.NetShortTerm.SignedString())
	fmt.Fprintf(&b, "| Long term | %s | %s | %s |\n", s.LongTermGains, s.LongTermLosses, s.NetLongTerm.SignedString())
	fmt.Fprintf(&b, "\nDisposals: %d (%d with incomplete lot history) over %d assets.\n",
		s.Disposals, s.UnmatchedDisposals, len(s.Assets))

	appendWarnings(&b, report.Warnings)
	return b.String()
}

// PnLMarkdown renders the per-asset profit and loss view.
func PnLMarkdown(report *taxlot.PnLReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Profit and Loss as of %s\n\n", report.AsOf.UTC().Format("2006-01-02"))

	fmt.Fprintln(&b, "| Asset | Balance | Realized | Unrealized | Total |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, a := range report.Assets {
		unrealized := a.UnrealizedPnL.SignedString()
		if !a.Priced && !a.Balance.IsZero() {
			unrealized = "unpriced"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			a.Asset,
			a.Balance,
			a.RealizedPnL.SignedString(),
			unrealized,
			a.TotalPnL.SignedString(),
		)
	}

	s := report.Summary
	fmt.Fprintf(&b, "| **Total** | | **%s** | **%s** | **%s** |\n",
		s.TotalRealized.SignedString(),
		s.TotalUnrealized.SignedString(),
		s.TotalPnL.SignedString(),
	)
	fmt.Fprintf(&b, "\n%d assets traded, %d winning, %d losing (win rate %.0f%%).\n",
		s.AssetsTraded, s.Winning, s.Losing, s.WinRate)
	if s.BestAsset != "" {
		fmt.Fprintf(&b, "Best: %s. Worst: %s.\n", s.BestAsset, s.WorstAsset)
	}

	appendWarnings(&b, report.Warnings)
	return b.String()
}

func appendWarnings(b *strings.Builder, warnings []taxlot.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprint(b, "\n## Data Quality\n\n")
	for _, w := range warnings {
		fmt.Fprintf(b, "* %s\n", w)
	}
}
