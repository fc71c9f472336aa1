package taxlot

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportProfile selects the column set of a CSV export. Profiles are pure
// field remapping of the same disposal records, nothing is recomputed.
type ExportProfile int

const (
	// Generic is a plain column-per-field layout.
	Generic ExportProfile = iota
	// TurboTax mimics the TurboTax capital gains import layout.
	TurboTax
	// Koinly mimics the Koinly universal transaction import layout.
	Koinly
)

func (p ExportProfile) String() string {
	switch p {
	case Generic:
		return "generic"
	case TurboTax:
		return "turbotax"
	case Koinly:
		return "koinly"
	default:
		return "unknown"
	}
}

// ParseExportProfile parses a string into an ExportProfile.
func ParseExportProfile(s string) (ExportProfile, error) {
	switch s {
	case "generic":
		return Generic, nil
	case "turbotax":
		return TurboTax, nil
	case "koinly":
		return Koinly, nil
	default:
		return 0, fmt.Errorf("unknown export profile: %q", s)
	}
}

// csvTime is the timestamp layout used in exported rows.
const csvTime = "2006-01-02 15:04:05"

// ExportCSV writes the report's disposals as CSV rows in the given profile.
func ExportCSV(w io.Writer, report *Report, profile ExportProfile) error {
	out := csv.NewWriter(w)

	currency := report.Summary.TotalProceeds.Currency()
	if currency == "" {
		currency = "USD"
	}

	switch profile {
	case Generic:
		out.Write([]string{
			"Date Sold", "Asset", "Amount",
			fmt.Sprintf("Proceeds (%s)", currency),
			fmt.Sprintf("Cost Basis (%s)", currency),
			fmt.Sprintf("Gain/Loss (%s)", currency),
			"Hold Period", "Partial Match", "TX Ref",
		})
		for _, d := range report.Disposals {
			out.Write([]string{
				d.Time.UTC().Format(csvTime),
				d.Asset,
				d.QuantitySold.String(),
				d.Proceeds.StringFixed(),
				d.CostBasis.StringFixed(),
				d.GainLoss.StringFixed(),
				d.HoldingPeriod.String(),
				fmt.Sprintf("%t", d.PartialMatch),
				d.TxRef,
			})
		}

	case TurboTax:
		out.Write([]string{
			"Description", "Date Acquired", "Date Sold",
			"Proceeds", "Cost Basis", "Adjustment Code", "Adjustment Amount",
			"Gain or Loss",
		})
		for _, d := range report.Disposals {
			out.Write([]string{
				fmt.Sprintf("%s %s", d.QuantitySold, d.Asset),
				// FIFO matches may span several lots, so a single
				// acquisition date does not exist.
				"Various",
				d.Time.UTC().Format(csvTime),
				d.Proceeds.StringFixed(),
				d.CostBasis.StringFixed(),
				"", "",
				d.GainLoss.StringFixed(),
			})
		}

	case Koinly:
		out.Write([]string{
			"Date", "Sent Amount", "Sent Currency", "Received Amount",
			"Received Currency", "Fee Amount", "Fee Currency",
			"Net Worth Amount", "Net Worth Currency", "Label", "TxHash",
		})
		for _, d := range report.Disposals {
			out.Write([]string{
				d.Time.UTC().Format(csvTime),
				d.QuantitySold.String(),
				d.Asset,
				"", "", "", "",
				d.Proceeds.StringFixed(),
				currency,
				"", // no label: plain disposal
				d.TxRef,
			})
		}

	default:
		return fmt.Errorf("unknown export profile: %d", profile)
	}

	out.Flush()
	return out.Error()
}
