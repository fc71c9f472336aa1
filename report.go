package taxlot

import (
	"sort"
)

// Summary is a pure reduction over the disposals of a report.
type Summary struct {
	Disposals          int      `json:"disposals"`
	UnmatchedDisposals int      `json:"unmatchedDisposals"`
	ShortTermGains     Money    `json:"shortTermGains"`
	ShortTermLosses    Money    `json:"shortTermLosses"`
	LongTermGains      Money    `json:"longTermGains"`
	LongTermLosses     Money    `json:"longTermLosses"`
	NetShortTerm       Money    `json:"netShortTerm"`
	NetLongTerm        Money    `json:"netLongTerm"`
	TotalProceeds      Money    `json:"totalProceeds"`
	TotalCostBasis     Money    `json:"totalCostBasis"`
	Assets             []string `json:"assets"`
}

// Report is the outcome of replaying a transfer stream through one ledger.
type Report struct {
	Window    Range            `json:"window,omitzero"`
	Disposals []DisposalResult `json:"disposals"`
	Summary   Summary          `json:"summary"`
	Warnings  []Warning        `json:"warnings,omitempty"`
}

// Run replays a chronological stream of transfer events through a fresh
// ledger: incoming transfers acquire lots, outgoing transfers dispose them.
//
// The window, when non-zero, filters the *disposals* after a full-history
// replay, never the input events: a disposal inside the window keeps the
// cost basis of lots acquired before it. Filtering events instead would
// corrupt FIFO matching.
//
// Run is deterministic: the same ordered events always produce the same
// report.
func Run(events []TransferEvent, window Range) *Report {
	ledger := NewLotLedger()
	var disposals []DisposalResult
	var warnings []Warning

	for _, e := range events {
		if !e.Quantity.IsPositive() {
			warnings = append(warnings, Warning{TxRef: e.TxRef, Reason: "skipped: non-positive quantity " + e.Quantity.String()})
			continue
		}
		switch e.Direction {
		case In:
			ledger.Acquire(e.Asset, e.Quantity, e.UnitValue, e.Time)
		case Out:
			result, err := ledger.Dispose(e.Asset, e.Quantity, e.Value(), e.Time)
			if err != nil {
				// Disposal of an asset with no acquisition history at all.
				// The event cannot be matched; it is skipped and reported.
				warnings = append(warnings, Warning{TxRef: e.TxRef, Reason: "skipped: " + err.Error()})
				continue
			}
			result.TxRef = e.TxRef
			disposals = append(disposals, result)
		}
	}

	if !window.IsZero() {
		kept := disposals[:0:0]
		for _, d := range disposals {
			if window.Contains(d.Time) {
				kept = append(kept, d)
			}
		}
		disposals = kept
	}

	return &Report{
		Window:    window,
		Disposals: disposals,
		Summary:   summarize(disposals),
		Warnings:  warnings,
	}
}

// summarize reduces disposals into the yearly tax summary.
func summarize(disposals []DisposalResult) Summary {
	var s Summary
	assets := make(map[string]struct{})

	for _, d := range disposals {
		s.Disposals++
		if d.PartialMatch {
			s.UnmatchedDisposals++
		}
		assets[d.Asset] = struct{}{}
		s.TotalProceeds = s.TotalProceeds.Add(d.Proceeds)
		s.TotalCostBasis = s.TotalCostBasis.Add(d.CostBasis)

		switch {
		case d.HoldingPeriod == LongTerm && !d.GainLoss.IsNegative():
			s.LongTermGains = s.LongTermGains.Add(d.GainLoss)
		case d.HoldingPeriod == LongTerm:
			s.LongTermLosses = s.LongTermLosses.Add(d.GainLoss.Abs())
		case !d.GainLoss.IsNegative():
			// Unknown-term disposals count as short-term, the conservative default.
			s.ShortTermGains = s.ShortTermGains.Add(d.GainLoss)
		default:
			s.ShortTermLosses = s.ShortTermLosses.Add(d.GainLoss.Abs())
		}
	}

	s.NetShortTerm = s.ShortTermGains.Sub(s.ShortTermLosses)
	s.NetLongTerm = s.LongTermGains.Sub(s.LongTermLosses)

	s.Assets = make([]string, 0, len(assets))
	for asset := range assets {
		s.Assets = append(s.Assets, asset)
	}
	sort.Strings(s.Assets)
	return s
}
