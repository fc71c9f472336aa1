package taxlot

import (
	"sort"
	"time"
)

// AssetPnL holds realized and unrealized profit/loss for a single asset.
type AssetPnL struct {
	Asset         string   `json:"asset"`
	Bought        Quantity `json:"bought"`
	Sold          Quantity `json:"sold"`
	Balance       Quantity `json:"balance"`
	CostOfBuys    Money    `json:"costOfBuys"`
	Proceeds      Money    `json:"proceeds"`
	RealizedPnL   Money    `json:"realizedPnL"`
	RemainingCost Money    `json:"remainingCost"`
	CurrentValue  Money    `json:"currentValue"`
	UnrealizedPnL Money    `json:"unrealizedPnL"`
	TotalPnL      Money    `json:"totalPnL"`
	Priced        bool     `json:"priced"` // false when the table had no price to value the balance
	Buys          int      `json:"buys"`
	Sells         int      `json:"sells"`
}

// PnLSummary is a reduction over all per-asset results.
type PnLSummary struct {
	TotalRealized   Money   `json:"totalRealized"`
	TotalUnrealized Money   `json:"totalUnrealized"`
	TotalPnL        Money   `json:"totalPnL"`
	AssetsTraded    int     `json:"assetsTraded"`
	Winning         int     `json:"winning"`
	Losing          int     `json:"losing"`
	WinRate         float64 `json:"winRate"` // percentage of assets with a positive total PnL
	BestAsset       string  `json:"bestAsset,omitempty"`
	WorstAsset      string  `json:"worstAsset,omitempty"`
}

// PnLReport is the per-asset profit and loss view of a transfer stream.
type PnLReport struct {
	AsOf     time.Time  `json:"asOf"`
	Assets   []AssetPnL `json:"assets"`
	Summary  PnLSummary `json:"summary"`
	Warnings []Warning  `json:"warnings,omitempty"`
}

// CalculatePnL replays the transfer stream through a fresh ledger and values
// what is still held against the price table as of 'asOf'. Assets are sorted
// by descending total PnL.
func CalculatePnL(events []TransferEvent, prices *PriceTable, asOf time.Time) *PnLReport {
	ledger := NewLotLedger()
	var warnings []Warning

	perAsset := make(map[string]*AssetPnL)
	at := func(asset string) *AssetPnL {
		a, ok := perAsset[asset]
		if !ok {
			a = &AssetPnL{Asset: asset}
			perAsset[asset] = a
		}
		return a
	}

	for _, e := range events {
		if !e.Quantity.IsPositive() {
			warnings = append(warnings, Warning{TxRef: e.TxRef, Reason: "skipped: non-positive quantity " + e.Quantity.String()})
			continue
		}
		a := at(e.Asset)
		switch e.Direction {
		case In:
			ledger.Acquire(e.Asset, e.Quantity, e.UnitValue, e.Time)
			a.Buys++
			a.Bought = a.Bought.Add(e.Quantity)
			a.CostOfBuys = a.CostOfBuys.Add(e.Value())
		case Out:
			result, err := ledger.Dispose(e.Asset, e.Quantity, e.Value(), e.Time)
			if err != nil {
				warnings = append(warnings, Warning{TxRef: e.TxRef, Reason: "skipped: " + err.Error()})
				continue
			}
			a.Sells++
			a.Sold = a.Sold.Add(e.Quantity)
			a.Proceeds = a.Proceeds.Add(result.Proceeds)
			a.RealizedPnL = a.RealizedPnL.Add(result.GainLoss)
		}
	}

	report := &PnLReport{AsOf: asOf, Warnings: warnings}
	for _, asset := range ledger.Assets() {
		a := at(asset)
		a.Balance = ledger.Position(asset)
		a.RemainingCost = ledger.OpenCostBasis(asset)
		if price, ok := prices.AsOf(asset, asOf); ok {
			a.Priced = true
			a.CurrentValue = price.Mul(a.Balance)
			a.UnrealizedPnL = a.CurrentValue.Sub(a.RemainingCost)
		}
		a.TotalPnL = a.RealizedPnL.Add(a.UnrealizedPnL)
		report.Assets = append(report.Assets, *a)
	}
	sort.SliceStable(report.Assets, func(i, j int) bool {
		return report.Assets[j].TotalPnL.LessThan(report.Assets[i].TotalPnL)
	})

	report.Summary = summarizePnL(report.Assets)
	return report
}

func summarizePnL(assets []AssetPnL) PnLSummary {
	var s PnLSummary
	s.AssetsTraded = len(assets)

	for i, a := range assets {
		s.TotalRealized = s.TotalRealized.Add(a.RealizedPnL)
		s.TotalUnrealized = s.TotalUnrealized.Add(a.UnrealizedPnL)
		s.TotalPnL = s.TotalPnL.Add(a.TotalPnL)
		if a.TotalPnL.IsPositive() {
			s.Winning++
		} else if a.TotalPnL.IsNegative() {
			s.Losing++
		}
		// assets are sorted by total PnL, best first.
		if i == 0 && !a.TotalPnL.IsZero() {
			s.BestAsset = a.Asset
		}
		if i == len(assets)-1 && a.TotalPnL.IsNegative() {
			s.WorstAsset = a.Asset
		}
	}
	if s.AssetsTraded > 0 {
		s.WinRate = 100 * float64(s.Winning) / float64(s.AssetsTraded)
	}
	return s
}
