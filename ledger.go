package taxlot

import (
	"fmt"
	"sort"
	"time"
)

// DisposalResult records the realized gain of a single disposal, created at
// the moment the disposal consumed one or more lots. Immutable once emitted.
//
// QuantitySold always reports the requested quantity, even when open lots
// only covered part of it; PartialMatch tells the two cases apart.
type DisposalResult struct {
	Asset         string        `json:"asset"`
	QuantitySold  Quantity      `json:"quantitySold"`
	Proceeds      Money         `json:"proceeds"`
	CostBasis     Money         `json:"costBasis"`
	GainLoss      Money         `json:"gainLoss"`
	HoldingPeriod HoldingPeriod `json:"holdingPeriod"`
	PartialMatch  bool          `json:"partialMatch,omitempty"`
	TxRef         string        `json:"txRef,omitempty"`
	Time          time.Time     `json:"time"`
}

// Warning identifies an event that was skipped or degraded during a replay,
// so a report can point at its own data-quality issues.
type Warning struct {
	TxRef  string `json:"txRef"`
	Reason string `json:"reason"`
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.TxRef, w.Reason) }

// LotLedger maintains per-asset FIFO queues of open lots and computes
// realized gains on disposal.
//
// The ledger requires its caller to feed events in non-decreasing time
// order per asset; it performs no sorting of its own. One ledger serves one
// report run and is discarded afterwards, so no locking is needed: parallel
// reports each build their own ledger.
type LotLedger struct {
	open     map[string]lots
	acquired map[string]Quantity // total ever acquired, for conservation checks
	disposed map[string]Quantity // total ever matched by disposals
	warnings []Warning
}

// NewLotLedger creates an empty ledger.
func NewLotLedger() *LotLedger {
	return &LotLedger{
		open:     make(map[string]lots),
		acquired: make(map[string]Quantity),
		disposed: make(map[string]Quantity),
	}
}

// Acquire appends a new lot at the tail of the asset's queue.
//
// A non-positive quantity is a malformed event: it is skipped and recorded
// as a warning instead of aborting the whole replay.
func (l *LotLedger) Acquire(asset string, quantity Quantity, unitCost Money, at time.Time) {
	if !quantity.IsPositive() {
		l.warn("", "skipped acquisition of %q: non-positive quantity %s", asset, quantity)
		return
	}
	l.open[asset] = append(l.open[asset], lot{Quantity: quantity, UnitCost: unitCost, AcquiredAt: at})
	l.acquired[asset] = l.acquired[asset].Add(quantity)
}

// Dispose consumes open lots of the asset oldest-first and returns the
// realized gain.
//
// Running out of open lots is not an error: the unmatched remainder carries
// zero cost basis and the result is flagged PartialMatch, so a report on
// incomplete explorer history stays total. Errors are reserved for
// programmer mistakes: a non-positive quantity, or an asset the ledger has
// never seen.
func (l *LotLedger) Dispose(asset string, quantity Quantity, proceeds Money, at time.Time) (DisposalResult, error) {
	if !quantity.IsPositive() {
		return DisposalResult{}, fmt.Errorf("dispose %q: non-positive quantity %s", asset, quantity)
	}
	if _, ever := l.acquired[asset]; !ever {
		return DisposalResult{}, fmt.Errorf("dispose %q: asset never acquired", asset)
	}

	remaining, c := l.open[asset].consume(quantity)
	if remaining == nil {
		delete(l.open, asset)
	} else {
		l.open[asset] = remaining
	}
	l.disposed[asset] = l.disposed[asset].Add(c.matched)

	result := DisposalResult{
		Asset:        asset,
		QuantitySold: quantity,
		Proceeds:     proceeds,
		CostBasis:    c.costBasis,
		GainLoss:     proceeds.Sub(c.costBasis),
		PartialMatch: c.matched.LessThan(quantity),
		Time:         at,
	}
	if c.matched.IsZero() {
		result.HoldingPeriod = UnknownTerm
	} else {
		result.HoldingPeriod = holdingPeriodOf(c.oldest, at)
	}
	return result, nil
}

// Position returns the quantity currently held across the asset's open lots.
func (l *LotLedger) Position(asset string) Quantity { return l.open[asset].totalQuantity() }

// OpenCostBasis returns the cost basis remaining in the asset's open lots.
func (l *LotLedger) OpenCostBasis(asset string) Money { return l.open[asset].totalCost() }

// Assets returns the sorted list of assets the ledger has ever seen.
func (l *LotLedger) Assets() []string {
	assets := make([]string, 0, len(l.acquired))
	for asset := range l.acquired {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// TotalAcquired returns the quantity ever acquired for the asset.
func (l *LotLedger) TotalAcquired(asset string) Quantity { return l.acquired[asset] }

// TotalDisposed returns the quantity ever matched by disposals for the asset.
// The difference with TotalAcquired is always the open position: quantity is
// neither created nor destroyed by lot matching.
func (l *LotLedger) TotalDisposed(asset string) Quantity { return l.disposed[asset] }

// Warnings returns the malformed events skipped so far, in replay order.
func (l *LotLedger) Warnings() []Warning { return l.warnings }

func (l *LotLedger) warn(txRef, format string, args ...any) {
	l.warnings = append(l.warnings, Warning{TxRef: txRef, Reason: fmt.Sprintf(format, args...)})
}
