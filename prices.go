package taxlot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTable holds per-asset unit price histories in the reporting
// currency. Feeds use it to stamp transfer events with the price at event
// time; the PnL report uses it to value open positions.
type PriceTable struct {
	currency  string
	histories map[string][]pricePoint // sorted by time
}

type pricePoint struct {
	at    time.Time
	price decimal.Decimal
}

// NewPriceTable creates an empty price table in the given reporting currency.
func NewPriceTable(currency string) *PriceTable {
	return &PriceTable{
		currency:  currency,
		histories: make(map[string][]pricePoint),
	}
}

// Currency returns the reporting currency of all prices in the table.
func (p *PriceTable) Currency() string { return p.currency }

// Append records the unit price of an asset at a point in time.
func (p *PriceTable) Append(asset string, at time.Time, price decimal.Decimal) {
	history := append(p.histories[asset], pricePoint{at: at, price: price})
	sort.SliceStable(history, func(i, j int) bool { return history[i].at.Before(history[j].at) })
	p.histories[asset] = history
}

// AsOf returns the latest recorded unit price of the asset at or before t.
func (p *PriceTable) AsOf(asset string, t time.Time) (Money, bool) {
	history := p.histories[asset]
	// Find the first point strictly after t; the one before it is the answer.
	i := sort.Search(len(history), func(i int) bool { return history[i].at.After(t) })
	if i == 0 {
		return Money{}, false
	}
	return M(history[i-1].price, p.currency), true
}

// Latest returns the most recent recorded unit price of the asset.
func (p *PriceTable) Latest(asset string) (Money, bool) {
	history := p.histories[asset]
	if len(history) == 0 {
		return Money{}, false
	}
	return M(history[len(history)-1].price, p.currency), true
}

// Assets returns the sorted list of assets with at least one price.
func (p *PriceTable) Assets() []string {
	assets := make([]string, 0, len(p.histories))
	for asset := range p.histories {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// jprices is the readable import/export shape of one asset's history: a
// JSONL line whose history keys are RFC 3339 instants.
type jprices struct {
	Asset    string                     `json:"asset"`
	Currency string                     `json:"currency,omitempty"`
	History  map[string]decimal.Decimal `json:"history"`
}

// DecodePriceTable decodes a price table from a JSONL stream, one asset per
// line.
func DecodePriceTable(r io.Reader, currency string) (*PriceTable, error) {
	table := NewPriceTable(currency)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jp jprices
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("cannot parse price line %q: %w", string(line), err)
		}
		if jp.Currency != "" && jp.Currency != currency {
			return nil, fmt.Errorf("price history for %q is in %s, expected %s", jp.Asset, jp.Currency, currency)
		}
		for instant, price := range jp.History {
			at, err := time.Parse(time.RFC3339, instant)
			if err != nil {
				return nil, fmt.Errorf("cannot parse price instant %q for %q: %w", instant, jp.Asset, err)
			}
			table.Append(jp.Asset, at, price)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading price table: %w", err)
	}
	return table, nil
}

// EncodePriceTable writes the table as canonical JSONL, one asset per line,
// assets in sorted order.
func EncodePriceTable(w io.Writer, p *PriceTable) error {
	for _, asset := range p.Assets() {
		jp := jprices{Asset: asset, Currency: p.currency, History: make(map[string]decimal.Decimal)}
		for _, point := range p.histories[asset] {
			jp.History[point.at.UTC().Format(time.RFC3339)] = point.price
		}
		data, err := json.Marshal(jp)
		if err != nil {
			return fmt.Errorf("cannot marshal price history for %q: %w", asset, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write price history: %w", err)
		}
	}
	return nil
}
