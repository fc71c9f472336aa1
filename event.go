package taxlot

import (
	"sort"
	"time"
)

// TransferEvent is a single directional movement of an asset, externally
// supplied and processed exactly once in ascending time order.
//
// UnitValue is the spot price of one unit in the reporting currency at the
// time of the event. It must be supplied by the feed: this package never
// substitutes a current price for a historical one.
type TransferEvent struct {
	Asset     string    `json:"asset"`
	Quantity  Quantity  `json:"quantity"`
	Direction Direction `json:"direction"`
	UnitValue Money     `json:"unitValue"`
	Time      time.Time `json:"time"`
	TxRef     string    `json:"txRef"`
}

// Value returns the total value of the event (quantity at unit value).
func (e TransferEvent) Value() Money { return e.UnitValue.Mul(e.Quantity) }

// SortEvents orders events by ascending time, preserving the relative order
// of events sharing a timestamp. Ordering is the feed's job: the ledger
// itself never sorts.
func SortEvents(events []TransferEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
}
