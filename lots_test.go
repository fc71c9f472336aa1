package taxlot

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return t0.Add(time.Duration(n) * 24 * time.Hour) }

func TestLots_ConsumeFIFO(t *testing.T) {
	// lots acquired at costs 10, 20, 30 (qty 1 each): disposing 2 units must
	// consume the two oldest.
	queue := lots{
		{Quantity: Q(1), UnitCost: M(10, "USD"), AcquiredAt: day(0)},
		{Quantity: Q(1), UnitCost: M(20, "USD"), AcquiredAt: day(1)},
		{Quantity: Q(1), UnitCost: M(30, "USD"), AcquiredAt: day(2)},
	}

	remaining, c := queue.consume(Q(2))

	if want := M(30, "USD"); !c.costBasis.Equal(want) {
		t.Errorf("costBasis = %s, want %s", c.costBasis, want)
	}
	if !c.matched.Equal(Q(2)) {
		t.Errorf("matched = %s, want 2", c.matched)
	}
	if !c.oldest.Equal(day(0)) {
		t.Errorf("oldest = %s, want %s", c.oldest, day(0))
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining lots = %d, want 1", len(remaining))
	}
	if want := M(30, "USD"); !remaining[0].UnitCost.Equal(want) {
		t.Errorf("remaining lot cost = %s, want %s", remaining[0].UnitCost, want)
	}
}

func TestLots_ConsumeSplitsPartialLot(t *testing.T) {
	// acquire qty 5 @ 10/unit; dispose qty 2 -> remaining lot qty 3 @ 10/unit.
	queue := lots{{Quantity: Q(5), UnitCost: M(10, "USD"), AcquiredAt: day(0)}}

	remaining, c := queue.consume(Q(2))

	if want := M(20, "USD"); !c.costBasis.Equal(want) {
		t.Errorf("costBasis = %s, want %s", c.costBasis, want)
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining lots = %d, want 1", len(remaining))
	}
	if !remaining[0].Quantity.Equal(Q(3)) {
		t.Errorf("remaining quantity = %s, want 3", remaining[0].Quantity)
	}
	if want := M(10, "USD"); !remaining[0].UnitCost.Equal(want) {
		t.Errorf("remaining unit cost = %s, want %s", remaining[0].UnitCost, want)
	}
}

func TestLots_ConsumeExhaustsQueue(t *testing.T) {
	queue := lots{{Quantity: Q(1), UnitCost: M(10, "USD"), AcquiredAt: day(0)}}

	remaining, c := queue.consume(Q(3))

	if remaining != nil {
		t.Errorf("remaining = %v, want empty", remaining)
	}
	// only the single held unit is matched; the rest carries zero cost.
	if !c.matched.Equal(Q(1)) {
		t.Errorf("matched = %s, want 1", c.matched)
	}
	if want := M(10, "USD"); !c.costBasis.Equal(want) {
		t.Errorf("costBasis = %s, want %s", c.costBasis, want)
	}
}

func TestLots_QuantityConservation(t *testing.T) {
	// acquired == matched + remaining for any consume sequence.
	queue := lots{
		{Quantity: Q(3), UnitCost: M(1, "USD"), AcquiredAt: day(0)},
		{Quantity: Q(7), UnitCost: M(2, "USD"), AcquiredAt: day(1)},
		{Quantity: Q(11), UnitCost: M(3, "USD"), AcquiredAt: day(2)},
	}
	acquired := queue.totalQuantity()

	var matched Quantity
	for _, sell := range []Quantity{Q(2), Q(5), Q(0.5), Q(9)} {
		var c consumption
		queue, c = queue.consume(sell)
		matched = matched.Add(c.matched)
	}

	if got := matched.Add(queue.totalQuantity()); !got.Equal(acquired) {
		t.Errorf("matched+remaining = %s, want %s", got, acquired)
	}
}
