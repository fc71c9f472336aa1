package taxlot

import "time"

// lot represents a single acquisition of an asset, tracked until fully
// consumed by disposals. Only the quantity changes after creation.
type lot struct {
	Quantity   Quantity
	UnitCost   Money // cost of one unit in the reporting currency
	AcquiredAt time.Time
}

// cost returns the remaining total cost of the lot (quantity * unit cost).
func (l lot) cost() Money { return l.UnitCost.Mul(l.Quantity) }

// lots is a FIFO queue of open lots for one asset, oldest first.
type lots []lot

// totalQuantity returns the quantity held across all open lots.
func (l lots) totalQuantity() Quantity {
	var total Quantity
	for _, currentLot := range l {
		total = total.Add(currentLot.Quantity)
	}
	return total
}

// totalCost returns the cost basis remaining across all open lots.
func (l lots) totalCost() Money {
	var total Money
	for _, currentLot := range l {
		total = total.Add(currentLot.cost())
	}
	return total
}

// consumption is the outcome of taking a quantity out of the queue.
type consumption struct {
	costBasis Money     // accumulated cost of the matched units
	matched   Quantity  // how much of the request was covered by open lots
	oldest    time.Time // acquisition time of the first lot touched
}

// consume takes quantityToSell out of the queue oldest-first, splitting the
// last lot touched when it only partially covers the remainder. It returns
// the remaining queue and what was matched. When the queue runs out before
// the request is covered, matched stays below quantityToSell and the caller
// decides how to report the shortfall.
func (l lots) consume(quantityToSell Quantity) (remaining lots, c consumption) {
	for i, currentLot := range l {
		if quantityToSell.IsZero() {
			remaining = append(remaining, l[i:]...)
			return remaining, c
		}

		if c.matched.IsZero() {
			c.oldest = currentLot.AcquiredAt
		}

		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot: split it in place.
			c.costBasis = c.costBasis.Add(currentLot.UnitCost.Mul(quantityToSell))
			c.matched = c.matched.Add(quantityToSell)
			currentLot.Quantity = currentLot.Quantity.Sub(quantityToSell)
			remaining = append(remaining, currentLot)
			remaining = append(remaining, l[i+1:]...)
			return remaining, c
		}

		// Full sale of this lot: it leaves the queue.
		c.costBasis = c.costBasis.Add(currentLot.cost())
		c.matched = c.matched.Add(currentLot.Quantity)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	// Queue exhausted: the unmatched remainder carries zero cost basis.
	return nil, c
}
