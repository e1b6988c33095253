package exchange

import "encoding/json"

// Quote is one material's exchange price snapshot entry.
// CurrentPrice uses -1 (and sometimes 0) as a "no active order" sentinel.
type Quote struct {
	MatID        int     `json:"matId"`
	CurrentPrice float64 `json:"currentPrice"`
}

// PriceTable maps materialId → quote.
type PriceTable map[int]Quote

// Flatten turns a quote list into a lookup table. Later duplicates win,
// matching the upstream payload order.
func Flatten(quotes []Quote) PriceTable {
	t := make(PriceTable, len(quotes))
	for _, q := range quotes {
		t[q.MatID] = q
	}
	return t
}

// UnitPrice returns the unit price for a material and whether it is valid.
// A price is valid iff the quote exists, is strictly positive, and is not
// the -1 no-order sentinel. Invalid prices must never enter percentage or
// ratio computations downstream.
func (t PriceTable) UnitPrice(matID int) (float64, bool) {
	q, ok := t[matID]
	if !ok {
		return 0, false
	}
	if q.CurrentPrice <= 0 || q.CurrentPrice == -1 {
		return 0, false
	}
	return q.CurrentPrice, true
}

// ParseQuotes decodes a price payload. Upstream serves either a bare quote
// array or an object wrapping it under "prices"; both are accepted.
func ParseQuotes(raw []byte) ([]Quote, error) {
	var quotes []Quote
	if err := json.Unmarshal(raw, &quotes); err == nil {
		return quotes, nil
	}
	var wrapped struct {
		Prices []Quote `json:"prices"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Prices, nil
}
