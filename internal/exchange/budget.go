package exchange

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// Upstream request costs in budget units. The public API bills a 100-unit
// budget per 5-minute window; bulk detail pulls are by far the priciest.
const (
	CostSinglePrice   = 2
	CostAllPrices     = 5
	CostSingleDetails = 5
	CostAllDetails    = 60
)

// Budget is a token-bucket request-budget tracker for the upstream exchange
// API. Tokens refill continuously at total/window; a call is admitted only
// when its full cost fits in the bucket.
type Budget struct {
	limiter *rate.Limiter
	total   int
	window  time.Duration
}

// NewBudget creates a budget of total units per window.
func NewBudget(total int, window time.Duration) *Budget {
	if total <= 0 {
		total = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Budget{
		limiter: rate.NewLimiter(rate.Limit(float64(total)/window.Seconds()), total),
		total:   total,
		window:  window,
	}
}

// Allow reserves cost units if the budget permits, reporting whether the
// request may proceed. It never blocks.
func (b *Budget) Allow(cost int) bool {
	if cost <= 0 {
		cost = 1
	}
	return b.limiter.AllowN(time.Now(), cost)
}

// Usage returns the units currently consumed within the window.
func (b *Budget) Usage() int {
	used := b.total - int(math.Floor(b.limiter.Tokens()))
	if used < 0 {
		return 0
	}
	if used > b.total {
		return b.total
	}
	return used
}

// Remaining returns the units still available.
func (b *Budget) Remaining() int { return b.total - b.Usage() }

// Total returns the configured budget size.
func (b *Budget) Total() int { return b.total }

// Window returns the configured refill window.
func (b *Budget) Window() time.Duration { return b.window }
