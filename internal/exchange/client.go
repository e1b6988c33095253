package exchange

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBudgetExhausted is returned when a request would exceed the upstream
// request budget for the current window.
var ErrBudgetExhausted = fmt.Errorf("exchange: request budget exhausted")

// Client is a budget-limited HTTP client for the game's public APIs.
// A small semaphore bounds concurrent connections; the Budget bounds total
// upstream cost per window.
type Client struct {
	http        *http.Client
	sem         chan struct{}
	budget      *Budget
	gameDataURL string
	baseURL     string
}

// NewClient creates a client for the given upstream endpoints.
func NewClient(gameDataURL, exchangeBaseURL string, budget *Budget) *Client {
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		sem:         make(chan struct{}, 4),
		budget:      budget,
		gameDataURL: gameDataURL,
		baseURL:     exchangeBaseURL,
	}
}

// Budget exposes the request budget for status reporting.
func (c *Client) Budget() *Budget { return c.budget }

// FetchRaw fetches a URL body after charging cost units against the budget.
// A cost of 0 bypasses the budget (game data is not billed by upstream).
func (c *Client) FetchRaw(url string, cost int) ([]byte, error) {
	if c.budget != nil && cost > 0 && !c.budget.Allow(cost) {
		return nil, ErrBudgetExhausted
	}

	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "gt-analyzer/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("exchange API %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// FetchGameData pulls the full game-data payload. Game data is served
// outside the exchange budget.
func (c *Client) FetchGameData() ([]byte, error) {
	return c.FetchRaw(c.gameDataURL, 0)
}

// FetchAllPrices pulls the full price list.
func (c *Client) FetchAllPrices() ([]byte, error) {
	return c.FetchRaw(c.baseURL+"/mat-prices", CostAllPrices)
}

// FetchPrice pulls a single material's price.
func (c *Client) FetchPrice(matID int) ([]byte, error) {
	return c.FetchRaw(fmt.Sprintf("%s/mat-prices/%d", c.baseURL, matID), CostSinglePrice)
}

// FetchDetails pulls a single material's detail payload.
func (c *Client) FetchDetails(matID int) ([]byte, error) {
	return c.FetchRaw(fmt.Sprintf("%s/mat-details/%d", c.baseURL, matID), CostSingleDetails)
}

// FetchAllDetails pulls the full material detail list (order books, history).
func (c *Client) FetchAllDetails() ([]byte, error) {
	return c.FetchRaw(c.baseURL+"/mat-details", CostAllDetails)
}
