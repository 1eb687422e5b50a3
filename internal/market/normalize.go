package market

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"quotedesk/internal/alphavantage"
)

const dateLayout = "2006-01-02"

type dailyResponse struct {
	Series map[string]map[string]json.RawMessage `json:"Time Series (Daily)"`
}

type searchResponse struct {
	BestMatches []map[string]json.RawMessage `json:"bestMatches"`
}

type quoteResponse struct {
	Quote map[string]json.RawMessage `json:"Global Quote"`
}

// parseDaily turns a TIME_SERIES_DAILY body into points, newest first.
// Unparseable numbers become zero and undated entries are dropped.
func parseDaily(symbol string, body []byte) ([]PricePoint, error) {
	var res dailyResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: daily series: %w", alphavantage.ErrDecode, err)
	}
	if res.Series == nil {
		return nil, domainf("no price history available for %s", symbol)
	}

	points := make([]PricePoint, 0, len(res.Series))
	for day, fields := range res.Series {
		date, err := time.Parse(dateLayout, strings.TrimSpace(day))
		if err != nil {
			continue
		}
		points = append(points, PricePoint{
			Date:   date,
			Open:   lenientDecimal(fields["1. open"]),
			High:   lenientDecimal(fields["2. high"]),
			Low:    lenientDecimal(fields["3. low"]),
			Close:  lenientDecimal(fields["4. close"]),
			Volume: lenientDecimal(fields["5. volume"]).IntPart(),
		})
	}
	slices.SortFunc(points, func(a, b PricePoint) int {
		return b.Date.Compare(a.Date)
	})
	return points, nil
}

// parseSearch extracts bestMatches; a missing wrapper is an empty result.
func parseSearch(body []byte) ([]SearchMatch, error) {
	var res searchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: symbol search: %w", alphavantage.ErrDecode, err)
	}
	matches := make([]SearchMatch, 0, len(res.BestMatches))
	for _, m := range res.BestMatches {
		matches = append(matches, SearchMatch{
			Symbol:      lenientString(m["1. symbol"]),
			Name:        lenientString(m["2. name"]),
			Type:        lenientString(m["3. type"]),
			Region:      lenientString(m["4. region"]),
			MarketOpen:  lenientString(m["5. marketOpen"]),
			MarketClose: lenientString(m["6. marketClose"]),
			Timezone:    lenientString(m["7. timezone"]),
			Currency:    lenientString(m["8. currency"]),
			MatchScore:  lenientString(m["9. matchScore"]),
		})
	}
	return matches, nil
}

// parseQuote extracts "Global Quote"."05. price".
func parseQuote(symbol string, body []byte) (string, error) {
	var res quoteResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("%w: global quote: %w", alphavantage.ErrDecode, err)
	}
	if len(res.Quote) == 0 {
		return "", &Failure{Kind: Domain, Err: fmt.Errorf("%w for %s", ErrNoQuote, symbol)}
	}
	price := lenientString(res.Quote["05. price"])
	if price == "" {
		return NotAvailable, nil
	}
	return price, nil
}

// lenientString accepts a JSON string or a bare scalar.
func lenientString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return string(raw)
}

func lenientDecimal(raw json.RawMessage) decimal.Decimal {
	d, err := decimal.NewFromString(lenientString(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
