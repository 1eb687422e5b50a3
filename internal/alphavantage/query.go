package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 16 << 20

// TopGainersLosers fetches the TOP_GAINERS_LOSERS report.
func (c *Client) TopGainersLosers(ctx context.Context) (*Movers, error) {
	body, err := c.do(ctx, "TOP_GAINERS_LOSERS", nil)
	if err != nil {
		return nil, err
	}
	var movers Movers
	if err := json.Unmarshal(body, &movers); err != nil {
		return nil, fmt.Errorf("%w: top gainers/losers: %w", ErrDecode, err)
	}
	return &movers, nil
}

// Overview fetches the OVERVIEW report for symbol.
func (c *Client) Overview(ctx context.Context, symbol string) (*Overview, error) {
	body, err := c.do(ctx, "OVERVIEW", url.Values{"symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	var overview Overview
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, fmt.Errorf("%w: overview: %w", ErrDecode, err)
	}
	return &overview, nil
}

// TimeSeriesDaily returns the raw TIME_SERIES_DAILY body for symbol.
func (c *Client) TimeSeriesDaily(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.do(ctx, "TIME_SERIES_DAILY", url.Values{"symbol": {symbol}})
}

// SymbolSearch returns the raw SYMBOL_SEARCH body for keywords.
func (c *Client) SymbolSearch(ctx context.Context, keywords string) (json.RawMessage, error) {
	return c.do(ctx, "SYMBOL_SEARCH", url.Values{"keywords": {keywords}})
}

// GlobalQuote returns the raw GLOBAL_QUOTE body for symbol.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.do(ctx, "GLOBAL_QUOTE", url.Values{"symbol": {symbol}})
}

// do performs GET {baseURL}/query?function=... and returns the body once
// the status and any in-body API error have been checked.
func (c *Client) do(ctx context.Context, function string, params url.Values) ([]byte, error) {
	query := maps.Clone(c.query)
	if query == nil {
		query = url.Values{}
	}
	query.Set("function", function)
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	u := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("function", function).Msg("request")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Function: function, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if err := checkAPIError(body); err != nil {
		c.log.Warn().Str("function", function).Err(err).Msg("api reported error")
		return nil, err
	}
	return body, nil
}

// checkAPIError detects error payloads that arrive with status 200.
func checkAPIError(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if bytes.Contains(trimmed, []byte("Thank you for using Alpha Vantage")) && !bytes.HasPrefix(trimmed, []byte("{")) {
		return &APIError{Kind: "Note", Message: string(trimmed)}
	}
	if !bytes.HasPrefix(trimmed, []byte("{")) {
		if len(trimmed) == 0 {
			return fmt.Errorf("%w: empty body", ErrDecode)
		}
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	for _, kind := range []string{"Error Message", "Note", "Information"} {
		raw, ok := probe[kind]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			msg = string(raw)
		}
		return &APIError{Kind: kind, Message: msg}
	}
	return nil
}
