package market

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Summary compares the two most recent closes of a series.
type Summary struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Up            bool            `json:"up"`
}

var hundred = decimal.NewFromInt(100)

// Summarize computes the day change of points, which must be newest first.
// With a single point the previous close is taken as the current one.
func Summarize(points []PricePoint) Summary {
	if len(points) == 0 {
		return Summary{Up: true}
	}
	current := points[0].Close
	previous := current
	if len(points) > 1 {
		previous = points[1].Close
	}
	change := current.Sub(previous)
	percent := decimal.Zero
	if !previous.IsZero() {
		percent = change.Div(previous).Mul(hundred).Round(2)
	}
	return Summary{
		Current:       current,
		Previous:      previous,
		Change:        change,
		ChangePercent: percent,
		Up:            !change.IsNegative(),
	}
}

// ErrInvalidRange is returned by ParseRange for unknown range names.
var ErrInvalidRange = errors.New("invalid range")

// Range is a chart window.
type Range string

const (
	Range1D Range = "1D"
	Range1W Range = "1W"
	Range1M Range = "1M"
	Range3M Range = "3M"
	Range1Y Range = "1Y"
)

// Ranges lists the supported windows, shortest first.
var Ranges = []Range{Range1D, Range1W, Range1M, Range3M, Range1Y}

// ParseRange parses a range name case-insensitively.
func ParseRange(s string) (Range, error) {
	r := Range(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRange, s)
}

// start returns the earliest date included when the window ends at newest.
func (r Range) start(newest time.Time) time.Time {
	switch r {
	case Range1D:
		return newest
	case Range1W:
		return newest.AddDate(0, 0, -7)
	case Range1M:
		return newest.AddDate(0, -1, 0)
	case Range3M:
		return newest.AddDate(0, -3, 0)
	case Range1Y:
		return newest.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

// Window returns the points, newest first, that fall inside the range
// ending at the newest point. An unknown range returns all points.
func (r Range) Window(points []PricePoint) []PricePoint {
	if len(points) == 0 {
		return []PricePoint{}
	}
	from := r.start(points[0].Date)
	out := make([]PricePoint, 0, len(points))
	for _, p := range points {
		if p.Date.Before(from) {
			break
		}
		out = append(out, p)
	}
	return out
}
