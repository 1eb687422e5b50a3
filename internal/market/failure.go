package market

import (
	"errors"
	"fmt"

	"quotedesk/internal/alphavantage"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	// Transport covers network and HTTP status failures.
	Transport Kind = iota
	// Decode covers malformed or unexpectedly shaped JSON.
	Decode
	// Domain covers well-formed responses missing the expected data.
	Domain
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Decode:
		return "decode"
	case Domain:
		return "domain"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrNoQuote is returned when a quote response has no quote object.
var ErrNoQuote = errors.New("no quote available")

// Failure is the single failure outcome returned by the repository.
// Its message is meant to be shown to the user as is.
type Failure struct {
	Kind Kind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Op == "" {
		return f.Err.Error()
	}
	return f.Op + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf reports the failure kind of err. Errors that are not a *Failure
// are classified the same way the repository classifies client errors.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	var apiErr *alphavantage.APIError
	switch {
	case errors.Is(err, alphavantage.ErrDecode):
		return Decode
	case errors.As(err, &apiErr), errors.Is(err, ErrNoQuote):
		return Domain
	default:
		return Transport
	}
}

// domainf builds a Domain failure whose message is the formatted text.
func domainf(format string, args ...any) *Failure {
	return &Failure{Kind: Domain, Err: fmt.Errorf(format, args...)}
}

func fail(op string, err error) error {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: classify(err), Op: op, Err: err}
}
