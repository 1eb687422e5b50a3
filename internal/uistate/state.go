// Package uistate holds the observable fetch state shared by screens.
package uistate

type variant uint8

const (
	idle variant = iota
	loading
	success
	failed
)

// State is one of Idle, Loading, Success or Error. Its fields are hidden;
// callers inspect it through Match or Fold, which require a handler for
// every variant.
type State[T any] struct {
	v       variant
	data    T
	present bool
	msg     string
}

// Idle is the state before any request.
func Idle[T any]() State[T] { return State[T]{v: idle} }

// Loading is the state while a request is in flight.
func Loading[T any]() State[T] { return State[T]{v: loading} }

// Success carries the fetched data.
func Success[T any](data T) State[T] {
	return State[T]{v: success, data: data, present: true}
}

// Empty is a success without data.
func Empty[T any]() State[T] { return State[T]{v: success} }

// Error carries a message to show as is.
func Error[T any](msg string) State[T] { return State[T]{v: failed, msg: msg} }

// Match calls exactly one handler, chosen by the live variant. The success
// handler receives ok=false for an Empty state.
func (s State[T]) Match(onIdle, onLoading func(), onSuccess func(data T, ok bool), onError func(msg string)) {
	switch s.v {
	case idle:
		onIdle()
	case loading:
		onLoading()
	case success:
		onSuccess(s.data, s.present)
	case failed:
		onError(s.msg)
	}
}

// Fold maps s to a value with one function per variant.
func Fold[T, R any](s State[T], onIdle, onLoading func() R, onSuccess func(data T, ok bool) R, onError func(msg string) R) R {
	var out R
	s.Match(
		func() { out = onIdle() },
		func() { out = onLoading() },
		func(data T, ok bool) { out = onSuccess(data, ok) },
		func(msg string) { out = onError(msg) },
	)
	return out
}

// Terminal reports whether s is Success or Error.
func (s State[T]) Terminal() bool {
	return s.v == success || s.v == failed
}

func (s State[T]) String() string {
	return Fold(s,
		func() string { return "idle" },
		func() string { return "loading" },
		func(_ T, ok bool) string {
			if !ok {
				return "success(empty)"
			}
			return "success"
		},
		func(msg string) string { return "error(" + msg + ")" },
	)
}
