package cmdtree

import (
	"github.com/dzonerzy/cmdtree/internal/pool"
)

// Window is a view over the tokens that follow one token of the command line.
// origin is the token that produced the window, tokens the unconsumed tail.
// The tail is never copied or owned; only the parameter buffer is.
type Window struct {
	origin string
	tokens []string
	params *[]string // pooled, nil until PrepareParameters
}

// NewWindow binds a view over tail. origin must be non-empty.
func NewWindow(origin string, tail []string) (Window, error) {
	var w Window
	if err := w.bind(origin, tail); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w *Window) bind(origin string, tail []string) error {
	if origin == "" {
		return invalidArgument("window origin is empty")
	}
	w.Clean()
	w.origin = origin
	w.tokens = tail
	return nil
}

// PrepareParameters readies an empty parameter buffer sized to the tail length
func (w *Window) PrepareParameters() {
	if w.params != nil {
		pool.PutStringSlice(w.params)
	}
	w.params = pool.GetStringSlice(len(w.tokens))
}

// AddParameter appends a positional token
func (w *Window) AddParameter(token string) {
	if w.params == nil {
		w.PrepareParameters()
	}
	*w.params = append(*w.params, token)
}

// Parameters returns the positional tokens collected so far.
// The slice is valid until Clean.
func (w *Window) Parameters() []string {
	if w.params == nil {
		return nil
	}
	return *w.params
}

// Origin returns the token that produced the window
func (w *Window) Origin() string { return w.origin }

// Tokens returns the tail view
func (w *Window) Tokens() []string { return w.tokens }

// Len returns the number of tail tokens
func (w *Window) Len() int { return len(w.tokens) }

// Bound reports whether the window has an origin
func (w *Window) Bound() bool { return w.origin != "" }

// Clean releases the parameter buffer. The tail view is left untouched.
func (w *Window) Clean() {
	if w.params == nil {
		return
	}
	pool.PutStringSlice(w.params)
	w.params = nil
}
