package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

// Widget defaults, matching the storefront's amount widget.
const (
	DefaultAmount = 1
	DefaultMin    = 1
	DefaultMax    = 9
)

// ChangeFunc receives the widget's current value after every SetValue,
// Increment or Decrement call, including calls that left the value
// unchanged. Dependent recomputation hangs off this, so it must always
// run.
type ChangeFunc func(value int)

// AmountWidget is a bounded integer counter. Not safe for concurrent
// use; callers serialize access (see cart.Store).
type AmountWidget struct {
	value     int
	min, max  int
	listeners []ChangeFunc
}

// NewAmountWidget rejects construction outright on bad bounds instead of
// clamping; the caller must supply a valid initial value.
func NewAmountWidget(initial, min, max int) (*AmountWidget, error) {
	if min > max {
		return nil, apperr.ConfigErr(fmt.Sprintf("amount bounds invalid: min %d > max %d", min, max))
	}
	if initial < min || initial > max {
		return nil, apperr.ConfigErr(fmt.Sprintf("initial amount %d outside [%d,%d]", initial, min, max))
	}
	return &AmountWidget{value: initial, min: min, max: max}, nil
}

func (w *AmountWidget) Value() int { return w.value }
func (w *AmountWidget) Min() int   { return w.min }
func (w *AmountWidget) Max() int   { return w.max }

// OnChange registers a listener. Listeners run synchronously, in
// registration order, before the mutating call returns.
func (w *AmountWidget) OnChange(fn ChangeFunc) {
	w.listeners = append(w.listeners, fn)
}

// SetValue parses raw as an integer and applies it. Unparsable input, an
// unchanged value or a value outside [min,max] leaves the state as-is,
// but the change notification still fires exactly once per call so that
// dependents always recompute.
func (w *AmountWidget) SetValue(raw string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		w.announce()
		return
	}
	w.apply(n)
}

// Set is the integer form of SetValue.
func (w *AmountWidget) Set(n int) { w.apply(n) }

func (w *AmountWidget) Increment() { w.apply(w.value + 1) }
func (w *AmountWidget) Decrement() { w.apply(w.value - 1) }

func (w *AmountWidget) apply(n int) {
	if n != w.value && n >= w.min && n <= w.max {
		w.value = n
	}
	w.announce()
}

func (w *AmountWidget) announce() {
	for _, fn := range w.listeners {
		fn(w.value)
	}
}
