package cart

import (
	"github.com/MarceliJankowski/pizza-project/internal/modules/pricing"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

// Line is one snapshotted, quantity-bearing cart entry. Name, product
// identity, unit price and selection summary are frozen at AddLine time;
// only the quantity (through the line's own amount widget) and the
// derived line total ever change.
type Line struct {
	id             string
	productID      string
	productCode    string
	name           string
	unitPriceCents int
	summary        []pricing.GroupSummary

	amount         *pricing.AmountWidget
	lineTotalCents int
	owner          *Cart
}

func (l *Line) ID() string                      { return l.id }
func (l *Line) ProductID() string               { return l.productID }
func (l *Line) ProductCode() string             { return l.productCode }
func (l *Line) Name() string                    { return l.name }
func (l *Line) UnitPriceCents() int             { return l.unitPriceCents }
func (l *Line) Summary() []pricing.GroupSummary { return l.summary }
func (l *Line) Quantity() int                   { return l.amount.Value() }
func (l *Line) LineTotalCents() int             { return l.lineTotalCents }
func (l *Line) Amount() *pricing.AmountWidget   { return l.amount }

// SetQuantity feeds raw input to the line's amount widget. The widget's
// change notification runs the line and cart recomputation even when the
// input is rejected.
func (l *Line) SetQuantity(raw string) {
	l.amount.SetValue(raw)
}

// Remove detaches the line from its owning cart through the cart's own
// RemoveLine; the line never mutates the collection directly.
func (l *Line) Remove() error {
	if l.owner == nil {
		return apperr.NotFoundErr("cart line already removed")
	}
	return l.owner.RemoveLine(l.id)
}

// recompute refreshes the line total from the frozen unit price. The
// unit price itself is never recomputed from option state.
func (l *Line) recompute() {
	l.lineTotalCents = l.unitPriceCents * l.amount.Value()
}
