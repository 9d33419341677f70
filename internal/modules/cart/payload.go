package cart

import "github.com/MarceliJankowski/pizza-project/internal/modules/pricing"

// Contact is the customer-supplied part of an order. Email is optional;
// when present a receipt is mailed.
type Contact struct {
	Phone   string `json:"phone" binding:"required,min=7,max=32" validate:"required,min=7,max=32"`
	Address string `json:"address" binding:"required,min=5,max=255" validate:"required,min=5,max=255"`
	Email   string `json:"email" binding:"omitempty,email" validate:"omitempty,email"`
}

// PayloadProduct is one submitted line: PriceCents carries the line
// total, UnitPriceCents the frozen per-unit price.
type PayloadProduct struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	PriceCents     int                    `json:"priceCents"`
	Quantity       int                    `json:"quantity"`
	UnitPriceCents int                    `json:"unitPriceCents"`
	Params         []pricing.GroupSummary `json:"params"`
}

// OrderPayload is the submittable order: totals, the ordered line list
// and the contact fields. JSON-serializable with plain leaves only.
type OrderPayload struct {
	Phone            string           `json:"phone"`
	Address          string           `json:"address"`
	Email            string           `json:"email,omitempty"`
	SubtotalCents    int              `json:"subtotalCents"`
	DeliveryFeeCents int              `json:"deliveryFeeCents"`
	TotalCents       int              `json:"totalCents"`
	ItemCount        int              `json:"itemCount"`
	Products         []PayloadProduct `json:"products"`
}

// OrderPayload serializes the cart's current state. Pure: one entry per
// line in insertion order, each priced at its current line total; no
// network I/O happens here (submission is the orders service's job).
func (c *Cart) OrderPayload(contact Contact) OrderPayload {
	products := make([]PayloadProduct, 0, len(c.lines))
	for _, l := range c.lines {
		products = append(products, PayloadProduct{
			ID:             l.ProductID(),
			Code:           l.ProductCode(),
			Name:           l.Name(),
			PriceCents:     l.LineTotalCents(),
			Quantity:       l.Quantity(),
			UnitPriceCents: l.UnitPriceCents(),
			Params:         l.Summary(),
		})
	}

	t := c.totals
	return OrderPayload{
		Phone:            contact.Phone,
		Address:          contact.Address,
		Email:            contact.Email,
		SubtotalCents:    t.SubtotalCents,
		DeliveryFeeCents: t.DeliveryFeeCents,
		TotalCents:       t.TotalCents,
		ItemCount:        t.ItemCount,
		Products:         products,
	}
}
