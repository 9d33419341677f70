package view

import (
	"github.com/MarceliJankowski/pizza-project/internal/modules/cart"
	"github.com/MarceliJankowski/pizza-project/internal/modules/pricing"
)

type CartLine struct {
	ID             string                 `json:"id"`
	ProductID      string                 `json:"productId"`
	ProductCode    string                 `json:"productCode"`
	Name           string                 `json:"name"`
	Quantity       int                    `json:"quantity"`
	UnitPriceCents int                    `json:"unitPriceCents"`
	LineTotalCents int                    `json:"lineTotalCents"`
	Params         []pricing.GroupSummary `json:"params"`
}

type CartPage struct {
	Lines            []CartLine `json:"lines"`
	ItemCount        int        `json:"itemCount"`
	SubtotalCents    int        `json:"subtotalCents"`
	DeliveryFeeCents int        `json:"deliveryFeeCents"`
	TotalCents       int        `json:"totalCents"`
}

func MapCart(c *cart.Cart) CartPage {
	t := c.Totals()
	page := CartPage{
		Lines:            make([]CartLine, 0, len(c.Lines())),
		ItemCount:        t.ItemCount,
		SubtotalCents:    t.SubtotalCents,
		DeliveryFeeCents: t.DeliveryFeeCents,
		TotalCents:       t.TotalCents,
	}
	for _, l := range c.Lines() {
		page.Lines = append(page.Lines, CartLine{
			ID:             l.ID(),
			ProductID:      l.ProductID(),
			ProductCode:    l.ProductCode(),
			Name:           l.Name(),
			Quantity:       l.Quantity(),
			UnitPriceCents: l.UnitPriceCents(),
			LineTotalCents: l.LineTotalCents(),
			Params:         l.Summary(),
		})
	}
	return page
}
