package cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/modules/pricing"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

// DefaultDeliveryFeeCents is the storefront's flat delivery fee.
const DefaultDeliveryFeeCents = 2000

// Totals is the derived summary over all current lines. DeliveryFee is
// flat and only charged on a non-empty cart; an empty cart totals zero.
type Totals struct {
	ItemCount        int `json:"itemCount"`
	SubtotalCents    int `json:"subtotalCents"`
	DeliveryFeeCents int `json:"deliveryFeeCents"`
	TotalCents       int `json:"totalCents"`
}

// Config carries the widget bounds applied to every line's amount
// widget plus the flat delivery fee.
type Config struct {
	DeliveryFeeCents int
	AmountMin        int
	AmountMax        int
}

func DefaultConfig() Config {
	return Config{
		DeliveryFeeCents: DefaultDeliveryFeeCents,
		AmountMin:        pricing.DefaultMin,
		AmountMax:        pricing.DefaultMax,
	}
}

// Cart owns its line collection exclusively: lines are only ever added
// through AddLine, removed through RemoveLine and re-quantified through
// their own amount widget. Not safe for concurrent use; the session
// store serializes access per cart.
type Cart struct {
	id     string
	cfg    Config
	lines  []*Line
	totals Totals
}

// New builds an empty cart. Unset widget bounds fall back to the
// defaults; the delivery fee is taken as configured, zero meaning free
// delivery.
func New(cfg Config) *Cart {
	if cfg.AmountMin == 0 {
		cfg.AmountMin = pricing.DefaultMin
	}
	if cfg.AmountMax == 0 {
		cfg.AmountMax = pricing.DefaultMax
	}
	c := &Cart{id: uuid.NewString(), cfg: cfg}
	c.recompute()
	return c
}

func (c *Cart) ID() string { return c.id }

// Lines returns the lines in insertion order. Callers must not splice or
// reorder the returned slice.
func (c *Cart) Lines() []*Line { return c.lines }

func (c *Cart) Totals() Totals { return c.totals }

// AddLine snapshots one configured product into a new line: unit price
// and selection summary are computed once here and frozen, so later
// catalog or configurator changes never reach an added line. The line is
// appended (insertion order is kept) and totals recompute before the
// call returns.
func (c *Cart) AddLine(p *catalog.Product, sel pricing.Selection, quantity int) (*Line, error) {
	conf := pricing.NewConfigurator(p)
	if err := conf.Validate(sel); err != nil {
		return nil, err
	}

	widget, err := pricing.NewAmountWidget(quantity, c.cfg.AmountMin, c.cfg.AmountMax)
	if err != nil {
		// Construction-time bounds failure surfaces as rejected input
		// here: the quantity came from the user, not from wiring.
		return nil, apperr.InvalidErr(
			fmt.Sprintf("quantity %d outside [%d,%d]", quantity, c.cfg.AmountMin, c.cfg.AmountMax), nil)
	}

	snapshot := sel.Clone()
	line := &Line{
		id:             uuid.NewString(),
		productID:      p.ID,
		productCode:    p.Code,
		name:           p.Name,
		unitPriceCents: conf.UnitPriceCents(snapshot),
		summary:        conf.Summary(snapshot),
		amount:         widget,
		owner:          c,
	}
	line.recompute()

	// Subscribe before exposing the line: every later quantity edit must
	// roll totals forward.
	widget.OnChange(func(int) {
		line.recompute()
		c.recompute()
	})

	c.lines = append(c.lines, line)
	c.recompute()
	return line, nil
}

// RemoveLine detaches the line with the given id.
func (c *Cart) RemoveLine(lineID string) error {
	for i, l := range c.lines {
		if l.id == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			l.owner = nil
			c.recompute()
			return nil
		}
	}
	return apperr.NotFoundErr("cart line not found")
}

// Line finds a line by id.
func (c *Cart) Line(lineID string) (*Line, bool) {
	for _, l := range c.lines {
		if l.id == lineID {
			return l, true
		}
	}
	return nil, false
}

// recompute derives Totals from the current lines. Deterministic and
// idempotent; its only effect is replacing c.totals.
func (c *Cart) recompute() {
	t := Totals{}
	for _, l := range c.lines {
		t.ItemCount += l.Quantity()
		t.SubtotalCents += l.LineTotalCents()
	}
	if t.SubtotalCents > 0 {
		t.DeliveryFeeCents = c.cfg.DeliveryFeeCents
		t.TotalCents = t.SubtotalCents + t.DeliveryFeeCents
	}
	c.totals = t
}
