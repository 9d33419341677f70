package pricing

import (
	"fmt"

	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/shared/apperr"
)

// Selection is the set of chosen option codes per group code for one
// configured product instance.
type Selection map[string]map[string]bool

// Pick marks an option as selected.
func (s Selection) Pick(group, option string) {
	set, ok := s[group]
	if !ok {
		set = map[string]bool{}
		s[group] = set
	}
	set[option] = true
}

// Drop unmarks an option.
func (s Selection) Drop(group, option string) {
	if set, ok := s[group]; ok {
		delete(set, option)
	}
}

func (s Selection) Has(group, option string) bool {
	return s[group][option]
}

// Clone returns an independent copy; cart lines snapshot selections so
// later widget edits cannot reach into them.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for g, set := range s {
		cp := make(map[string]bool, len(set))
		for o, v := range set {
			if v {
				cp[o] = true
			}
		}
		out[g] = cp
	}
	return out
}

// DefaultSelection seeds a selection from each option's Default flag.
// Seeding from an empty set instead would misprice a fresh product: the
// pricing rule subtracts default options that are not selected, so the
// initial selection has to mirror the form's default-checked state.
func DefaultSelection(p *catalog.Product) Selection {
	sel := make(Selection, len(p.Groups))
	for gi := range p.Groups {
		g := &p.Groups[gi]
		set := map[string]bool{}
		for oi := range g.Options {
			if g.Options[oi].Default {
				set[g.Options[oi].Code] = true
			}
		}
		sel[g.Code] = set
	}
	return sel
}

// GroupSummary is the per-group slice of a line's selection summary:
// the group label plus the labels of its chosen options, catalog order.
type GroupSummary struct {
	Group   string   `json:"group"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Configurator computes prices and summaries for one catalog product.
// Pure; callers trigger recomputation on widget or selection changes.
type Configurator struct {
	product *catalog.Product
}

func NewConfigurator(p *catalog.Product) *Configurator {
	return &Configurator{product: p}
}

func (c *Configurator) Product() *catalog.Product { return c.product }

// Validate rejects selections referencing groups or options the product
// does not declare. Runs before any price computation so the arithmetic
// below never sees invalid input.
func (c *Configurator) Validate(sel Selection) error {
	for groupCode, set := range sel {
		g, ok := c.product.Group(groupCode)
		if !ok {
			return apperr.InvalidErr(
				fmt.Sprintf("unknown option group %q for product %q", groupCode, c.product.Code), nil)
		}
		for optCode, picked := range set {
			if !picked {
				continue
			}
			if _, ok := g.Option(optCode); !ok {
				return apperr.InvalidErr(
					fmt.Sprintf("unknown option %q in group %q for product %q", optCode, groupCode, c.product.Code), nil)
			}
		}
	}
	return nil
}

// UnitPriceCents prices one unit under the given selection. Starting
// from the base price, a default option that is not selected subtracts
// its price and a non-default option that is selected adds its price;
// default+selected and non-default+unselected contribute nothing, since
// default options are already included in the base price. Every option
// of every group is visited.
func (c *Configurator) UnitPriceCents(sel Selection) int {
	price := c.product.BasePriceCents

	for gi := range c.product.Groups {
		g := &c.product.Groups[gi]
		for oi := range g.Options {
			o := &g.Options[oi]
			selected := sel.Has(g.Code, o.Code)

			if !selected && o.Default {
				price -= o.PriceCents
			} else if selected && !o.Default {
				price += o.PriceCents
			}
		}
	}
	return price
}

// DisplayPriceCents is the unit price times the widget amount.
func (c *Configurator) DisplayPriceCents(sel Selection, quantity int) int {
	return c.UnitPriceCents(sel) * quantity
}

// Summary lists the chosen option labels per group, in catalog order.
// Unselected options are omitted entirely, default or not; groups with
// nothing selected are omitted too.
func (c *Configurator) Summary(sel Selection) []GroupSummary {
	out := make([]GroupSummary, 0, len(c.product.Groups))
	for gi := range c.product.Groups {
		g := &c.product.Groups[gi]

		var chosen []string
		for oi := range g.Options {
			if sel.Has(g.Code, g.Options[oi].Code) {
				chosen = append(chosen, g.Options[oi].Label)
			}
		}
		if len(chosen) == 0 {
			continue
		}
		out = append(out, GroupSummary{Group: g.Code, Label: g.Label, Options: chosen})
	}
	return out
}
