package view

import (
	"github.com/MarceliJankowski/pizza-project/internal/modules/catalog"
	"github.com/MarceliJankowski/pizza-project/internal/storage"
)

type Option struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	PriceCents int    `json:"priceCents"`
	Default    bool   `json:"default"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

type OptionGroup struct {
	Code    string   `json:"code"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}

type Product struct {
	ID             string        `json:"id"`
	Code           string        `json:"code"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	Description    string        `json:"description,omitempty"`
	BasePriceCents int           `json:"basePriceCents"`
	Groups         []OptionGroup `json:"groups"`
	ImageURLs      []string      `json:"imageUrls,omitempty"`
	// DefaultPriceCents is the unit price under the default selection;
	// it matches the listed base price when defaults are priced in.
	DefaultPriceCents int `json:"defaultPriceCents"`
}

// MapProduct flattens a catalog product for the API, resolving image
// keys through storage. defaultPrice is computed by the caller so this
// package stays free of pricing logic.
func MapProduct(p *catalog.Product, st storage.Storage, defaultPriceCents int) Product {
	out := Product{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		BasePriceCents:    p.BasePriceCents,
		Groups:            make([]OptionGroup, 0, len(p.Groups)),
		DefaultPriceCents: defaultPriceCents,
	}

	for gi := range p.Groups {
		g := &p.Groups[gi]
		vg := OptionGroup{Code: g.Code, Label: g.Label, Options: make([]Option, 0, len(g.Options))}
		for oi := range g.Options {
			o := &g.Options[oi]
			vo := Option{
				Code:       o.Code,
				Label:      o.Label,
				PriceCents: o.PriceCents,
				Default:    o.Default,
			}
			if st != nil && o.ImageKey != "" {
				vo.ImageURL = st.URL(o.ImageKey)
			}
			vg.Options = append(vg.Options, vo)
		}
		out.Groups = append(out.Groups, vg)
	}

	for ii := range p.Images {
		if st != nil {
			out.ImageURLs = append(out.ImageURLs, st.URL(p.Images[ii].StorageKey))
		}
	}
	return out
}
