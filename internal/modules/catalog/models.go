package catalog

import "time"

// Product is one orderable catalog entry. Rows are written by the seed
// tool and read once at startup; the running server never mutates them.
type Product struct {
	ID             string `gorm:"primaryKey;size:36"`
	Code           string `gorm:"size:64;uniqueIndex"` // stable key from the menu source, e.g. "margherita"
	Name           string `gorm:"size:255;not null"`
	Slug           string `gorm:"size:255;uniqueIndex"`
	Description    string `gorm:"type:text"`
	BasePriceCents int    `gorm:"not null"`
	Status         string `gorm:"size:32;not null;default:active"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Groups []OptionGroup `gorm:"foreignKey:ProductID"`
	Images []Image       `gorm:"foreignKey:ProductID"`
}

// OptionGroup is one customization group on a product ("sauce",
// "toppings"). Whether it renders as checkboxes, radios or a select is a
// frontend concern; the engine only sees sets of selected option codes.
type OptionGroup struct {
	ID        string `gorm:"primaryKey;size:36"`
	ProductID string `gorm:"size:36;index;not null"`
	Code      string `gorm:"size:64;not null"`
	Label     string `gorm:"size:255;not null"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time

	Options []Option `gorm:"foreignKey:GroupID"`
}

// Option is one selectable choice. Default options are assumed to be
// already included in the product's base price.
type Option struct {
	ID         string `gorm:"primaryKey;size:36"`
	GroupID    string `gorm:"size:36;index;not null"`
	Code       string `gorm:"size:64;not null"`
	Label      string `gorm:"size:255;not null"`
	PriceCents int    `gorm:"not null"`
	Default    bool   `gorm:"not null;default:false"`
	Position   int    `gorm:"not null;default:0"`
	// ImageKey points at a storage object shown while the option is
	// selected; empty when the option has no image variant.
	ImageKey  string `gorm:"size:255"`
	CreatedAt time.Time
}

type Image struct {
	ID         string `gorm:"primaryKey;size:36"`
	ProductID  string `gorm:"size:36;index;not null"`
	StorageKey string `gorm:"size:255;not null"`
	Position   int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

func (Product) TableName() string     { return "products" }
func (OptionGroup) TableName() string { return "product_option_groups" }
func (Option) TableName() string      { return "product_options" }
func (Image) TableName() string       { return "product_images" }
