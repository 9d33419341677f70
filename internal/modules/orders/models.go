package orders

import (
	"time"

	"gorm.io/datatypes"
)

// Order is a submitted order as persisted by the db submitter. The
// storefront never reads these back; they exist for the kitchen side.
type Order struct {
	ID               string `gorm:"primaryKey;size:36"`
	Phone            string `gorm:"size:32;not null"`
	Address          string `gorm:"size:255;not null"`
	Email            string `gorm:"size:255"`
	SubtotalCents    int    `gorm:"not null"`
	DeliveryFeeCents int    `gorm:"not null"`
	TotalCents       int    `gorm:"not null"`
	ItemCount        int    `gorm:"not null"`
	Status           string `gorm:"size:32;not null;default:received"`
	CreatedAt        time.Time
}

type OrderItem struct {
	ID             string `gorm:"primaryKey;size:36"`
	OrderID        string `gorm:"size:36;index;not null"`
	ProductID      string `gorm:"size:36;not null"`
	ProductCode    string `gorm:"size:64;not null"`
	ProductName    string `gorm:"size:255;not null"`
	Quantity       int    `gorm:"not null"`
	UnitPriceCents int    `gorm:"not null"`
	LineTotalCents int    `gorm:"not null"`
	Params         datatypes.JSON
	CreatedAt      time.Time
}

func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
