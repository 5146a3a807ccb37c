package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is one invoice: a customer, an issue date and a set of line items.
// TotalAmount is always recomputed from the items server-side; a value sent
// by a client is never persisted verbatim.
type Bill struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerName string          `gorm:"size:150;not null" json:"customerName"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Items        []Item          `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Item is one line of a bill. Price is the unit price; the line subtotal is
// Price * Quantity. An item belongs to exactly one bill and is removed with it
// (FK cascade, not application logic).
type Item struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	BillID   uint            `gorm:"not null;index" json:"billId"`
	Name     string          `gorm:"size:150;not null" json:"name"`
	Quantity int             `gorm:"not null;default:1" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// ComputeTotal sums price * quantity over the given items. This is the single
// authoritative total used by every write path. A stored quantity of 0
// contributes nothing; defaulting of absent quantities to 1 happens before
// items reach the model layer.
func ComputeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
