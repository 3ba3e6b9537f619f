package sales

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PurchaseOrder owns its OrderDetail rows. Details are only populated by
// reads that hydrate the aggregate; list reads leave them empty.
type PurchaseOrder struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Date            datatypes.Date `gorm:"not null;column:date" json:"date"`
	CustomerID      uint           `gorm:"not null;index;column:customer_id" json:"customer_id"`
	DeliveryAddress string         `gorm:"size:255;not null;column:delivery_address" json:"delivery_address"`
	TrackNumber     string         `gorm:"size:100;not null;uniqueIndex;column:track_number" json:"track_number"`
	Status          string         `gorm:"size:50;not null;column:status" json:"status"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`

	Details []*OrderDetail `gorm:"-" json:"order_details,omitempty"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// OrderDetail is a line item. Price is the product price captured when the
// line was written; later product price changes never reach it. Only an
// explicit edit of the line takes a fresh snapshot.
type OrderDetail struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"not null;index;column:order_id" json:"order_id"`
	ProductID uint            `gorm:"not null;index;column:product_id" json:"product_id"`
	Quantity  int             `gorm:"not null;check:chk_order_details_quantity,quantity > 0;column:quantity" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;column:price" json:"price"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (OrderDetail) TableName() string { return "order_details" }

// LineTotal is quantity times the snapshot price.
func (d *OrderDetail) LineTotal() decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// Total sums the hydrated details.
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	if o == nil {
		return total
	}
	for _, d := range o.Details {
		total = total.Add(d.LineTotal())
	}
	return total
}
