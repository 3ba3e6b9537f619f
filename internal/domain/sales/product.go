package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:255;not null;column:name" json:"name"`
	Description string          `gorm:"type:text;not null;column:description" json:"description"`
	Stock       int             `gorm:"not null;default:0;check:chk_products_stock,stock >= 0;column:stock" json:"stock"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_products_price,price >= 0;column:price" json:"price"`
	Category    string          `gorm:"size:100;not null;column:category" json:"category"`
	Barcode     string          `gorm:"size:100;not null;uniqueIndex;column:barcode" json:"barcode"`
	Status      string          `gorm:"size:50;not null;column:status" json:"status"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
