package sales

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Payment struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Date          datatypes.Date  `gorm:"not null;column:date" json:"date"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_payments_amount,amount > 0;column:amount" json:"amount"`
	PaymentMethod string          `gorm:"size:50;not null;column:payment_method" json:"payment_method"`
	OrderID       uint            `gorm:"not null;index;column:order_id" json:"order_id"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
