package sales

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;column:name" json:"name"`
	Address   string    `gorm:"size:255;not null;column:address" json:"address"`
	Email     string    `gorm:"size:255;not null;uniqueIndex;column:email" json:"email"`
	Phone     string    `gorm:"size:20;not null;uniqueIndex;column:phone" json:"phone"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
