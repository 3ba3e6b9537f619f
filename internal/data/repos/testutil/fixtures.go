package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
)

func SeedCustomer(tb testing.TB, ctx context.Context, tx *gorm.DB, email, phone string) *types.Customer {
	tb.Helper()
	c := &types.Customer{
		Name:    "Ada Lovelace",
		Address: "1 Mill Ln",
		Email:   email,
		Phone:   phone,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, barcode, price string) *types.Product {
	tb.Helper()
	p := &types.Product{
		Name:        "Widget",
		Description: "A widget",
		Stock:       10,
		Price:       decimal.RequireFromString(price),
		Category:    "tools",
		Barcode:     barcode,
		Status:      "available",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, customerID uint, trackNumber string) *types.PurchaseOrder {
	tb.Helper()
	o := &types.PurchaseOrder{
		Date:            datatypes.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		CustomerID:      customerID,
		DeliveryAddress: "1 Mill Ln",
		TrackNumber:     trackNumber,
		Status:          "pending",
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}

func SeedOrderDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, orderID, productID uint, quantity int, price string) *types.OrderDetail {
	tb.Helper()
	d := &types.OrderDetail{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed order detail: %v", err)
	}
	return d
}

func SeedPayment(tb testing.TB, ctx context.Context, tx *gorm.DB, orderID uint, amount string) *types.Payment {
	tb.Helper()
	p := &types.Payment{
		Date:          datatypes.Date(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)),
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: "card",
		OrderID:       orderID,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed payment: %v", err)
	}
	return p
}

// IDString formats an id the way the shell passes it.
func IDString(id uint) string {
	return fmt.Sprintf("%d", id)
}
