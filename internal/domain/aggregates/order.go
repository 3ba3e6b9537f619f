package aggregates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
)

var OrderAggregateContract = Contract{
	Name:             "Sales.OrderAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes: "Owns a purchase order and its line items as one unit: referential checks on customer, " +
		"product and order, track number uniqueness, paid-order delete guard, cascade of details.",
}

// OrderAggregate owns purchase order consistency.
//
// Failures are *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeStore.
type OrderAggregate interface {
	Aggregate

	// CreateOrder inserts an order and any supplied details in one transaction.
	CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error)

	// AddOrderDetail appends one line item to a persisted order.
	AddOrderDetail(ctx context.Context, in AddOrderDetailInput) (AddOrderDetailResult, error)

	// GetByID returns the order with its details ordered by detail id.
	GetByID(ctx context.Context, orderID string) (*sales.PurchaseOrder, error)

	// Update rewrites the scalar fields and applies detail edits/appends atomically.
	Update(ctx context.Context, in UpdateOrderInput) (int64, error)

	// UpdateOrderDetail edits one line item of an order.
	UpdateOrderDetail(ctx context.Context, in UpdateOrderDetailInput) (int64, error)

	// Delete removes an unpaid order and all of its details.
	Delete(ctx context.Context, orderID string) (DeleteOrderResult, error)

	// ListAll returns every order without details.
	ListAll(ctx context.Context) ([]*sales.PurchaseOrder, error)

	// GetOrderDetails returns the details of an existing order.
	GetOrderDetails(ctx context.Context, orderID string) ([]*sales.OrderDetail, error)
}

type OrderFields struct {
	Date            string `field:"date" validate:"required,isodate"`
	CustomerID      string `field:"customer_id" validate:"required,numericid"`
	DeliveryAddress string `field:"delivery_address" validate:"required"`
	TrackNumber     string `field:"track_number" validate:"required"`
	Status          string `field:"status" validate:"required"`
}

// OrderDetailInput carries one line item. A blank DetailID means "append".
type OrderDetailInput struct {
	DetailID  string `field:"detail_id" validate:"omitempty,numericid"`
	ProductID string `field:"product_id" validate:"required,numericid"`
	Quantity  int    `field:"quantity" validate:"gt=0"`
}

type CreateOrderInput struct {
	OrderFields
	Details []OrderDetailInput `field:"order_details" validate:"dive"`
}

type CreateOrderResult struct {
	OrderID   uint
	DetailIDs []uint
}

type AddOrderDetailInput struct {
	OrderID   string `field:"order_id" validate:"required,numericid"`
	ProductID string `field:"product_id" validate:"required,numericid"`
	Quantity  int    `field:"quantity" validate:"gt=0"`
}

type AddOrderDetailResult struct {
	DetailID  uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
}

type UpdateOrderInput struct {
	OrderID string `field:"order_id" validate:"required,numericid"`
	OrderFields
	Details []OrderDetailInput `field:"order_details" validate:"dive"`
}

type UpdateOrderDetailInput struct {
	OrderID   string `field:"order_id" validate:"required,numericid"`
	DetailID  string `field:"detail_id" validate:"required,numericid"`
	ProductID string `field:"product_id" validate:"required,numericid"`
	Quantity  int    `field:"quantity" validate:"gt=0"`
}

type DeleteOrderResult struct {
	OrdersDeleted  int64
	DetailsDeleted int64
}
