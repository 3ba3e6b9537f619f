package aggregates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
)

var PaymentLedgerContract = Contract{
	Name:             "Sales.PaymentLedger",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Records payments against existing orders; its existence query backs the paid-order delete guard.",
}

// PaymentLedger records payments against orders.
type PaymentLedger interface {
	Aggregate

	// ExistsForOrder reports whether any payment references the order.
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)

	Create(ctx context.Context, in PaymentInput) (*sales.Payment, error)
	GetByID(ctx context.Context, id string) (*sales.Payment, error)
	GetAll(ctx context.Context) ([]*sales.Payment, error)
	Update(ctx context.Context, id string, in PaymentInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type PaymentInput struct {
	Date          string          `field:"date" validate:"required,isodate"`
	Amount        decimal.Decimal `field:"amount" validate:"gt=0"`
	PaymentMethod string          `field:"payment_method" validate:"required"`
	OrderID       string          `field:"order_id" validate:"required,numericid"`
}
