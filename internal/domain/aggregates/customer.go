package aggregates

import (
	"context"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
)

var CustomerRegistryContract = Contract{
	Name:             "Sales.CustomerRegistry",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Owns customer field formats, email/phone uniqueness and the referenced-customer delete guard.",
}

// CustomerRegistry is CRUD over customers.
type CustomerRegistry interface {
	Aggregate

	Create(ctx context.Context, in CustomerInput) (*sales.Customer, error)
	GetByID(ctx context.Context, id string) (*sales.Customer, error)
	GetAll(ctx context.Context) ([]*sales.Customer, error)
	Update(ctx context.Context, id string, in CustomerInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type CustomerInput struct {
	Name    string `field:"name" validate:"required,personname"`
	Address string `field:"address" validate:"required"`
	Email   string `field:"email" validate:"required,contactemail"`
	Phone   string `field:"phone" validate:"required,phonedigits"`
}
