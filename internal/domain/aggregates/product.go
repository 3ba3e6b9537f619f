package aggregates

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
)

var ProductCatalogContract = Contract{
	Name:             "Sales.ProductCatalog",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyTableRepoQueries,
	Notes:            "Owns required product fields, non-negative stock/price, barcode uniqueness and the referenced-product delete guard.",
}

// ProductCatalog is CRUD over products.
type ProductCatalog interface {
	Aggregate

	Create(ctx context.Context, in ProductInput) (*sales.Product, error)
	GetByID(ctx context.Context, id string) (*sales.Product, error)
	GetAll(ctx context.Context) ([]*sales.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type ProductInput struct {
	Name        string          `field:"name" validate:"required"`
	Description string          `field:"description" validate:"required"`
	Stock       int             `field:"stock" validate:"gte=0"`
	Price       decimal.Decimal `field:"price" validate:"gte=0"`
	Category    string          `field:"category" validate:"required"`
	Barcode     string          `field:"barcode" validate:"required"`
	Status      string          `field:"status" validate:"required"`
}
