package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const (
	msgProductNotFound          = "product not found"
	msgBarcodeTaken             = "barcode already exists"
	msgProductReferenced        = "product is used by order details, cannot delete"
	tableProducts               = "products"
	tableOrderDetails           = "order_details"
	columnDetailProductID       = "product_id"
	moneyScale            int32 = 2
)

// ProductCatalogDeps carries the product repo the catalog writes through.
type ProductCatalogDeps struct {
	Base BaseDeps

	Products repos.ProductRepo
}

type productCatalog struct {
	deps ProductCatalogDeps
}

// NewProductCatalog returns the product catalog over deps.
func NewProductCatalog(deps ProductCatalogDeps) domainagg.ProductCatalog {
	deps.Base = deps.Base.withDefaults()
	return &productCatalog{deps: deps}
}

func (a *productCatalog) Contract() domainagg.Contract {
	return domainagg.ProductCatalogContract
}

func normalizeProduct(in domainagg.ProductInput) domainagg.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

func validateProduct(op string, in domainagg.ProductInput) error {
	if err := validate.Struct(op, in); err != nil {
		return err
	}
	return requireMoneyScale(op, "price", in.Price)
}

// requireMoneyScale rejects amounts the decimal(10,2) columns would silently round.
func requireMoneyScale(op, field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("%s must have at most %d decimal places", field, moneyScale), nil)
	}
	return nil
}

func (a *productCatalog) Create(ctx context.Context, in domainagg.ProductInput) (*sales.Product, error) {
	const op = "Sales.ProductCatalog.Create"
	in = normalizeProduct(in)
	if err := validateProduct(op, in); err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}

	var out *sales.Product
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.deps.Base.Guard.RequireUnique(dbc, tableProducts, "barcode", in.Barcode, 0, msgBarcodeTaken); err != nil {
			return err
		}
		row, err := a.deps.Products.Create(dbc, &sales.Product{
			Name:        in.Name,
			Description: in.Description,
			Stock:       in.Stock,
			Price:       in.Price,
			Category:    in.Category,
			Barcode:     in.Barcode,
			Status:      in.Status,
		})
		if err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

func (a *productCatalog) GetByID(ctx context.Context, id string) (*sales.Product, error) {
	const op = "Sales.ProductCatalog.GetByID"
	productID, err := validate.ID(op, "product_id", id)
	if err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}
	var out *sales.Product
	err = executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Products.GetByID(dbc, productID)
		if err != nil {
			return err
		}
		if err := RequireFound(row != nil, msgProductNotFound); err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

func (a *productCatalog) GetAll(ctx context.Context) ([]*sales.Product, error) {
	const op = "Sales.ProductCatalog.GetAll"
	var out []*sales.Product
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Products.List(dbc)
		out = rows
		return err
	})
	return out, err
}

func (a *productCatalog) Update(ctx context.Context, id string, in domainagg.ProductInput) (int64, error) {
	const op = "Sales.ProductCatalog.Update"
	productID, err := validate.ID(op, "product_id", id)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	in = normalizeProduct(in)
	if err := validateProduct(op, in); err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.deps.Base.Guard.RequireUnique(dbc, tableProducts, "barcode", in.Barcode, productID, msgBarcodeTaken); err != nil {
			return err
		}
		n, err := a.deps.Products.UpdateFields(dbc, productID, map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
			"stock":       in.Stock,
			"price":       in.Price,
			"category":    in.Category,
			"barcode":     in.Barcode,
			"status":      in.Status,
		})
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgProductNotFound); err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}

func (a *productCatalog) Delete(ctx context.Context, id string) (int64, error) {
	const op = "Sales.ProductCatalog.Delete"
	productID, err := validate.ID(op, "product_id", id)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.deps.Base.Guard.RequireUnreferenced(dbc, tableOrderDetails, columnDetailProductID, productID, msgProductReferenced); err != nil {
			return err
		}
		n, err := a.deps.Products.Delete(dbc, productID)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgProductNotFound); err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}
