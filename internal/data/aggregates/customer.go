package aggregates

import (
	"context"
	"strings"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const (
	msgCustomerNotFound   = "customer not found"
	msgEmailTaken         = "email already exists"
	msgPhoneTaken         = "phone number already exists"
	msgCustomerHasOrders  = "customer has orders, cannot delete"
	tableCustomers        = "customers"
	tablePurchaseOrders   = "purchase_orders"
	columnOrderCustomerID = "customer_id"
)

// CustomerRegistryDeps carries the customer repo the registry writes through.
type CustomerRegistryDeps struct {
	Base BaseDeps

	Customers repos.CustomerRepo
}

type customerRegistry struct {
	deps CustomerRegistryDeps
}

// NewCustomerRegistry returns the customer registry over deps.
func NewCustomerRegistry(deps CustomerRegistryDeps) domainagg.CustomerRegistry {
	deps.Base = deps.Base.withDefaults()
	return &customerRegistry{deps: deps}
}

func (a *customerRegistry) Contract() domainagg.Contract {
	return domainagg.CustomerRegistryContract
}

func normalizeCustomer(in domainagg.CustomerInput) domainagg.CustomerInput {
	return domainagg.CustomerInput{
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:   strings.TrimSpace(in.Phone),
	}
}

func (a *customerRegistry) Create(ctx context.Context, in domainagg.CustomerInput) (*sales.Customer, error) {
	const op = "Sales.CustomerRegistry.Create"
	in = normalizeCustomer(in)
	if err := validate.Struct(op, in); err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}

	var out *sales.Customer
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireContactsFree(dbc, in, 0); err != nil {
			return err
		}
		row, err := a.deps.Customers.Create(dbc, &sales.Customer{
			Name:    in.Name,
			Address: in.Address,
			Email:   in.Email,
			Phone:   in.Phone,
		})
		if err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

func (a *customerRegistry) GetByID(ctx context.Context, id string) (*sales.Customer, error) {
	const op = "Sales.CustomerRegistry.GetByID"
	customerID, err := validate.ID(op, "customer_id", id)
	if err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}
	var out *sales.Customer
	err = executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Customers.GetByID(dbc, customerID)
		if err != nil {
			return err
		}
		if err := RequireFound(row != nil, msgCustomerNotFound); err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

func (a *customerRegistry) GetAll(ctx context.Context) ([]*sales.Customer, error) {
	const op = "Sales.CustomerRegistry.GetAll"
	var out []*sales.Customer
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Customers.List(dbc)
		out = rows
		return err
	})
	return out, err
}

func (a *customerRegistry) Update(ctx context.Context, id string, in domainagg.CustomerInput) (int64, error) {
	const op = "Sales.CustomerRegistry.Update"
	customerID, err := validate.ID(op, "customer_id", id)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	in = normalizeCustomer(in)
	if err := validate.Struct(op, in); err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireContactsFree(dbc, in, customerID); err != nil {
			return err
		}
		n, err := a.deps.Customers.UpdateFields(dbc, customerID, map[string]interface{}{
			"name":    in.Name,
			"address": in.Address,
			"email":   in.Email,
			"phone":   in.Phone,
		})
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgCustomerNotFound); err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}

func (a *customerRegistry) Delete(ctx context.Context, id string) (int64, error) {
	const op = "Sales.CustomerRegistry.Delete"
	customerID, err := validate.ID(op, "customer_id", id)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.deps.Base.Guard.RequireUnreferenced(dbc, tablePurchaseOrders, columnOrderCustomerID, customerID, msgCustomerHasOrders); err != nil {
			return err
		}
		n, err := a.deps.Customers.Delete(dbc, customerID)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgCustomerNotFound); err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}

func (a *customerRegistry) requireContactsFree(dbc dbctx.Context, in domainagg.CustomerInput, self uint) error {
	if err := a.deps.Base.Guard.RequireUnique(dbc, tableCustomers, "email", in.Email, self, msgEmailTaken); err != nil {
		return err
	}
	return a.deps.Base.Guard.RequireUnique(dbc, tableCustomers, "phone", in.Phone, self, msgPhoneTaken)
}
