package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const msgPaymentNotFound = "payment not found"

// PaymentLedgerDeps carries the repos a payment write reads and locks.
type PaymentLedgerDeps struct {
	Base BaseDeps

	Orders   repos.PurchaseOrderRepo
	Payments repos.PaymentRepo
}

type paymentLedger struct {
	deps PaymentLedgerDeps
}

// NewPaymentLedger returns the payment ledger over deps.
func NewPaymentLedger(deps PaymentLedgerDeps) domainagg.PaymentLedger {
	deps.Base = deps.Base.withDefaults()
	return &paymentLedger{deps: deps}
}

func (a *paymentLedger) Contract() domainagg.Contract {
	return domainagg.PaymentLedgerContract
}

type paymentFields struct {
	date    time.Time
	orderID uint
	in      domainagg.PaymentInput
}

func parsePayment(op string, in domainagg.PaymentInput) (paymentFields, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.OrderID = strings.TrimSpace(in.OrderID)
	if err := validate.Struct(op, in); err != nil {
		return paymentFields{}, err
	}
	if err := requireMoneyScale(op, "amount", in.Amount); err != nil {
		return paymentFields{}, err
	}
	date, err := validate.Date(op, "date", in.Date)
	if err != nil {
		return paymentFields{}, err
	}
	orderID, err := validate.ID(op, "order_id", in.OrderID)
	if err != nil {
		return paymentFields{}, err
	}
	return paymentFields{date: date, orderID: orderID, in: in}, nil
}

// requireOrder locks the referenced order so a concurrent order delete cannot interleave.
func (a *paymentLedger) requireOrder(dbc dbctx.Context, orderID uint) error {
	order, err := a.deps.Orders.LockByID(dbc, orderID)
	if err != nil {
		return err
	}
	return RequireFound(order != nil, msgOrderNotFound)
}

func (a *paymentLedger) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	const op = "Sales.PaymentLedger.ExistsForOrder"
	id, err := validate.ID(op, "order_id", orderID)
	if err != nil {
		return false, rejectInput(a.deps.Base, op, err)
	}
	var exists bool
	err = executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ok, err := a.deps.Payments.ExistsForOrder(dbc, id)
		exists = ok
		return err
	})
	return exists, err
}

func (a *paymentLedger) Create(ctx context.Context, in domainagg.PaymentInput) (*sales.Payment, error) {
	const op = "Sales.PaymentLedger.Create"
	p, err := parsePayment(op, in)
	if err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}

	var out *sales.Payment
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireOrder(dbc, p.orderID); err != nil {
			return err
		}
		row, err := a.deps.Payments.Create(dbc, &sales.Payment{
			Date:          datatypes.Date(p.date),
			Amount:        p.in.Amount,
			PaymentMethod: p.in.PaymentMethod,
			OrderID:       p.orderID,
		})
		if err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

func (a *paymentLedger) GetByID(ctx context.Context, id string) (*sales.Payment, error) {
	const op = "Sales.PaymentLedger.GetByID"
	paymentID, err := validate.ID(op, "payment_id", id)
	if err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}
	var out *sales.Payment
	err = executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		row, err := a.deps.Payments.GetByID(dbc, paymentID)
		if err != nil {
			return err
		}
		if err := RequireFound(row != nil, msgPaymentNotFound); err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

func (a *paymentLedger) GetAll(ctx context.Context) ([]*sales.Payment, error) {
	const op = "Sales.PaymentLedger.GetAll"
	var out []*sales.Payment
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Payments.List(dbc)
		out = rows
		return err
	})
	return out, err
}

func (a *paymentLedger) Update(ctx context.Context, id string, in domainagg.PaymentInput) (int64, error) {
	const op = "Sales.PaymentLedger.Update"
	paymentID, err := validate.ID(op, "payment_id", id)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	p, err := parsePayment(op, in)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireOrder(dbc, p.orderID); err != nil {
			return err
		}
		n, err := a.deps.Payments.UpdateFields(dbc, paymentID, map[string]interface{}{
			"date":           datatypes.Date(p.date),
			"amount":         p.in.Amount,
			"payment_method": p.in.PaymentMethod,
			"order_id":       p.orderID,
		})
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgPaymentNotFound); err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}

func (a *paymentLedger) Delete(ctx context.Context, id string) (int64, error) {
	const op = "Sales.PaymentLedger.Delete"
	paymentID, err := validate.ID(op, "payment_id", id)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		n, err := a.deps.Payments.Delete(dbc, paymentID)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgPaymentNotFound); err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}
