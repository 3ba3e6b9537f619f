package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/validate"
)

const (
	msgTrackTaken          = "track number already exists"
	msgCustomerMissing     = "customer does not exist"
	msgOrderNotFound       = "order not found"
	msgOrderDetailNotFound = "order detail not found"
	msgOrderPaid           = "order already paid, cannot delete"
	columnTrackNumber      = "track_number"
)

// OrderAggregateDeps lists the repos an order aggregate touches inside one transaction.
type OrderAggregateDeps struct {
	Base BaseDeps

	Customers    repos.CustomerRepo
	Products     repos.ProductRepo
	Orders       repos.PurchaseOrderRepo
	OrderDetails repos.OrderDetailRepo
	Payments     repos.PaymentRepo
}

type orderAggregate struct {
	deps OrderAggregateDeps
}

// NewOrderAggregate returns the order aggregate over deps.
func NewOrderAggregate(deps OrderAggregateDeps) domainagg.OrderAggregate {
	deps.Base = deps.Base.withDefaults()
	return &orderAggregate{deps: deps}
}

func (a *orderAggregate) Contract() domainagg.Contract {
	return domainagg.OrderAggregateContract
}

// orderFields is OrderFields after parsing.
type orderFields struct {
	date            time.Time
	customerID      uint
	deliveryAddress string
	trackNumber     string
	status          string
}

// detailLine is OrderDetailInput after parsing. detailID is zero for appends.
type detailLine struct {
	detailID  uint
	productID uint
	quantity  int
}

func trimOrderFields(f domainagg.OrderFields) domainagg.OrderFields {
	return domainagg.OrderFields{
		Date:            strings.TrimSpace(f.Date),
		CustomerID:      strings.TrimSpace(f.CustomerID),
		DeliveryAddress: strings.TrimSpace(f.DeliveryAddress),
		TrackNumber:     strings.TrimSpace(f.TrackNumber),
		Status:          strings.TrimSpace(f.Status),
	}
}

func parseOrderFields(op string, f domainagg.OrderFields) (orderFields, error) {
	date, err := validate.Date(op, "date", f.Date)
	if err != nil {
		return orderFields{}, err
	}
	customerID, err := validate.ID(op, "customer_id", f.CustomerID)
	if err != nil {
		return orderFields{}, err
	}
	return orderFields{
		date:            date,
		customerID:      customerID,
		deliveryAddress: f.DeliveryAddress,
		trackNumber:     f.TrackNumber,
		status:          f.Status,
	}, nil
}

func parseDetailLines(op string, in []domainagg.OrderDetailInput, allowIDs bool) ([]detailLine, error) {
	out := make([]detailLine, 0, len(in))
	for i, d := range in {
		if err := validate.Struct(op, d); err != nil {
			return nil, err
		}
		if !allowIDs && strings.TrimSpace(d.DetailID) != "" {
			return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("order_details[%d]: detail_id is not allowed on a new order", i), nil)
		}
		detailID, err := validate.OptionalID(op, "detail_id", d.DetailID)
		if err != nil {
			return nil, err
		}
		productID, err := validate.ID(op, "product_id", d.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, detailLine{detailID: detailID, productID: productID, quantity: d.Quantity})
	}
	return out, nil
}

func (f orderFields) updates() map[string]interface{} {
	return map[string]interface{}{
		"date":             datatypes.Date(f.date),
		"customer_id":      f.customerID,
		"delivery_address": f.deliveryAddress,
		"track_number":     f.trackNumber,
		"status":           f.status,
	}
}

func (a *orderAggregate) CreateOrder(ctx context.Context, in domainagg.CreateOrderInput) (domainagg.CreateOrderResult, error) {
	const op = "Sales.OrderAggregate.CreateOrder"
	var out domainagg.CreateOrderResult

	in.OrderFields = trimOrderFields(in.OrderFields)
	if err := validate.Struct(op, in.OrderFields); err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}
	fields, err := parseOrderFields(op, in.OrderFields)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}
	lines, err := parseDetailLines(op, in.Details, false)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireOrderRefs(dbc, fields, 0); err != nil {
			return err
		}
		order, err := a.deps.Orders.Create(dbc, &sales.PurchaseOrder{
			Date:            datatypes.Date(fields.date),
			CustomerID:      fields.customerID,
			DeliveryAddress: fields.deliveryAddress,
			TrackNumber:     fields.trackNumber,
			Status:          fields.status,
		})
		if err != nil {
			return err
		}

		rows := make([]*sales.OrderDetail, 0, len(lines))
		for _, line := range lines {
			row, err := a.snapshotLine(dbc, order.ID, line)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		rows, err = a.deps.OrderDetails.Create(dbc, rows)
		if err != nil {
			return err
		}

		out.OrderID = order.ID
		out.DetailIDs = make([]uint, 0, len(rows))
		for _, row := range rows {
			out.DetailIDs = append(out.DetailIDs, row.ID)
		}
		return nil
	})
	if err != nil {
		return domainagg.CreateOrderResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) AddOrderDetail(ctx context.Context, in domainagg.AddOrderDetailInput) (domainagg.AddOrderDetailResult, error) {
	const op = "Sales.OrderAggregate.AddOrderDetail"
	var out domainagg.AddOrderDetailResult

	if err := validate.Struct(op, in); err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}
	orderID, err := validate.ID(op, "order_id", in.OrderID)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}
	productID, err := validate.ID(op, "product_id", in.ProductID)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.deps.Orders.LockByID(dbc, orderID)
		if err != nil {
			return err
		}
		if err := RequireFound(order != nil, msgOrderNotFound); err != nil {
			return err
		}
		row, err := a.snapshotLine(dbc, orderID, detailLine{productID: productID, quantity: in.Quantity})
		if err != nil {
			return err
		}
		if _, err := a.deps.OrderDetails.Create(dbc, []*sales.OrderDetail{row}); err != nil {
			return err
		}
		out = domainagg.AddOrderDetailResult{
			DetailID:  row.ID,
			OrderID:   row.OrderID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Price:     row.Price,
		}
		return nil
	})
	if err != nil {
		return domainagg.AddOrderDetailResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) GetByID(ctx context.Context, orderID string) (*sales.PurchaseOrder, error) {
	const op = "Sales.OrderAggregate.GetByID"
	id, err := validate.ID(op, "order_id", orderID)
	if err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}

	var out *sales.PurchaseOrder
	err = executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.deps.Orders.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if err := RequireFound(order != nil, msgOrderNotFound); err != nil {
			return err
		}
		details, err := a.deps.OrderDetails.ListByOrder(dbc, id)
		if err != nil {
			return err
		}
		order.Details = details
		out = order
		return nil
	})
	return out, err
}

func (a *orderAggregate) Update(ctx context.Context, in domainagg.UpdateOrderInput) (int64, error) {
	const op = "Sales.OrderAggregate.Update"

	orderID, err := validate.ID(op, "order_id", in.OrderID)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	in.OrderFields = trimOrderFields(in.OrderFields)
	if err := validate.Struct(op, in.OrderFields); err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	fields, err := parseOrderFields(op, in.OrderFields)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	lines, err := parseDetailLines(op, in.Details, true)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	var affected int64
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireOrderRefs(dbc, fields, orderID); err != nil {
			return err
		}
		n, err := a.deps.Orders.UpdateFields(dbc, orderID, fields.updates())
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(n, msgOrderNotFound); err != nil {
			return err
		}

		var appends []*sales.OrderDetail
		for _, line := range lines {
			if line.detailID == 0 {
				row, err := a.snapshotLine(dbc, orderID, line)
				if err != nil {
					return err
				}
				appends = append(appends, row)
				continue
			}
			if err := a.rewriteLine(dbc, orderID, line); err != nil {
				return err
			}
		}
		if _, err := a.deps.OrderDetails.Create(dbc, appends); err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (a *orderAggregate) UpdateOrderDetail(ctx context.Context, in domainagg.UpdateOrderDetailInput) (int64, error) {
	const op = "Sales.OrderAggregate.UpdateOrderDetail"

	if err := validate.Struct(op, in); err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	orderID, err := validate.ID(op, "order_id", in.OrderID)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	detailID, err := validate.ID(op, "detail_id", in.DetailID)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}
	productID, err := validate.ID(op, "product_id", in.ProductID)
	if err != nil {
		return 0, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		return a.rewriteLine(dbc, orderID, detailLine{detailID: detailID, productID: productID, quantity: in.Quantity})
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (a *orderAggregate) Delete(ctx context.Context, orderID string) (domainagg.DeleteOrderResult, error) {
	const op = "Sales.OrderAggregate.Delete"
	var out domainagg.DeleteOrderResult

	id, err := validate.ID(op, "order_id", orderID)
	if err != nil {
		return out, rejectInput(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// Row lock orders this delete against a concurrent payment insert.
		if _, err := a.deps.Orders.LockByID(dbc, id); err != nil {
			return err
		}
		paid, err := a.deps.Payments.ExistsForOrder(dbc, id)
		if err != nil {
			return err
		}
		if paid {
			return ConflictError(msgOrderPaid)
		}
		details, err := a.deps.OrderDetails.DeleteByOrder(dbc, id)
		if err != nil {
			return err
		}
		orders, err := a.deps.Orders.Delete(dbc, id)
		if err != nil {
			return err
		}
		if err := RequireRowsAffected(orders, msgOrderNotFound); err != nil {
			return err
		}
		out = domainagg.DeleteOrderResult{OrdersDeleted: orders, DetailsDeleted: details}
		return nil
	})
	if err != nil {
		return domainagg.DeleteOrderResult{}, err
	}
	return out, nil
}

func (a *orderAggregate) ListAll(ctx context.Context) ([]*sales.PurchaseOrder, error) {
	const op = "Sales.OrderAggregate.ListAll"
	var out []*sales.PurchaseOrder
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Orders.List(dbc)
		out = rows
		return err
	})
	return out, err
}

func (a *orderAggregate) GetOrderDetails(ctx context.Context, orderID string) ([]*sales.OrderDetail, error) {
	const op = "Sales.OrderAggregate.GetOrderDetails"
	id, err := validate.ID(op, "order_id", orderID)
	if err != nil {
		return nil, rejectInput(a.deps.Base, op, err)
	}

	var out []*sales.OrderDetail
	err = executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		order, err := a.deps.Orders.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if err := RequireFound(order != nil, msgOrderNotFound); err != nil {
			return err
		}
		rows, err := a.deps.OrderDetails.ListByOrder(dbc, id)
		out = rows
		return err
	})
	return out, err
}

// requireOrderRefs checks track number uniqueness (excluding self) and the customer reference.
func (a *orderAggregate) requireOrderRefs(dbc dbctx.Context, f orderFields, self uint) error {
	if err := a.deps.Base.Guard.RequireUnique(dbc, tablePurchaseOrders, columnTrackNumber, f.trackNumber, self, msgTrackTaken); err != nil {
		return err
	}
	customer, err := a.deps.Customers.GetByID(dbc, f.customerID)
	if err != nil {
		return err
	}
	return RequireFound(customer != nil, msgCustomerMissing)
}

// snapshotLine resolves the product and copies its current price into a new detail row.
func (a *orderAggregate) snapshotLine(dbc dbctx.Context, orderID uint, line detailLine) (*sales.OrderDetail, error) {
	product, err := a.deps.Products.GetByID(dbc, line.productID)
	if err != nil {
		return nil, err
	}
	if err := RequireFound(product != nil, msgProductNotFound); err != nil {
		return nil, err
	}
	return &sales.OrderDetail{
		OrderID:   orderID,
		ProductID: product.ID,
		Quantity:  line.quantity,
		Price:     product.Price,
	}, nil
}

// rewriteLine replaces product, quantity and price of an existing detail of orderID.
func (a *orderAggregate) rewriteLine(dbc dbctx.Context, orderID uint, line detailLine) error {
	row, err := a.snapshotLine(dbc, orderID, line)
	if err != nil {
		return err
	}
	n, err := a.deps.OrderDetails.UpdateForOrder(dbc, line.detailID, orderID, map[string]interface{}{
		"product_id": row.ProductID,
		"quantity":   row.Quantity,
		"price":      row.Price,
	})
	if err != nil {
		return err
	}
	return RequireRowsAffected(n, msgOrderDetailNotFound)
}
