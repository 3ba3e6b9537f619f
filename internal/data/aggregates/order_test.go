package aggregates_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/aggregates"
	aggtest "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/aggregates/testutil"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	repotest "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos/testutil"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
)

func TestOrderAggregateLifecycleScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	customer, err := h.customers.Create(ctx, domainagg.CustomerInput{
		Name:    "Ada Lovelace",
		Address: "1 Mill Ln",
		Email:   "ada@example.com",
		Phone:   "5551234",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if customer.ID != 1 {
		t.Fatalf("customer id: want=1 got=%d", customer.ID)
	}
	product, err := h.products.Create(ctx, domainagg.ProductInput{
		Name:        "Widget",
		Description: "A widget",
		Stock:       10,
		Price:       decimal.RequireFromString("9.99"),
		Category:    "tools",
		Barcode:     "W-1",
		Status:      "available",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.ID != 1 {
		t.Fatalf("product id: want=1 got=%d", product.ID)
	}

	created, err := h.orders.CreateOrder(ctx, domainagg.CreateOrderInput{OrderFields: orderFields(customer.ID, "T-1")})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if created.OrderID != 1 {
		t.Fatalf("order id: want=1 got=%d", created.OrderID)
	}

	detail, err := h.orders.AddOrderDetail(ctx, domainagg.AddOrderDetailInput{OrderID: "1", ProductID: "1", Quantity: 2})
	if err != nil {
		t.Fatalf("add detail: %v", err)
	}
	if !detail.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("detail price: want=9.99 got=%s", detail.Price)
	}

	res, err := h.orders.Delete(ctx, "1")
	if err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if res.OrdersDeleted != 1 || res.DetailsDeleted != 1 {
		t.Fatalf("delete result: %+v", res)
	}
	if n := repotest.Count(t, h.db, &sales.PurchaseOrder{}, ""); n != 0 {
		t.Fatalf("orders left: %d", n)
	}
	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, ""); n != 0 {
		t.Fatalf("details left: %d", n)
	}
	if n := repotest.Count(t, h.db, &sales.Customer{}, ""); n != 1 {
		t.Fatalf("customer must remain, got %d", n)
	}
	if n := repotest.Count(t, h.db, &sales.Product{}, ""); n != 1 {
		t.Fatalf("product must remain, got %d", n)
	}
}

func TestCreateOrderRejectsUnknownCustomer(t *testing.T) {
	h := newHarness(t)
	_, err := h.orders.CreateOrder(context.Background(), domainagg.CreateOrderInput{OrderFields: orderFields(42, "T-1")})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "customer does not exist")
	if n := repotest.Count(t, h.db, &sales.PurchaseOrder{}, ""); n != 0 {
		t.Fatalf("orders written: %d", n)
	}
}

func TestTrackNumberUniqueness(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")

	a, err := h.orders.CreateOrder(ctx, domainagg.CreateOrderInput{OrderFields: orderFields(c.ID, "T-A")})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := h.orders.CreateOrder(ctx, domainagg.CreateOrderInput{OrderFields: orderFields(c.ID, "T-B")}); err != nil {
		t.Fatalf("create B: %v", err)
	}

	_, err = h.orders.CreateOrder(ctx, domainagg.CreateOrderInput{OrderFields: orderFields(c.ID, "T-A")})
	requireCode(t, err, domainagg.CodeConflict)
	requireMessage(t, err, "track number already exists")

	_, err = h.orders.Update(ctx, domainagg.UpdateOrderInput{OrderID: repotest.IDString(a.OrderID), OrderFields: orderFields(c.ID, "T-B")})
	requireCode(t, err, domainagg.CodeConflict)

	fields := orderFields(c.ID, "T-A")
	fields.Status = "shipped"
	n, err := h.orders.Update(ctx, domainagg.UpdateOrderInput{OrderID: repotest.IDString(a.OrderID), OrderFields: fields})
	if err != nil {
		t.Fatalf("update with own track number: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows affected: want=1 got=%d", n)
	}
	got, err := h.orders.GetByID(ctx, repotest.IDString(a.OrderID))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "shipped" {
		t.Fatalf("status not updated: %q", got.Status)
	}
	if len(h.hooks.Conflicts) != 2 {
		t.Fatalf("conflict hooks: %+v", h.hooks.Conflicts)
	}
}

func TestDeletePaidOrderIsRefused(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")
	p := repotest.SeedProduct(t, ctx, h.db, "W-1", "9.99")
	o := repotest.SeedOrder(t, ctx, h.db, c.ID, "T-1")
	repotest.SeedOrderDetail(t, ctx, h.db, o.ID, p.ID, 2, "9.99")
	repotest.SeedPayment(t, ctx, h.db, o.ID, "19.98")

	_, err := h.orders.Delete(ctx, repotest.IDString(o.ID))
	requireCode(t, err, domainagg.CodeConflict)
	requireMessage(t, err, "order already paid, cannot delete")

	if n := repotest.Count(t, h.db, &sales.PurchaseOrder{}, "id = ?", o.ID); n != 1 {
		t.Fatalf("order removed: %d", n)
	}
	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, "order_id = ?", o.ID); n != 1 {
		t.Fatalf("details removed: %d", n)
	}
	if n := repotest.Count(t, h.db, &sales.Payment{}, "order_id = ?", o.ID); n != 1 {
		t.Fatalf("payment removed: %d", n)
	}
}

func seedOrderWithDetails(t *testing.T, h *harness, n int) (*sales.PurchaseOrder, *sales.Product) {
	t.Helper()
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")
	p := repotest.SeedProduct(t, ctx, h.db, "W-1", "9.99")
	o := repotest.SeedOrder(t, ctx, h.db, c.ID, "T-1")
	for i := 0; i < n; i++ {
		repotest.SeedOrderDetail(t, ctx, h.db, o.ID, p.ID, i+1, "9.99")
	}
	return o, p
}

func TestDeleteCascadesDetails(t *testing.T) {
	h := newHarness(t)
	o, _ := seedOrderWithDetails(t, h, 3)

	res, err := h.orders.Delete(context.Background(), repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if res.OrdersDeleted != 1 || res.DetailsDeleted != 3 {
		t.Fatalf("delete result: %+v", res)
	}
	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, ""); n != 0 {
		t.Fatalf("details left: %d", n)
	}
}

func TestDeleteMissingOrder(t *testing.T) {
	h := newHarness(t)
	_, err := h.orders.Delete(context.Background(), "99")
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "order not found")
}

func TestDeleteRollsBackOnInjectedCommitFailure(t *testing.T) {
	h := newHarness(t)
	o, _ := seedOrderWithDetails(t, h, 2)

	runner := &aggtest.InjectedTxRunner{
		Inner:      aggregates.NewGormTxRunner(h.db),
		FailCommit: errors.New("injected commit failure"),
	}
	base := h.base
	base.Runner = runner
	h.wire(base, h.repos)

	_, err := h.orders.Delete(context.Background(), repotest.IDString(o.ID))
	requireCode(t, err, domainagg.CodeStore)
	requireMessage(t, err, domainagg.GenericStoreMessage)
	if runner.RollbackCalls != 1 || runner.CommitCalls != 0 {
		t.Fatalf("runner counters commit=%d rollback=%d", runner.CommitCalls, runner.RollbackCalls)
	}
	if n := repotest.Count(t, h.db, &sales.PurchaseOrder{}, ""); n != 1 {
		t.Fatalf("order rows: want=1 got=%d", n)
	}
	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, ""); n != 2 {
		t.Fatalf("detail rows: want=2 got=%d", n)
	}
}

type failingOrderRepo struct {
	repos.PurchaseOrderRepo
	err error
}

func (f failingOrderRepo) Delete(dbctx.Context, uint) (int64, error) { return 0, f.err }

func TestDeleteRollsBackDetailsWhenOrderDeleteFails(t *testing.T) {
	h := newHarness(t)
	o, _ := seedOrderWithDetails(t, h, 2)

	set := h.repos
	set.Orders = failingOrderRepo{PurchaseOrderRepo: h.repos.Orders, err: errors.New("connection reset by peer")}
	h.wire(h.base, set)

	_, err := h.orders.Delete(context.Background(), repotest.IDString(o.ID))
	requireCode(t, err, domainagg.CodeStore)
	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, "order_id = ?", o.ID); n != 2 {
		t.Fatalf("details deleted outside the transaction: %d left", n)
	}
}

func TestAddOrderDetailSnapshotsPrice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")
	p := repotest.SeedProduct(t, ctx, h.db, "W-1", "9.99")
	o := repotest.SeedOrder(t, ctx, h.db, c.ID, "T-1")

	added, err := h.orders.AddOrderDetail(ctx, domainagg.AddOrderDetailInput{
		OrderID:   repotest.IDString(o.ID),
		ProductID: repotest.IDString(p.ID),
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("add detail: %v", err)
	}

	_, err = h.products.Update(ctx, repotest.IDString(p.ID), domainagg.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       decimal.RequireFromString("12.50"),
		Category:    p.Category,
		Barcode:     p.Barcode,
		Status:      p.Status,
	})
	if err != nil {
		t.Fatalf("update product price: %v", err)
	}

	details, err := h.orders.GetOrderDetails(ctx, repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details) != 1 || details[0].ID != added.DetailID {
		t.Fatalf("unexpected details: %+v", details)
	}
	if !details[0].Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("snapshot price changed: %s", details[0].Price)
	}
}

func TestAddOrderDetailChecksReferences(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")
	p := repotest.SeedProduct(t, ctx, h.db, "W-1", "9.99")
	o := repotest.SeedOrder(t, ctx, h.db, c.ID, "T-1")

	_, err := h.orders.AddOrderDetail(ctx, domainagg.AddOrderDetailInput{OrderID: "404", ProductID: repotest.IDString(p.ID), Quantity: 1})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "order not found")

	_, err = h.orders.AddOrderDetail(ctx, domainagg.AddOrderDetailInput{OrderID: repotest.IDString(o.ID), ProductID: "404", Quantity: 1})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "product not found")

	_, err = h.orders.AddOrderDetail(ctx, domainagg.AddOrderDetailInput{OrderID: repotest.IDString(o.ID), ProductID: repotest.IDString(p.ID), Quantity: 0})
	requireCode(t, err, domainagg.CodeValidation)

	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, ""); n != 0 {
		t.Fatalf("detail rows written: %d", n)
	}
}

func TestGetByIDIsRepeatable(t *testing.T) {
	h := newHarness(t)
	o, _ := seedOrderWithDetails(t, h, 3)
	id := repotest.IDString(o.ID)

	first, err := h.orders.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := h.orders.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reads differ:\n%+v\n%+v", first, second)
	}
	if len(first.Details) != 3 {
		t.Fatalf("details: want=3 got=%d", len(first.Details))
	}
	for i := 1; i < len(first.Details); i++ {
		if first.Details[i-1].ID >= first.Details[i].ID {
			t.Fatalf("details not ordered by id: %d then %d", first.Details[i-1].ID, first.Details[i].ID)
		}
	}
}

func TestGetByIDValidatesBeforeQuerying(t *testing.T) {
	h := newHarness(t)
	for _, raw := range []string{"abc", "", "-1", "0"} {
		_, err := h.orders.GetByID(context.Background(), raw)
		requireCode(t, err, domainagg.CodeValidation)
	}
	_, err := h.orders.GetByID(context.Background(), "7")
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestCreateOrderWithDetailsIsAtomic(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")
	p := repotest.SeedProduct(t, ctx, h.db, "W-1", "4.50")

	res, err := h.orders.CreateOrder(ctx, domainagg.CreateOrderInput{
		OrderFields: orderFields(c.ID, "T-1"),
		Details: []domainagg.OrderDetailInput{
			{ProductID: repotest.IDString(p.ID), Quantity: 1},
			{ProductID: repotest.IDString(p.ID), Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("create with details: %v", err)
	}
	if len(res.DetailIDs) != 2 {
		t.Fatalf("detail ids: %+v", res.DetailIDs)
	}
	order, err := h.orders.GetByID(ctx, repotest.IDString(res.OrderID))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !order.Total().Equal(decimal.RequireFromString("22.50")) {
		t.Fatalf("total: %s", order.Total())
	}

	_, err = h.orders.CreateOrder(ctx, domainagg.CreateOrderInput{
		OrderFields: orderFields(c.ID, "T-2"),
		Details: []domainagg.OrderDetailInput{
			{ProductID: repotest.IDString(p.ID), Quantity: 1},
			{ProductID: "999", Quantity: 1},
		},
	})
	requireCode(t, err, domainagg.CodeNotFound)
	if n := repotest.Count(t, h.db, &sales.PurchaseOrder{}, "track_number = ?", "T-2"); n != 0 {
		t.Fatalf("order T-2 persisted despite failure")
	}
	if n := repotest.Count(t, h.db, &sales.OrderDetail{}, ""); n != 2 {
		t.Fatalf("detail rows: want=2 got=%d", n)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cases := map[string]domainagg.CreateOrderInput{
		"missing track": {OrderFields: domainagg.OrderFields{Date: "2024-05-01", CustomerID: "1", DeliveryAddress: "x", Status: "pending"}},
		"blank address": {OrderFields: domainagg.OrderFields{Date: "2024-05-01", CustomerID: "1", DeliveryAddress: "  ", TrackNumber: "T", Status: "pending"}},
		"bad date":      {OrderFields: domainagg.OrderFields{Date: "01/05/2024", CustomerID: "1", DeliveryAddress: "x", TrackNumber: "T", Status: "pending"}},
		"bad customer":  {OrderFields: domainagg.OrderFields{Date: "2024-05-01", CustomerID: "one", DeliveryAddress: "x", TrackNumber: "T", Status: "pending"}},
		"zero quantity": {OrderFields: orderFields(1, "T"), Details: []domainagg.OrderDetailInput{{ProductID: "1", Quantity: 0}}},
		"detail id":     {OrderFields: orderFields(1, "T"), Details: []domainagg.OrderDetailInput{{DetailID: "3", ProductID: "1", Quantity: 1}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.orders.CreateOrder(ctx, in)
			requireCode(t, err, domainagg.CodeValidation)
		})
	}
	if n := repotest.Count(t, h.db, &sales.PurchaseOrder{}, ""); n != 0 {
		t.Fatalf("orders written: %d", n)
	}
}

func TestUpdateAppliesDetailEditsAndAppends(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	o, p := seedOrderWithDetails(t, h, 1)
	other := repotest.SeedProduct(t, ctx, h.db, "W-2", "3.00")
	existing, err := h.orders.GetOrderDetails(ctx, repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("details: %v", err)
	}

	n, err := h.orders.Update(ctx, domainagg.UpdateOrderInput{
		OrderID:     repotest.IDString(o.ID),
		OrderFields: orderFields(o.CustomerID, "T-1"),
		Details: []domainagg.OrderDetailInput{
			{DetailID: repotest.IDString(existing[0].ID), ProductID: repotest.IDString(other.ID), Quantity: 5},
			{ProductID: repotest.IDString(p.ID), Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows affected: %d", n)
	}

	details, err := h.orders.GetOrderDetails(ctx, repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("details: want=2 got=%d", len(details))
	}
	if details[0].ProductID != other.ID || details[0].Quantity != 5 || !details[0].Price.Equal(decimal.RequireFromString("3.00")) {
		t.Fatalf("edited detail: %+v", details[0])
	}
	if details[1].ProductID != p.ID || details[1].Quantity != 2 {
		t.Fatalf("appended detail: %+v", details[1])
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	o, p := seedOrderWithDetails(t, h, 1)

	fields := orderFields(o.CustomerID, "T-NEW")
	_, err := h.orders.Update(ctx, domainagg.UpdateOrderInput{
		OrderID:     repotest.IDString(o.ID),
		OrderFields: fields,
		Details: []domainagg.OrderDetailInput{
			{ProductID: repotest.IDString(p.ID), Quantity: 1},
			{ProductID: "999", Quantity: 1},
		},
	})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "product not found")

	got, err := h.orders.GetByID(ctx, repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TrackNumber != "T-1" {
		t.Fatalf("scalar update leaked: track=%q", got.TrackNumber)
	}
	if len(got.Details) != 1 {
		t.Fatalf("append leaked: %d details", len(got.Details))
	}
}

func TestUpdateCannotRedirectForeignDetail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	o, p := seedOrderWithDetails(t, h, 1)
	other := repotest.SeedOrder(t, ctx, h.db, o.CustomerID, "T-2")
	foreign := repotest.SeedOrderDetail(t, ctx, h.db, other.ID, p.ID, 1, "9.99")

	_, err := h.orders.Update(ctx, domainagg.UpdateOrderInput{
		OrderID:     repotest.IDString(o.ID),
		OrderFields: orderFields(o.CustomerID, "T-1"),
		Details: []domainagg.OrderDetailInput{
			{DetailID: repotest.IDString(foreign.ID), ProductID: repotest.IDString(p.ID), Quantity: 9},
		},
	})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "order detail not found")

	details, err := h.orders.GetOrderDetails(ctx, repotest.IDString(other.ID))
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details[0].Quantity != 1 || details[0].OrderID != other.ID {
		t.Fatalf("foreign detail modified: %+v", details[0])
	}
}

func TestUpdateMissingOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")

	_, err := h.orders.Update(ctx, domainagg.UpdateOrderInput{OrderID: "77", OrderFields: orderFields(c.ID, "T-1")})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "order not found")
}

func TestUpdateOrderDetail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	o, p := seedOrderWithDetails(t, h, 1)
	details, err := h.orders.GetOrderDetails(ctx, repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("details: %v", err)
	}

	n, err := h.orders.UpdateOrderDetail(ctx, domainagg.UpdateOrderDetailInput{
		OrderID:   repotest.IDString(o.ID),
		DetailID:  repotest.IDString(details[0].ID),
		ProductID: repotest.IDString(p.ID),
		Quantity:  7,
	})
	if err != nil || n != 1 {
		t.Fatalf("update detail: n=%d err=%v", n, err)
	}

	_, err = h.orders.UpdateOrderDetail(ctx, domainagg.UpdateOrderDetailInput{
		OrderID:   "999",
		DetailID:  repotest.IDString(details[0].ID),
		ProductID: repotest.IDString(p.ID),
		Quantity:  1,
	})
	requireCode(t, err, domainagg.CodeNotFound)
	requireMessage(t, err, "order detail not found")
}

func TestGetOrderDetailsChecksOrderExistence(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	c := repotest.SeedCustomer(t, ctx, h.db, "ada@example.com", "5551234")
	o := repotest.SeedOrder(t, ctx, h.db, c.ID, "T-1")

	details, err := h.orders.GetOrderDetails(ctx, repotest.IDString(o.ID))
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details == nil || len(details) != 0 {
		t.Fatalf("expected empty, non-nil slice, got %#v", details)
	}

	_, err = h.orders.GetOrderDetails(ctx, "404")
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestListAllOmitsDetails(t *testing.T) {
	h := newHarness(t)
	seedOrderWithDetails(t, h, 2)

	orders, err := h.orders.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders: want=1 got=%d", len(orders))
	}
	if len(orders[0].Details) != 0 {
		t.Fatalf("list must not hydrate details")
	}
	if status, ok := h.hooks.LastStatus("Sales.OrderAggregate.ListAll"); !ok || status != "success" {
		t.Fatalf("list status: %q ok=%v", status, ok)
	}
}
