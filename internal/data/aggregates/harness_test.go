package aggregates_test

import (
	"testing"

	"gorm.io/gorm"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/aggregates"
	aggtest "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/aggregates/testutil"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	repotest "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos/testutil"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
)

type harness struct {
	db    *gorm.DB
	repos repos.Set
	hooks *aggtest.HooksRecorder
	base  aggregates.BaseDeps

	customers domainagg.CustomerRegistry
	products  domainagg.ProductCatalog
	orders    domainagg.OrderAggregate
	payments  domainagg.PaymentLedger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessOn(t, repotest.DB(t))
}

func newHarnessOn(t *testing.T, db *gorm.DB) *harness {
	t.Helper()
	log := repotest.Logger(t)
	h := &harness{
		db:    db,
		repos: repos.NewSet(db, log),
		hooks: &aggtest.HooksRecorder{},
	}
	h.base = aggregates.BaseDeps{DB: db, Log: log, Hooks: h.hooks}
	h.wire(h.base, h.repos)
	return h
}

// wire rebuilds every component over base and set.
func (h *harness) wire(base aggregates.BaseDeps, set repos.Set) {
	h.customers = aggregates.NewCustomerRegistry(aggregates.CustomerRegistryDeps{Base: base, Customers: set.Customers})
	h.products = aggregates.NewProductCatalog(aggregates.ProductCatalogDeps{Base: base, Products: set.Products})
	h.orders = aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{
		Base:         base,
		Customers:    set.Customers,
		Products:     set.Products,
		Orders:       set.Orders,
		OrderDetails: set.OrderDetails,
		Payments:     set.Payments,
	})
	h.payments = aggregates.NewPaymentLedger(aggregates.PaymentLedgerDeps{Base: base, Orders: set.Orders, Payments: set.Payments})
}

func orderFields(customerID uint, track string) domainagg.OrderFields {
	return domainagg.OrderFields{
		Date:            "2024-05-01",
		CustomerID:      repotest.IDString(customerID),
		DeliveryAddress: "1 Mill Ln",
		TrackNumber:     track,
		Status:          "pending",
	}
}

func requireCode(t *testing.T, err error, want domainagg.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := domainagg.CodeOf(err); got != want {
		t.Fatalf("expected %s error, got %q (%v)", want, got, err)
	}
}

func requireMessage(t *testing.T, err error, want string) {
	t.Helper()
	if got := domainagg.PublicMessage(err); got != want {
		t.Fatalf("message: want=%q got=%q", want, got)
	}
}
