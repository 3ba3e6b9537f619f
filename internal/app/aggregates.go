package app

import (
	"gorm.io/gorm"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/observability"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
)

// Aggregates is what the shell drives.
type Aggregates struct {
	Customers domainagg.CustomerRegistry
	Products  domainagg.ProductCatalog
	Orders    domainagg.OrderAggregate
	Payments  domainagg.PaymentLedger
}

// WireAggregates builds every component over one handle and one repo set.
func WireAggregates(db *gorm.DB, log *logger.Logger, set repos.Set, metrics *observability.Metrics) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log.With("component", "aggregates"),
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	return Aggregates{
		Customers: aggregates.NewCustomerRegistry(aggregates.CustomerRegistryDeps{
			Base:      base,
			Customers: set.Customers,
		}),
		Products: aggregates.NewProductCatalog(aggregates.ProductCatalogDeps{
			Base:     base,
			Products: set.Products,
		}),
		Orders: aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{
			Base:         base,
			Customers:    set.Customers,
			Products:     set.Products,
			Orders:       set.Orders,
			OrderDetails: set.OrderDetails,
			Payments:     set.Payments,
		}),
		Payments: aggregates.NewPaymentLedger(aggregates.PaymentLedgerDeps{
			Base:     base,
			Orders:   set.Orders,
			Payments: set.Payments,
		}),
	}
}
