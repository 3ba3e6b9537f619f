package repos

import (
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos/sales"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"gorm.io/gorm"
)

type CustomerRepo = sales.CustomerRepo
type ProductRepo = sales.ProductRepo
type PurchaseOrderRepo = sales.PurchaseOrderRepo
type OrderDetailRepo = sales.OrderDetailRepo
type PaymentRepo = sales.PaymentRepo

func NewCustomerRepo(db *gorm.DB, log *logger.Logger) CustomerRepo {
	return sales.NewCustomerRepo(db, log)
}

func NewProductRepo(db *gorm.DB, log *logger.Logger) ProductRepo {
	return sales.NewProductRepo(db, log)
}

func NewPurchaseOrderRepo(db *gorm.DB, log *logger.Logger) PurchaseOrderRepo {
	return sales.NewPurchaseOrderRepo(db, log)
}

func NewOrderDetailRepo(db *gorm.DB, log *logger.Logger) OrderDetailRepo {
	return sales.NewOrderDetailRepo(db, log)
}

func NewPaymentRepo(db *gorm.DB, log *logger.Logger) PaymentRepo {
	return sales.NewPaymentRepo(db, log)
}

// Set bundles every table repo over one handle.
type Set struct {
	Customers    CustomerRepo
	Products     ProductRepo
	Orders       PurchaseOrderRepo
	OrderDetails OrderDetailRepo
	Payments     PaymentRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Customers:    NewCustomerRepo(db, log),
		Products:     NewProductRepo(db, log),
		Orders:       NewPurchaseOrderRepo(db, log),
		OrderDetails: NewOrderDetailRepo(db, log),
		Payments:     NewPaymentRepo(db, log),
	}
}
