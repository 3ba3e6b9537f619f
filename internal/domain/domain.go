package domain

import "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/sales"

type Customer = sales.Customer
type Product = sales.Product
type PurchaseOrder = sales.PurchaseOrder
type OrderDetail = sales.OrderDetail
type Payment = sales.Payment
