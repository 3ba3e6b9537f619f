package sales

import (
	"fmt"
	"time"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderRepo interface {
	Create(dbc dbctx.Context, row *types.PurchaseOrder) (*types.PurchaseOrder, error)
	GetByID(dbc dbctx.Context, id uint) (*types.PurchaseOrder, error)
	LockByID(dbc dbctx.Context, id uint) (*types.PurchaseOrder, error)
	List(dbc dbctx.Context) ([]*types.PurchaseOrder, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type purchaseOrderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPurchaseOrderRepo(db *gorm.DB, log *logger.Logger) PurchaseOrderRepo {
	return &purchaseOrderRepo{db: db, log: log.With("repo", "PurchaseOrderRepo")}
}

func (r *purchaseOrderRepo) Create(dbc dbctx.Context, row *types.PurchaseOrder) (*types.PurchaseOrder, error) {
	if row == nil {
		return nil, fmt.Errorf("missing purchase order")
	}
	// details are written by OrderDetailRepo
	if err := dbc.Handle(r.db).Omit(clause.Associations).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetByID returns nil, nil when no row matches.
func (r *purchaseOrderRepo) GetByID(dbc dbctx.Context, id uint) (*types.PurchaseOrder, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	var out []*types.PurchaseOrder
	if err := dbc.Handle(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// LockByID reads the order with a row lock held until the transaction ends.
// Drivers without row locks (sqlite) ignore the locking clause.
func (r *purchaseOrderRepo) LockByID(dbc dbctx.Context, id uint) (*types.PurchaseOrder, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID required dbc.Tx")
	}
	var out []*types.PurchaseOrder
	if err := dbc.Handle(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *purchaseOrderRepo) List(dbc dbctx.Context) ([]*types.PurchaseOrder, error) {
	var out []*types.PurchaseOrder
	if err := dbc.Handle(r.db).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *purchaseOrderRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Handle(r.db).
		Model(&types.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *purchaseOrderRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	res := dbc.Handle(r.db).
		Where("id = ?", id).
		Delete(&types.PurchaseOrder{})
	return res.RowsAffected, res.Error
}
