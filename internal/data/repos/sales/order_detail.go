package sales

import (
	"fmt"
	"time"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"gorm.io/gorm"
)

type OrderDetailRepo interface {
	Create(dbc dbctx.Context, rows []*types.OrderDetail) ([]*types.OrderDetail, error)
	ListByOrder(dbc dbctx.Context, orderID uint) ([]*types.OrderDetail, error)
	UpdateForOrder(dbc dbctx.Context, id, orderID uint, updates map[string]interface{}) (int64, error)
	DeleteByOrder(dbc dbctx.Context, orderID uint) (int64, error)
}

type orderDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderDetailRepo(db *gorm.DB, log *logger.Logger) OrderDetailRepo {
	return &orderDetailRepo{db: db, log: log.With("repo", "OrderDetailRepo")}
}

func (r *orderDetailRepo) Create(dbc dbctx.Context, rows []*types.OrderDetail) ([]*types.OrderDetail, error) {
	if len(rows) == 0 {
		return []*types.OrderDetail{}, nil
	}
	if err := dbc.Handle(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByOrder returns the order's details in insertion (id) order.
func (r *orderDetailRepo) ListByOrder(dbc dbctx.Context, orderID uint) ([]*types.OrderDetail, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("missing order_id")
	}
	out := []*types.OrderDetail{}
	if err := dbc.Handle(r.db).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateForOrder only touches the detail when it belongs to orderID.
func (r *orderDetailRepo) UpdateForOrder(dbc dbctx.Context, id, orderID uint, updates map[string]interface{}) (int64, error) {
	if id == 0 || orderID == 0 {
		return 0, fmt.Errorf("missing id or order_id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Handle(r.db).
		Model(&types.OrderDetail{}).
		Where("id = ? AND order_id = ?", id, orderID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *orderDetailRepo) DeleteByOrder(dbc dbctx.Context, orderID uint) (int64, error) {
	if orderID == 0 {
		return 0, fmt.Errorf("missing order_id")
	}
	res := dbc.Handle(r.db).
		Where("order_id = ?", orderID).
		Delete(&types.OrderDetail{})
	return res.RowsAffected, res.Error
}
