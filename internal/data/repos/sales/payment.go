package sales

import (
	"fmt"
	"time"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"gorm.io/gorm"
)

type PaymentRepo interface {
	Create(dbc dbctx.Context, row *types.Payment) (*types.Payment, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Payment, error)
	List(dbc dbctx.Context) ([]*types.Payment, error)
	ExistsForOrder(dbc dbctx.Context, orderID uint) (bool, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, log *logger.Logger) PaymentRepo {
	return &paymentRepo{db: db, log: log.With("repo", "PaymentRepo")}
}

func (r *paymentRepo) Create(dbc dbctx.Context, row *types.Payment) (*types.Payment, error) {
	if row == nil {
		return nil, fmt.Errorf("missing payment")
	}
	if err := dbc.Handle(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetByID returns nil, nil when no row matches.
func (r *paymentRepo) GetByID(dbc dbctx.Context, id uint) (*types.Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	var out []*types.Payment
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

func (r *paymentRepo) List(dbc dbctx.Context) ([]*types.Payment, error) {
	var out []*types.Payment
	if err := dbc.Handle(r.db).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) ExistsForOrder(dbc dbctx.Context, orderID uint) (bool, error) {
	if orderID == 0 {
		return false, fmt.Errorf("missing order_id")
	}
	var count int64
	if err := dbc.Handle(r.db).
		Model(&types.Payment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Handle(r.db).
		Model(&types.Payment{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *paymentRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	res := dbc.Handle(r.db).
		Where("id = ?", id).
		Delete(&types.Payment{})
	return res.RowsAffected, res.Error
}
