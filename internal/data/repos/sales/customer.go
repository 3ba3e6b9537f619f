package sales

import (
	"fmt"
	"time"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"gorm.io/gorm"
)

type CustomerRepo interface {
	Create(dbc dbctx.Context, row *types.Customer) (*types.Customer, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Customer, error)
	List(dbc dbctx.Context) ([]*types.Customer, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, log *logger.Logger) CustomerRepo {
	return &customerRepo{db: db, log: log.With("repo", "CustomerRepo")}
}

func (r *customerRepo) Create(dbc dbctx.Context, row *types.Customer) (*types.Customer, error) {
	if row == nil {
		return nil, fmt.Errorf("missing customer")
	}
	if err := dbc.Handle(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	r.log.Debug("Customer created", "customer_id", row.ID, "email", row.Email)
	return row, nil
}

// GetByID returns nil, nil when no row matches.
func (r *customerRepo) GetByID(dbc dbctx.Context, id uint) (*types.Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	var out []*types.Customer
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

func (r *customerRepo) List(dbc dbctx.Context) ([]*types.Customer, error) {
	var out []*types.Customer
	if err := dbc.Handle(r.db).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *customerRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Handle(r.db).
		Model(&types.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *customerRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	res := dbc.Handle(r.db).
		Where("id = ?", id).
		Delete(&types.Customer{})
	return res.RowsAffected, res.Error
}
