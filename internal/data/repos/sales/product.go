package sales

import (
	"fmt"
	"time"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
	"gorm.io/gorm"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, row *types.Product) (*types.Product, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Product, error)
	List(dbc dbctx.Context) ([]*types.Product, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, log *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: log.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, row *types.Product) (*types.Product, error) {
	if row == nil {
		return nil, fmt.Errorf("missing product")
	}
	if err := dbc.Handle(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	r.log.Debug("Product created", "product_id", row.ID, "barcode", row.Barcode)
	return row, nil
}

// GetByID returns nil, nil when no row matches.
func (r *productRepo) GetByID(dbc dbctx.Context, id uint) (*types.Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("missing id")
	}
	var out []*types.Product
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

func (r *productRepo) List(dbc dbctx.Context) ([]*types.Product, error) {
	var out []*types.Product
	if err := dbc.Handle(r.db).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Handle(r.db).
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *productRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	if id == 0 {
		return 0, fmt.Errorf("missing id")
	}
	res := dbc.Handle(r.db).
		Where("id = ?", id).
		Delete(&types.Product{})
	return res.RowsAffected, res.Error
}
