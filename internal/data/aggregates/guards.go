package aggregates

import (
	"strings"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Guard provides pre-write checks that run inside the caller's transaction.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) Guard {
	return Guard{db: db}
}

func (g Guard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx == nil && g.db == nil {
		return nil, ValidationError("missing db transaction context")
	}
	return dbc.Handle(g.db), nil
}

// RequireUnique fails with a conflict when another row of table already holds value in column.
// excludeID skips the row being updated; zero means no row is excluded.
func (g Guard) RequireUnique(dbc dbctx.Context, table, column string, value any, excludeID uint, message string) error {
	db, err := g.baseDB(dbc)
	if err != nil {
		return err
	}
	table, column = strings.TrimSpace(table), strings.TrimSpace(column)
	if table == "" || column == "" {
		return ValidationError("table and column are required for RequireUnique")
	}
	q := db.Table(table).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != 0 {
		q = q.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: excludeID})
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ConflictError(message)
	}
	return nil
}

// RequireUnreferenced fails with a conflict when any row of table points at id through column.
func (g Guard) RequireUnreferenced(dbc dbctx.Context, table, column string, id uint, message string) error {
	db, err := g.baseDB(dbc)
	if err != nil {
		return err
	}
	table, column = strings.TrimSpace(table), strings.TrimSpace(column)
	if table == "" || column == "" || id == 0 {
		return ValidationError("table, column and id are required for RequireUnreferenced")
	}
	var count int64
	if err := db.Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ConflictError(message)
	}
	return nil
}

// RequireFound converts a missing lookup result into a typed not-found error.
func RequireFound(found bool, message string) error {
	if found {
		return nil
	}
	return NotFoundError(strings.TrimSpace(message))
}

// RequireRowsAffected treats a write that matched nothing as a missing row.
func RequireRowsAffected(n int64, message string) error {
	if n > 0 {
		return nil
	}
	return NotFoundError(strings.TrimSpace(message))
}
