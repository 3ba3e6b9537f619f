package app

import (
	"gorm.io/gorm"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/data/repos"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
)

func wireRepos(db *gorm.DB, log *logger.Logger) repos.Set {
	log.Info("Wiring repos...")
	return repos.NewSet(db, log)
}
