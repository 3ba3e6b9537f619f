package db

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/config"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
)

// StoreService is the storage gateway: a pooled, transactional gorm handle.
type StoreService struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewStoreService(cfg config.Store, logg *logger.Logger) (*StoreService, error) {
	serviceLog := logg.With("service", "StoreService", "driver", cfg.Driver)

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	gormLog := gormLogger.New(
		serviceLog,
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if err := ConfigurePool(db, cfg); err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := AutoMigrateAll(db); err != nil {
			return nil, err
		}
	}

	serviceLog.Info("Store connected", "max_open_conns", cfg.MaxOpenConns)
	return &StoreService{db: db, driver: cfg.Driver, log: serviceLog}, nil
}

func (s *StoreService) DB() *gorm.DB { return s.db }

func (s *StoreService) Driver() string { return s.driver }

func (s *StoreService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ConfigurePool bounds the connection pool. Callers beyond MaxOpenConns wait.
func ConfigurePool(db *gorm.DB, cfg config.Store) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("access sql pool: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.Driver == config.DriverSQLite && isMemorySQLite(cfg) {
		// every connection to :memory: is a separate database
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	idle := cfg.MaxIdleConns
	if idle > maxOpen {
		idle = maxOpen
	}
	sqlDB.SetMaxIdleConns(idle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

// Dialector picks the gorm driver for cfg.Driver.
func Dialector(cfg config.Store) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case config.DriverMySQL:
		return mysql.Open(MySQLDSN(cfg)), nil
	case config.DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func PostgresDSN(cfg config.Store) string {
	if dsn := strings.TrimSpace(cfg.DSN); dsn != "" {
		return dsn
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		cfg.Name,
	)
}

// MySQLDSN builds a go-sql-driver DSN. ClientFoundRows makes UPDATE report
// matched rows, so rewriting a row with identical values still counts as found.
func MySQLDSN(cfg config.Store) string {
	if dsn := strings.TrimSpace(cfg.DSN); dsn != "" {
		return dsn
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	mc := mysqldriver.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.ClientFoundRows = true
	mc.Loc = time.UTC
	return mc.FormatDSN()
}

func SQLiteDSN(cfg config.Store) string {
	if dsn := strings.TrimSpace(cfg.DSN); dsn != "" {
		return dsn
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = "gestion_commandes.db"
	}
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=off&_busy_timeout=5000"
}

func isMemorySQLite(cfg config.Store) bool {
	return strings.Contains(SQLiteDSN(cfg), ":memory:")
}
