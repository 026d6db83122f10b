package infrastructure

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database at path, creating it if needed, and brings its schema up to date.
// A default admin account is added to empty databases.
func Connect(path string, logger *zap.Logger) (*gorm.DB, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && !strings.Contains(path, ":memory:") {
		if _, err = os.Create(path); err != nil {
			return nil, fmt.Errorf("creating database at %s: %w", path, err)
		}
		logger.Info("created database", zap.String("path", path))
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)", path)), &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// every connection to an in-memory database sees a different one
	if strings.Contains(path, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&model.User{}, &model.CMSPage{}, &model.SavedSearch{}); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	if err := addDefaultAdmin(db, logger); err != nil {
		return nil, err
	}
	return db, nil
}

func addDefaultAdmin(db *gorm.DB, logger *zap.Logger) error {
	var result int64
	db.Table("users").Count(&result)

	if result == 0 {
		user := &model.User{
			Uuid:     uuid.NewString(),
			Name:     "Admin",
			Username: "admin",
			Email:    "admin@example.com",
			Password: model.Hash("admin"),
			Role:     model.RoleAdmin,
		}
		if res := db.Create(&user); res.Error != nil {
			return fmt.Errorf("creating default admin: %w", res.Error)
		}
		logger.Warn("created default admin account, change its password", zap.String("email", user.Email))
	}
	return nil
}
