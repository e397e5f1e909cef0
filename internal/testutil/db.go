package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"simplifytour/internal/infra"
	"simplifytour/internal/models/db_models"
	"simplifytour/pkg/utils"
)

// SetupTestDB returns a migrated in-memory database private to the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateUser inserts an active user with the given password.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, staff bool) *db_models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &db_models.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      staff,
		DateJoined:   utils.NowUnixSeconds(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
