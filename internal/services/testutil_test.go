package services_test

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"betsy/internal/models"
	"betsy/internal/repositories"
	"betsy/internal/seed"
	"betsy/internal/services"
)

// newTestStore opens an isolated in-memory sqlite database named after the
// test and migrates the full schema. cache=shared keeps the database alive
// across the connections GORM pools; foreign keys are switched on so the
// tests run under the same integrity constraints postgres enforces.
func newTestStore(t *testing.T) repositories.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := seed.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repositories.NewGORMStore(db)
}

// createTestUser persists a user with unique username and email derived
// from the given handle.
func createTestUser(t *testing.T, store repositories.Store, handle string) *models.User {
	t.Helper()
	userService := services.NewUserService(store)
	user, err := userService.CreateUser(&models.User{
		Username:       handle,
		Name:           "Test " + handle,
		Email:          handle + "@example.com",
		BillingAccount: "acct-" + handle,
		Password:       "password123",
	})
	if err != nil {
		t.Fatalf("failed to create test user %s: %v", handle, err)
	}
	return user
}
