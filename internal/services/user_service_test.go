package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"betsy/internal/apperrors"
	"betsy/internal/models"
	"betsy/internal/services"
)

func TestUserService_CreateUser(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	user, err := users.CreateUser(&models.User{
		Username:       "emma1",
		Name:           "Emma Stone",
		Email:          "emma@example.com",
		BillingAccount: "1234509876",
		Password:       "password123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "emma1", user.Username)
	// The plaintext never reaches storage.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}

func TestUserService_CreateUser_Invalid(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	cases := []struct {
		name string
		user models.User
	}{
		{"missing username", models.User{Email: "a@example.com", Password: "password123"}},
		{"short username", models.User{Username: "ab", Email: "a@example.com", Password: "password123"}},
		{"missing email", models.User{Username: "emma1", Password: "password123"}},
		{"malformed email", models.User{Username: "emma1", Email: "not-an-email", Password: "password123"}},
		{"short password", models.User{Username: "emma1", Email: "a@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := users.CreateUser(&tc.user)
			assert.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Nil(t, created)
		})
	}
}

func TestUserService_CreateUser_Duplicates(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	createTestUser(t, store, "emma1")

	// Same username.
	dup, err := users.CreateUser(&models.User{
		Username: "emma1",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.True(t, apperrors.IsConflict(err))
	assert.Nil(t, dup)

	// Same email, different username.
	dup, err = users.CreateUser(&models.User{
		Username: "emma2",
		Email:    "emma1@example.com",
		Password: "password123",
	})
	assert.True(t, apperrors.IsConflict(err))
	assert.Nil(t, dup)
}

func TestUserService_UpdateUser(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	user := createTestUser(t, store, "emma1")

	city := "Portland"
	updated, err := users.UpdateUser(user.ID, models.UserUpdate{City: &city})
	assert.NoError(t, err)
	assert.Equal(t, "Portland", updated.City)
	assert.Equal(t, user.Username, updated.Username)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestUserService_UpdateUser_EmailTaken(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	createTestUser(t, store, "emma1")
	user := createTestUser(t, store, "max1")

	taken := "emma1@example.com"
	updated, err := users.UpdateUser(user.ID, models.UserUpdate{Email: &taken})
	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Nil(t, updated)
}

func TestUserService_UpdatePassword(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	user := createTestUser(t, store, "emma1")

	err := users.UpdatePassword(user.ID, "newsecret")
	assert.NoError(t, err)

	reloaded, err := users.GetUser(user.ID)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("newsecret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("password123")))

	err = users.UpdatePassword(user.ID, "short")
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_SetAdmin(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)

	user := createTestUser(t, store, "emma1")
	assert.False(t, user.Admin)

	err := users.SetAdmin(user.ID, true)
	assert.NoError(t, err)

	reloaded, err := users.GetUser(user.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Admin)
}

func TestUserService_DeleteUser(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	user := createTestUser(t, store, "emma1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	_, err = commerce.AddProductToUser(user.ID, widget.ID, 1)
	assert.NoError(t, err)

	err = users.DeleteUser(user.ID)
	assert.NoError(t, err)

	_, err = users.GetUser(user.ID)
	assert.True(t, apperrors.IsNotFound(err))

	// Ownership rows go with the user.
	rows, err := store.UserProducts().ListByUser(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUserService_DeleteUser_BlockedByPurchases(t *testing.T) {
	store := newTestStore(t)
	users := services.NewUserService(store)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "emma1")
	seller := createTestUser(t, store, "max1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	purchase, err := commerce.PurchaseFromSeller(buyer.ID, seller.ID, widget.ID, 1)
	assert.NoError(t, err)

	// The ledger references the buyer, so deletion is refused with a
	// typed conflict, never a raw constraint error or a dangling row.
	err = users.DeleteUser(buyer.ID)
	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// Being recorded as seller blocks deletion the same way.
	err = users.DeleteUser(seller.ID)
	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	_, err = users.GetUser(buyer.ID)
	assert.NoError(t, err)
	kept, err := store.Purchases().GetByID(purchase.ID)
	assert.NoError(t, err)
	assert.Equal(t, buyer.ID, kept.BuyerID)
}
