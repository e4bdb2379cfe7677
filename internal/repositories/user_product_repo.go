package repositories

import "betsy/internal/models"

// UserProductRepository defines the interface for user-owned-product data
// access.
type UserProductRepository interface {
	Create(up *models.UserProduct) error
	GetByUserAndProduct(userID, productID string) (*models.UserProduct, error)
	ListByUser(userID string) ([]models.UserProduct, error)
	ListByProduct(productID string) ([]models.UserProduct, error)
	Update(up *models.UserProduct) error
	Delete(id string) error
	DeleteByProduct(productID string) error
}
