package repositories

import "betsy/internal/models"

// PurchaseRepository defines the interface for purchase ledger access.
// Purchases are immutable history: there is no update or delete.
type PurchaseRepository interface {
	Create(purchase *models.Purchase) error
	GetByID(id string) (*models.Purchase, error)
	GetAll() ([]models.Purchase, error)
	ListByBuyer(buyerID string) ([]models.Purchase, error)
	CountByProduct(productID string) (int64, error)
	// CountByUser counts the entries referencing a user as buyer or seller.
	CountByUser(userID string) (int64, error)
}
