package repositories

import (
	"betsy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPurchaseRepository is a GORM implementation of PurchaseRepository.
type GORMPurchaseRepository struct {
	db *gorm.DB
}

// NewGORMPurchaseRepository creates a new instance of GORMPurchaseRepository.
func NewGORMPurchaseRepository(db *gorm.DB) *GORMPurchaseRepository {
	return &GORMPurchaseRepository{
		db: db,
	}
}

// Create inserts a new purchase ledger entry.
func (r *GORMPurchaseRepository) Create(purchase *models.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	if err := r.db.Create(purchase).Error; err != nil {
		return translate(err, "purchase", purchase.ID)
	}
	return nil
}

// GetByID retrieves a purchase by its ID.
func (r *GORMPurchaseRepository) GetByID(id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.First(&purchase, "id = ?", id).Error; err != nil {
		return nil, translate(err, "purchase", id)
	}
	return &purchase, nil
}

// GetAll retrieves all purchases.
func (r *GORMPurchaseRepository) GetAll() ([]models.Purchase, error) {
	purchases := make([]models.Purchase, 0)
	if err := r.db.Find(&purchases).Error; err != nil {
		return nil, translate(err, "purchase", "")
	}
	return purchases, nil
}

// ListByBuyer retrieves all purchases made by a user.
func (r *GORMPurchaseRepository) ListByBuyer(buyerID string) ([]models.Purchase, error) {
	purchases := make([]models.Purchase, 0)
	if err := r.db.Where("buyer_id = ?", buyerID).Find(&purchases).Error; err != nil {
		return nil, translate(err, "purchase", buyerID)
	}
	return purchases, nil
}

// CountByProduct counts the ledger entries referencing a product.
func (r *GORMPurchaseRepository) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return 0, translate(err, "purchase", productID)
	}
	return count, nil
}

// CountByUser counts the ledger entries referencing a user as buyer or
// seller.
func (r *GORMPurchaseRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err, "purchase", userID)
	}
	return count, nil
}
