package repositories

import "betsy/internal/models"

// ProductTagRepository defines the interface for product-tag association
// data access.
type ProductTagRepository interface {
	Create(pt *models.ProductTag) error
	GetByProductAndTag(productID, tagID string) (*models.ProductTag, error)
	ListByProduct(productID string) ([]models.ProductTag, error)
	ListByTag(tagID string) ([]models.ProductTag, error)
	Update(pt *models.ProductTag) error
	Delete(id string) error
	DeleteByProduct(productID string) error
	DeleteByTag(tagID string) error
}
