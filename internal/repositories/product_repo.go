package repositories

import "betsy/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetByName(name string) (*models.Product, error)
	GetAll() ([]models.Product, error)
	SearchByName(keyword string) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
}
