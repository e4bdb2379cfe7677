package repositories

import (
	"betsy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return translate(err, "product", product.Name)
	}
	return nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "product", id)
	}
	return &product, nil
}

// GetByName retrieves a single product by its unique name.
func (r *GORMProductRepository) GetByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		return nil, translate(err, "product", name)
	}
	return &product, nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Find(&products).Error; err != nil {
		return nil, translate(err, "product", "")
	}
	return products, nil
}

// SearchByName retrieves products whose name contains the keyword.
// An empty result is an empty slice, never an error.
func (r *GORMProductRepository) SearchByName(keyword string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.Where("name LIKE ?", "%"+keyword+"%").Find(&products).Error; err != nil {
		return nil, translate(err, "product", keyword)
	}
	return products, nil
}

// Update saves all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return translate(res.Error, "product", product.ID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "product", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product", id)
	}
	return nil
}
