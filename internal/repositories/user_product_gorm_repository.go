package repositories

import (
	"betsy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserProductRepository is a GORM implementation of UserProductRepository.
type GORMUserProductRepository struct {
	db *gorm.DB
}

// NewGORMUserProductRepository creates a new instance of GORMUserProductRepository.
func NewGORMUserProductRepository(db *gorm.DB) *GORMUserProductRepository {
	return &GORMUserProductRepository{
		db: db,
	}
}

// Create creates a new user-product row. The unique index on
// (user_id, product_id) is the final arbiter against duplicates.
func (r *GORMUserProductRepository) Create(up *models.UserProduct) error {
	if up.ID == "" {
		up.ID = uuid.New().String()
	}
	if err := r.db.Create(up).Error; err != nil {
		return translate(err, "user product", up.UserID+"/"+up.ProductID)
	}
	return nil
}

// GetByUserAndProduct retrieves the row for a (user, product) pair.
func (r *GORMUserProductRepository) GetByUserAndProduct(userID, productID string) (*models.UserProduct, error) {
	var up models.UserProduct
	err := r.db.First(&up, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, translate(err, "user product", userID+"/"+productID)
	}
	return &up, nil
}

// ListByUser retrieves all products owned by a user.
func (r *GORMUserProductRepository) ListByUser(userID string) ([]models.UserProduct, error) {
	ups := make([]models.UserProduct, 0)
	if err := r.db.Where("user_id = ?", userID).Find(&ups).Error; err != nil {
		return nil, translate(err, "user product", userID)
	}
	return ups, nil
}

// ListByProduct retrieves all owners of a product.
func (r *GORMUserProductRepository) ListByProduct(productID string) ([]models.UserProduct, error) {
	ups := make([]models.UserProduct, 0)
	if err := r.db.Where("product_id = ?", productID).Find(&ups).Error; err != nil {
		return nil, translate(err, "user product", productID)
	}
	return ups, nil
}

// Update saves all fields of an existing row.
func (r *GORMUserProductRepository) Update(up *models.UserProduct) error {
	res := r.db.Save(up)
	if res.Error != nil {
		return translate(res.Error, "user product", up.ID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user product", up.ID)
	}
	return nil
}

// Delete deletes a row by its ID.
func (r *GORMUserProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.UserProduct{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "user product", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user product", id)
	}
	return nil
}

// DeleteByProduct removes every ownership row of a product.
func (r *GORMUserProductRepository) DeleteByProduct(productID string) error {
	if err := r.db.Delete(&models.UserProduct{}, "product_id = ?", productID).Error; err != nil {
		return translate(err, "user product", productID)
	}
	return nil
}
