package repositories

import (
	"betsy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductTagRepository is a GORM implementation of ProductTagRepository.
type GORMProductTagRepository struct {
	db *gorm.DB
}

// NewGORMProductTagRepository creates a new instance of GORMProductTagRepository.
func NewGORMProductTagRepository(db *gorm.DB) *GORMProductTagRepository {
	return &GORMProductTagRepository{
		db: db,
	}
}

// Create creates a new product-tag association. The unique index on
// (product_id, tag_id) is the final arbiter against duplicates.
func (r *GORMProductTagRepository) Create(pt *models.ProductTag) error {
	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	if err := r.db.Create(pt).Error; err != nil {
		return translate(err, "product tag", pt.ProductID+"/"+pt.TagID)
	}
	return nil
}

// GetByProductAndTag retrieves the association for a (product, tag) pair.
func (r *GORMProductTagRepository) GetByProductAndTag(productID, tagID string) (*models.ProductTag, error) {
	var pt models.ProductTag
	err := r.db.First(&pt, "product_id = ? AND tag_id = ?", productID, tagID).Error
	if err != nil {
		return nil, translate(err, "product tag", productID+"/"+tagID)
	}
	return &pt, nil
}

// ListByProduct retrieves all associations of a product.
func (r *GORMProductTagRepository) ListByProduct(productID string) ([]models.ProductTag, error) {
	pts := make([]models.ProductTag, 0)
	if err := r.db.Where("product_id = ?", productID).Find(&pts).Error; err != nil {
		return nil, translate(err, "product tag", productID)
	}
	return pts, nil
}

// ListByTag retrieves all associations of a tag.
func (r *GORMProductTagRepository) ListByTag(tagID string) ([]models.ProductTag, error) {
	pts := make([]models.ProductTag, 0)
	if err := r.db.Where("tag_id = ?", tagID).Find(&pts).Error; err != nil {
		return nil, translate(err, "product tag", tagID)
	}
	return pts, nil
}

// Update saves all fields of an existing association.
func (r *GORMProductTagRepository) Update(pt *models.ProductTag) error {
	res := r.db.Save(pt)
	if res.Error != nil {
		return translate(res.Error, "product tag", pt.ID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product tag", pt.ID)
	}
	return nil
}

// Delete deletes an association by its ID.
func (r *GORMProductTagRepository) Delete(id string) error {
	res := r.db.Delete(&models.ProductTag{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "product tag", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product tag", id)
	}
	return nil
}

// DeleteByProduct removes every association of a product.
func (r *GORMProductTagRepository) DeleteByProduct(productID string) error {
	if err := r.db.Delete(&models.ProductTag{}, "product_id = ?", productID).Error; err != nil {
		return translate(err, "product tag", productID)
	}
	return nil
}

// DeleteByTag removes every association of a tag.
func (r *GORMProductTagRepository) DeleteByTag(tagID string) error {
	if err := r.db.Delete(&models.ProductTag{}, "tag_id = ?", tagID).Error; err != nil {
		return translate(err, "product tag", tagID)
	}
	return nil
}
