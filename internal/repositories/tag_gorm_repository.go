package repositories

import (
	"betsy/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// Create creates a new tag in the database.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		return translate(err, "tag", tag.Name)
	}
	return nil
}

// GetByID retrieves a tag by its ID from the database.
func (r *GORMTagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		return nil, translate(err, "tag", id)
	}
	return &tag, nil
}

// GetByName retrieves a tag by its unique name.
func (r *GORMTagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "name = ?", name).Error; err != nil {
		return nil, translate(err, "tag", name)
	}
	return &tag, nil
}

// GetAll retrieves all tags from the database.
func (r *GORMTagRepository) GetAll() ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.db.Find(&tags).Error; err != nil {
		return nil, translate(err, "tag", "")
	}
	return tags, nil
}

// ListChildren retrieves the direct children of a tag.
func (r *GORMTagRepository) ListChildren(parentID string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.db.Where("parent_id = ?", parentID).Find(&tags).Error; err != nil {
		return nil, translate(err, "tag", parentID)
	}
	return tags, nil
}

// Update saves all fields of an existing tag.
func (r *GORMTagRepository) Update(tag *models.Tag) error {
	res := r.db.Save(tag)
	if res.Error != nil {
		return translate(res.Error, "tag", tag.ID)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "tag", tag.ID)
	}
	return nil
}

// Delete deletes a tag by its ID from the database.
func (r *GORMTagRepository) Delete(id string) error {
	res := r.db.Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "tag", id)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "tag", id)
	}
	return nil
}

// DetachChildren clears the parent reference of every direct child.
func (r *GORMTagRepository) DetachChildren(parentID string) error {
	err := r.db.Model(&models.Tag{}).
		Where("parent_id = ?", parentID).
		Update("parent_id", nil).Error
	if err != nil {
		return translate(err, "tag", parentID)
	}
	return nil
}
