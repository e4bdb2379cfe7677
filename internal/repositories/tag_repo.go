package repositories

import "betsy/internal/models"

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	Create(tag *models.Tag) error
	GetByID(id string) (*models.Tag, error)
	GetByName(name string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	ListChildren(parentID string) ([]models.Tag, error)
	Update(tag *models.Tag) error
	Delete(id string) error
	// DetachChildren clears the parent reference of every direct child of
	// the given tag, so deleting a tag never orphans its subtree.
	DetachChildren(parentID string) error
}
