package services

import (
	"strings"
	"time"

	"betsy/internal/apperrors"
	"betsy/internal/models"
	"betsy/internal/repositories"
)

// TagService handles business logic related to tags. Tags form a tree via
// the parent reference; every parent assignment is checked for cycles.
type TagService struct {
	store repositories.Store
}

// NewTagService creates a new TagService.
func NewTagService(store repositories.Store) *TagService {
	return &TagService{
		store: store,
	}
}

// CreateTag validates the inputs and creates a new tag. A duplicate name is
// a typed Conflict.
func (s *TagService) CreateTag(name string, description, color, parentID *string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" || len(name) > 100 {
		return nil, apperrors.Validation("tag", "name", "name must be 1-100 characters")
	}
	if existing, err := s.store.Tags().GetByName(name); err == nil && existing != nil {
		return nil, apperrors.Conflict("tag", name, "tag name already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if parentID != nil {
		if _, err := s.store.Tags().GetByID(*parentID); err != nil {
			return nil, err
		}
	}

	tag := &models.Tag{
		Name:        name,
		Description: description,
		Color:       color,
		ParentID:    parentID,
		IsActive:    true,
	}
	if err := s.store.Tags().Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTag retrieves a single tag by its ID.
func (s *TagService) GetTag(id string) (*models.Tag, error) {
	return s.store.Tags().GetByID(id)
}

// GetTagByName retrieves a tag by its unique name.
func (s *TagService) GetTagByName(name string) (*models.Tag, error) {
	return s.store.Tags().GetByName(name)
}

// ListTags retrieves all tags.
func (s *TagService) ListTags() ([]models.Tag, error) {
	return s.store.Tags().GetAll()
}

// ListChildren retrieves the direct children of a tag.
func (s *TagService) ListChildren(parentID string) ([]models.Tag, error) {
	if _, err := s.store.Tags().GetByID(parentID); err != nil {
		return nil, err
	}
	return s.store.Tags().ListChildren(parentID)
}

// UpdateTag applies an allow-listed partial update to a tag. Assigning a
// parent that sits below the tag in the tree is rejected.
func (s *TagService) UpdateTag(id string, update models.TagUpdate) (*models.Tag, error) {
	tag, err := s.store.Tags().GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != tag.Name {
		if strings.TrimSpace(*update.Name) == "" || len(*update.Name) > 100 {
			return nil, apperrors.Validation("tag", "name", "name must be 1-100 characters")
		}
		if existing, err := s.store.Tags().GetByName(*update.Name); err == nil && existing != nil {
			return nil, apperrors.Conflict("tag", *update.Name, "tag name already exists")
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		tag.Name = *update.Name
	}
	if update.ParentID != nil {
		if err := s.checkNoCycle(id, *update.ParentID); err != nil {
			return nil, err
		}
		tag.ParentID = update.ParentID
	}
	if update.Description != nil {
		tag.Description = update.Description
	}
	if update.Color != nil {
		tag.Color = update.Color
	}
	if update.IsActive != nil {
		tag.IsActive = *update.IsActive
	}

	now := time.Now()
	tag.UpdatedAt = &now
	if err := s.store.Tags().Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag. Its product associations are cascade-removed and
// its children are detached (parent cleared) in the same transaction.
func (s *TagService) DeleteTag(id string) error {
	return s.store.Atomically(func(tx repositories.Store) error {
		if _, err := tx.Tags().GetByID(id); err != nil {
			return err
		}
		if err := tx.ProductTags().DeleteByTag(id); err != nil {
			return err
		}
		if err := tx.Tags().DetachChildren(id); err != nil {
			return err
		}
		return tx.Tags().Delete(id)
	})
}

// checkNoCycle walks up from the candidate parent; reaching tagID means the
// assignment would close a loop in the tree.
func (s *TagService) checkNoCycle(tagID, candidateParentID string) error {
	if tagID == candidateParentID {
		return apperrors.Validation("tag", "parent_id", "a tag cannot be its own parent")
	}
	currentID := candidateParentID
	for {
		current, err := s.store.Tags().GetByID(currentID)
		if err != nil {
			return err
		}
		if current.ParentID == nil {
			return nil
		}
		if *current.ParentID == tagID {
			return apperrors.Validation("tag", "parent_id", "parent assignment would create a cycle")
		}
		currentID = *current.ParentID
	}
}
