package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"betsy/internal/apperrors"
	"betsy/internal/models"
	"betsy/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	store repositories.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Store) *ProductService {
	return &ProductService{
		store: store,
	}
}

// validateProductFields checks the field-level invariants before anything
// touches the store.
func validateProductFields(name, description string, price decimal.Decimal, quantity int) error {
	if strings.TrimSpace(name) == "" || len(name) > 255 {
		return apperrors.Validation("product", "name", "name must be 1-255 characters")
	}
	if strings.TrimSpace(description) == "" || len(description) > 1000 {
		return apperrors.Validation("product", "description", "description must be 1-1000 characters")
	}
	if !price.IsPositive() {
		return apperrors.Validation("product", "price_per_unit", "price must be a positive number")
	}
	if quantity < 0 {
		return apperrors.Validation("product", "quantity_in_stock", "quantity must be a non-negative integer")
	}
	return nil
}

// CreateProduct validates the inputs and creates a new product. A duplicate
// name is a typed Conflict, not a raw store error.
func (s *ProductService) CreateProduct(name, description string, price decimal.Decimal, quantity int) (*models.Product, error) {
	if err := validateProductFields(name, description, price, quantity); err != nil {
		return nil, err
	}
	if existing, err := s.store.Products().GetByName(name); err == nil && existing != nil {
		return nil, apperrors.Conflict("product", name, "product name already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	product := &models.Product{
		Name:            name,
		Description:     description,
		PricePerUnit:    price.Round(2),
		QuantityInStock: quantity,
		IsActive:        true,
	}
	if err := s.store.Products().Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.store.Products().GetByID(id)
}

// GetProductByName retrieves a single product by its unique name.
func (s *ProductService) GetProductByName(name string) (*models.Product, error) {
	return s.store.Products().GetByName(name)
}

// ListProducts retrieves all products.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	return s.store.Products().GetAll()
}

// SearchProducts retrieves products whose name contains the keyword.
func (s *ProductService) SearchProducts(keyword string) ([]models.Product, error) {
	return s.store.Products().SearchByName(keyword)
}

// UpdateProduct applies an allow-listed partial update to a product and
// re-validates the result before saving.
func (s *ProductService) UpdateProduct(id string, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.store.Products().GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != product.Name {
		if existing, err := s.store.Products().GetByName(*update.Name); err == nil && existing != nil {
			return nil, apperrors.Conflict("product", *update.Name, "product name already exists")
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.PricePerUnit != nil {
		product.PricePerUnit = update.PricePerUnit.Round(2)
	}
	if update.QuantityInStock != nil {
		product.QuantityInStock = *update.QuantityInStock
	}
	if update.IsActive != nil {
		product.IsActive = *update.IsActive
	}

	if err := validateProductFields(product.Name, product.Description, product.PricePerUnit, product.QuantityInStock); err != nil {
		return nil, err
	}

	now := time.Now()
	product.UpdatedAt = &now
	if err := s.store.Products().Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product. Purchases are an immutable ledger, so a
// product referenced by any purchase cannot be deleted; tag associations
// and ownership rows are cascade-removed in the same transaction.
func (s *ProductService) DeleteProduct(id string) error {
	return s.store.Atomically(func(tx repositories.Store) error {
		if _, err := tx.Products().GetByID(id); err != nil {
			return err
		}
		count, err := tx.Purchases().CountByProduct(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Conflict("product", id, "product is referenced by purchase records")
		}
		if err := tx.ProductTags().DeleteByProduct(id); err != nil {
			return err
		}
		if err := tx.UserProducts().DeleteByProduct(id); err != nil {
			return err
		}
		return tx.Products().Delete(id)
	})
}

// AddStock increases the stock of a product by quantity.
func (s *ProductService) AddStock(id string, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("product", "quantity", "quantity must be a positive integer")
	}
	var product *models.Product
	err := s.store.Atomically(func(tx repositories.Store) error {
		var err error
		product, err = tx.Products().GetByID(id)
		if err != nil {
			return err
		}
		product.QuantityInStock += quantity
		return tx.Products().Update(product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ReduceStock decreases the stock of a product by quantity. Reducing below
// zero is an InsufficientStock failure and leaves the stock unchanged.
func (s *ProductService) ReduceStock(id string, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("product", "quantity", "quantity must be a positive integer")
	}
	var product *models.Product
	err := s.store.Atomically(func(tx repositories.Store) error {
		var err error
		product, err = tx.Products().GetByID(id)
		if err != nil {
			return err
		}
		if product.QuantityInStock < quantity {
			return apperrors.InsufficientStock(product.Name, quantity, product.QuantityInStock)
		}
		product.QuantityInStock -= quantity
		return tx.Products().Update(product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
