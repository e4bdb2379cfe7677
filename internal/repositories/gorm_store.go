package repositories

import (
	"errors"

	"gorm.io/gorm"

	"betsy/internal/apperrors"
)

// GORMStore is a GORM implementation of Store. Atomically rebinds the
// store to the transaction handle GORM hands out, so the same repository
// code serves both transactional and plain access.
type GORMStore struct {
	db           *gorm.DB
	users        *GORMUserRepository
	products     *GORMProductRepository
	tags         *GORMTagRepository
	productTags  *GORMProductTagRepository
	purchases    *GORMPurchaseRepository
	userProducts *GORMUserProductRepository
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db:           db,
		users:        NewGORMUserRepository(db),
		products:     NewGORMProductRepository(db),
		tags:         NewGORMTagRepository(db),
		productTags:  NewGORMProductTagRepository(db),
		purchases:    NewGORMPurchaseRepository(db),
		userProducts: NewGORMUserProductRepository(db),
	}
}

func (s *GORMStore) Users() UserRepository               { return s.users }
func (s *GORMStore) Products() ProductRepository         { return s.products }
func (s *GORMStore) Tags() TagRepository                 { return s.tags }
func (s *GORMStore) ProductTags() ProductTagRepository   { return s.productTags }
func (s *GORMStore) Purchases() PurchaseRepository       { return s.purchases }
func (s *GORMStore) UserProducts() UserProductRepository { return s.userProducts }

// Atomically runs fn inside a database transaction. Typed application
// errors pass through unchanged; anything else coming out of the
// transaction machinery itself is surfaced as an IO failure.
func (s *GORMStore) Atomically(fn func(tx Store) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.IO("transaction failed", err)
}
