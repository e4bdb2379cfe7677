package services_test

import (
	"github.com/stretchr/testify/mock"

	"betsy/internal/models"
	"betsy/internal/repositories"
)

// MockStore bundles mock repositories behind the Store interface.
// Atomically simply runs fn against the same store; transactional
// behavior is covered by the sqlite-backed tests.
type MockStore struct {
	users        repositories.UserRepository
	products     repositories.ProductRepository
	tags         repositories.TagRepository
	productTags  repositories.ProductTagRepository
	purchases    repositories.PurchaseRepository
	userProducts repositories.UserProductRepository
}

func (s *MockStore) Users() repositories.UserRepository               { return s.users }
func (s *MockStore) Products() repositories.ProductRepository         { return s.products }
func (s *MockStore) Tags() repositories.TagRepository                 { return s.tags }
func (s *MockStore) ProductTags() repositories.ProductTagRepository   { return s.productTags }
func (s *MockStore) Purchases() repositories.PurchaseRepository       { return s.purchases }
func (s *MockStore) UserProducts() repositories.UserProductRepository { return s.userProducts }

func (s *MockStore) Atomically(fn func(tx repositories.Store) error) error {
	return fn(s)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByName(name string) (*models.Product, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByName(keyword string) ([]models.Product, error) {
	args := m.Called(keyword)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}
