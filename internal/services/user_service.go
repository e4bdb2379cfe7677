package services

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"betsy/internal/apperrors"
	"betsy/internal/models"
	"betsy/internal/repositories"
)

// UserService handles business logic for user accounts.
type UserService struct {
	store    repositories.Store
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(store repositories.Store) *UserService {
	return &UserService{
		store:    store,
		validate: validator.New(),
	}
}

// CreateUser validates and persists a new user. The Password field must
// hold the plaintext on input; it is bcrypt-hashed before anything is
// stored. Duplicate username or email is a typed Conflict.
func (s *UserService) CreateUser(user *models.User) (*models.User, error) {
	if err := s.validate.Struct(user); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return nil, apperrors.Validation("user", fieldErrs[0].Field(), "invalid value for "+fieldErrs[0].Field())
		}
		return nil, apperrors.Validation("user", "", err.Error())
	}
	if existing, err := s.store.Users().GetByUsername(user.Username); err == nil && existing != nil {
		return nil, apperrors.Conflict("user", user.Username, "username already taken")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if existing, err := s.store.Users().GetByEmail(user.Email); err == nil && existing != nil {
		return nil, apperrors.Conflict("user", user.Email, "email already registered")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.IO("failed to hash password", err)
	}
	user.Password = string(hashed)

	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a single user by their ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	return s.store.Users().GetByID(id)
}

// GetUserByUsername retrieves a user by their username.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.store.Users().GetByUsername(username)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.store.Users().GetAll()
}

// UpdateUser applies an allow-listed partial update to a user. A changed
// email is re-checked for uniqueness.
func (s *UserService) UpdateUser(id string, update models.UserUpdate) (*models.User, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, apperrors.Validation("user", "email", "invalid email address")
	}
	user, err := s.store.Users().GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if existing, err := s.store.Users().GetByEmail(*update.Email); err == nil && existing != nil {
			return nil, apperrors.Conflict("user", *update.Email, "email already registered")
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.Zipcode != nil {
		user.Zipcode = *update.Zipcode
	}
	if update.City != nil {
		user.City = *update.City
	}
	if update.State != nil {
		user.State = *update.State
	}
	if update.Country != nil {
		user.Country = *update.Country
	}
	if update.BillingName != nil {
		user.BillingName = *update.BillingName
	}
	if update.BillingAccount != nil {
		user.BillingAccount = *update.BillingAccount
	}

	now := time.Now()
	user.UpdatedAt = &now
	if err := s.store.Users().Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword re-hashes and stores a new password for the user.
func (s *UserService) UpdatePassword(id, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.Validation("user", "password", "password must be at least 6 characters")
	}
	user, err := s.store.Users().GetByID(id)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.IO("failed to hash password", err)
	}
	user.Password = string(hashed)
	now := time.Now()
	user.UpdatedAt = &now
	return s.store.Users().Update(user)
}

// SetAdmin flips the admin flag of a user.
func (s *UserService) SetAdmin(id string, admin bool) error {
	user, err := s.store.Users().GetByID(id)
	if err != nil {
		return err
	}
	user.Admin = admin
	now := time.Now()
	user.UpdatedAt = &now
	return s.store.Users().Update(user)
}

// DeleteUser removes a user together with their ownership rows. Purchases
// are an immutable ledger, so a user referenced by any purchase as buyer
// or seller cannot be deleted.
func (s *UserService) DeleteUser(id string) error {
	return s.store.Atomically(func(tx repositories.Store) error {
		if _, err := tx.Users().GetByID(id); err != nil {
			return err
		}
		count, err := tx.Purchases().CountByUser(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Conflict("user", id, "user is referenced by purchase records")
		}
		ups, err := tx.UserProducts().ListByUser(id)
		if err != nil {
			return err
		}
		for _, up := range ups {
			if err := tx.UserProducts().Delete(up.ID); err != nil {
				return err
			}
		}
		return tx.Users().Delete(id)
	})
}
