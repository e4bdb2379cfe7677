package seed

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"betsy/internal/apperrors"
	"betsy/internal/models"
	"betsy/internal/services"
)

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Tag{},
		&models.ProductTag{},
		&models.Purchase{},
		&models.UserProduct{},
	)
}

type userFixture struct {
	username, name, email, address, zipcode, city, state, country, billingName, billingAccount string
}

type productFixture struct {
	name, description string
	price             string
	stock             int
}

// Populate fills the store with a small demo dataset. It is idempotent:
// fixtures already present (by unique name) are skipped, so it can run on
// every startup.
func Populate(users *services.UserService, products *services.ProductService, tags *services.TagService, commerce *services.CommerceService) error {
	userFixtures := []userFixture{
		{"emma1", "Emma Stone", "emma@example.com", "456 Pine St", "54321", "San Francisco", "CA", "USA", "Emma Stone", "1234509876"},
		{"max1", "Max Johnson", "max@example.com", "567 Oak St", "98765", "San Francisco", "CA", "USA", "Max J.", "0987654321"},
		{"dan1", "Dan Brown", "dan@example.com", "890 Maple Ave", "54321", "San Diego", "CA", "USA", "Dan Brown", "1122334455"},
	}
	for _, f := range userFixtures {
		_, err := users.CreateUser(&models.User{
			Username:       f.username,
			Name:           f.name,
			Email:          f.email,
			Address:        f.address,
			Zipcode:        f.zipcode,
			City:           f.city,
			State:          f.state,
			Country:        f.country,
			BillingName:    f.billingName,
			BillingAccount: f.billingAccount,
			Password:       "password123",
		})
		if err != nil && !apperrors.IsConflict(err) {
			return err
		}
		if err == nil {
			log.Printf("Seeded user: %s", f.username)
		}
	}

	productFixtures := []productFixture{
		{"iPhone 13", "Apple smartphone, 128GB", "799.00", 10},
		{"AirPods Pro", "Wireless noise-cancelling earbuds", "249.00", 25},
		{"MacBook Pro", "14-inch laptop, M1 Pro", "1999.00", 5},
	}
	for _, f := range productFixtures {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return err
		}
		_, err = products.CreateProduct(f.name, f.description, price, f.stock)
		if err != nil && !apperrors.IsConflict(err) {
			return err
		}
		if err == nil {
			log.Printf("Seeded product: %s", f.name)
		}
	}

	tagNames := []string{"Electronics", "Apple", "Headphones", "Laptops", "Wireless"}
	for _, name := range tagNames {
		_, err := tags.CreateTag(name, nil, nil, nil)
		if err != nil && !apperrors.IsConflict(err) {
			return err
		}
	}

	// Child tags under Electronics.
	if electronics, err := tags.GetTagByName("Electronics"); err == nil {
		for _, child := range []string{"Headphones", "Laptops"} {
			tag, err := tags.GetTagByName(child)
			if err != nil {
				return err
			}
			if tag.ParentID == nil {
				if _, err := tags.UpdateTag(tag.ID, models.TagUpdate{ParentID: &electronics.ID}); err != nil {
					return err
				}
			}
		}
	}

	associations := map[string][]string{
		"iPhone 13":   {"Electronics", "Apple"},
		"AirPods Pro": {"Electronics", "Apple", "Headphones", "Wireless"},
		"MacBook Pro": {"Electronics", "Apple", "Laptops"},
	}
	for productName, tagList := range associations {
		product, err := products.GetProductByName(productName)
		if err != nil {
			return err
		}
		for _, tagName := range tagList {
			tag, err := tags.GetTagByName(tagName)
			if err != nil {
				return err
			}
			if _, _, err := commerce.AddTagToProduct(product.ID, tag.ID); err != nil {
				return err
			}
		}
	}

	return nil
}
