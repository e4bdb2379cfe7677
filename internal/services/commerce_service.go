package services

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"betsy/internal/apperrors"
	"betsy/internal/models"
	"betsy/internal/repositories"
	"betsy/pkg/rabbitmq"
)

// CommerceService handles the workflows that span multiple entities:
// purchasing, tag association and ownership tracking. Every mutation of
// more than one row runs inside a single store transaction.
type CommerceService struct {
	store    repositories.Store
	mqClient *rabbitmq.Client
}

// NewCommerceService creates a new CommerceService. mqClient may be nil;
// event publication is then skipped.
func NewCommerceService(store repositories.Store, mqClient *rabbitmq.Client) *CommerceService {
	return &CommerceService{
		store:    store,
		mqClient: mqClient,
	}
}

// PurchaseProduct buys quantity units of a product for the buyer. Stock is
// re-checked inside the transaction, the decrement and the ledger insert
// commit together or not at all.
func (s *CommerceService) PurchaseProduct(buyerID, productID string, quantity int) (*models.Purchase, error) {
	return s.purchase(buyerID, nil, productID, quantity)
}

// PurchaseFromSeller is a peer-to-peer purchase: same as PurchaseProduct
// but the selling user is resolved and recorded on the ledger entry.
func (s *CommerceService) PurchaseFromSeller(buyerID, sellerID, productID string, quantity int) (*models.Purchase, error) {
	return s.purchase(buyerID, &sellerID, productID, quantity)
}

func (s *CommerceService) purchase(buyerID string, sellerID *string, productID string, quantity int) (*models.Purchase, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("purchase", "quantity", "purchase quantity must be a positive integer")
	}

	var purchase *models.Purchase
	err := s.store.Atomically(func(tx repositories.Store) error {
		buyer, err := tx.Users().GetByID(buyerID)
		if err != nil {
			return err
		}
		if sellerID != nil {
			if _, err := tx.Users().GetByID(*sellerID); err != nil {
				return err
			}
		}
		product, err := tx.Products().GetByID(productID)
		if err != nil {
			return err
		}
		if product.QuantityInStock < quantity {
			return apperrors.InsufficientStock(product.Name, quantity, product.QuantityInStock)
		}

		// Amount is fixed here, at purchase time, and never recomputed.
		amount := product.PricePerUnit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

		product.QuantityInStock -= quantity
		if err := tx.Products().Update(product); err != nil {
			return err
		}

		purchase = &models.Purchase{
			BuyerID:     buyer.ID,
			SellerID:    sellerID,
			ProductID:   product.ID,
			Quantity:    quantity,
			Amount:      amount,
			Description: fmt.Sprintf("Purchase of %s", product.Name),
			Category:    "purchase",
			Account:     buyer.BillingAccount,
			Date:        time.Now(),
		}
		return tx.Purchases().Create(purchase)
	})
	if err != nil {
		return nil, err
	}

	s.publishPurchaseCreated(purchase)
	return purchase, nil
}

// publishPurchaseCreated emits a purchase.created event. Publication is
// best-effort: a broker failure is logged and never fails the purchase.
func (s *CommerceService) publishPurchaseCreated(purchase *models.Purchase) {
	if s.mqClient == nil {
		return
	}
	event := map[string]interface{}{
		"purchaseID": purchase.ID,
		"buyerID":    purchase.BuyerID,
		"productID":  purchase.ProductID,
		"quantity":   purchase.Quantity,
		"amount":     purchase.Amount.String(),
	}
	if err := s.mqClient.PublishPurchaseCreated(event); err != nil {
		log.Printf("Warning: failed to publish purchase created event for purchase %s: %v", purchase.ID, err)
	}
}

// AddTagToProduct associates a tag with a product. The second return value
// is false when an active association already existed; that outcome is
// idempotent, not an error. An inactive association is reactivated.
func (s *CommerceService) AddTagToProduct(productID, tagID string) (*models.ProductTag, bool, error) {
	var pt *models.ProductTag
	created := false
	err := s.store.Atomically(func(tx repositories.Store) error {
		product, err := tx.Products().GetByID(productID)
		if err != nil {
			return err
		}
		tag, err := tx.Tags().GetByID(tagID)
		if err != nil {
			return err
		}

		existing, err := tx.ProductTags().GetByProductAndTag(productID, tagID)
		if err == nil {
			pt = existing
			if !existing.IsActive {
				existing.IsActive = true
				now := time.Now()
				existing.UpdatedAt = &now
				if err := tx.ProductTags().Update(existing); err != nil {
					return err
				}
				created = true
			}
			return nil
		}
		if !apperrors.IsNotFound(err) {
			return err
		}

		pt = &models.ProductTag{
			ProductID: product.ID,
			TagID:     tag.ID,
			Name:      product.Name + "_" + tag.Name,
			IsActive:  true,
		}
		created = true
		return tx.ProductTags().Create(pt)
	})
	if err != nil {
		return nil, false, err
	}
	return pt, created, nil
}

// RemoveTagFromProduct removes the association between a product and a tag.
// The return value is false when no association existed; that outcome is
// not an error.
func (s *CommerceService) RemoveTagFromProduct(productID, tagID string) (bool, error) {
	removed := false
	err := s.store.Atomically(func(tx repositories.Store) error {
		if _, err := tx.Products().GetByID(productID); err != nil {
			return err
		}
		if _, err := tx.Tags().GetByID(tagID); err != nil {
			return err
		}

		existing, err := tx.ProductTags().GetByProductAndTag(productID, tagID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil
			}
			return err
		}
		if err := tx.ProductTags().Delete(existing.ID); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// AddProductToUser records that a user owns quantity units of a product.
// A second acquisition increments the quantity on the existing row; there
// is never more than one row per (user, product).
func (s *CommerceService) AddProductToUser(userID, productID string, quantity int) (*models.UserProduct, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("user product", "quantity", "quantity must be a positive integer")
	}

	var up *models.UserProduct
	err := s.store.Atomically(func(tx repositories.Store) error {
		if _, err := tx.Users().GetByID(userID); err != nil {
			return err
		}
		if _, err := tx.Products().GetByID(productID); err != nil {
			return err
		}

		existing, err := tx.UserProducts().GetByUserAndProduct(userID, productID)
		if err == nil {
			existing.Quantity += quantity
			now := time.Now()
			existing.UpdatedAt = &now
			if err := tx.UserProducts().Update(existing); err != nil {
				return err
			}
			up = existing
			return nil
		}
		if !apperrors.IsNotFound(err) {
			return err
		}

		up = &models.UserProduct{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			IsActive:  true,
		}
		return tx.UserProducts().Create(up)
	})
	if err != nil {
		return nil, err
	}
	return up, nil
}

// GetPurchase retrieves a single ledger entry by its ID.
func (s *CommerceService) GetPurchase(id string) (*models.Purchase, error) {
	return s.store.Purchases().GetByID(id)
}

// ListPurchasesByUser retrieves all purchases made by a user.
func (s *CommerceService) ListPurchasesByUser(userID string) ([]models.Purchase, error) {
	if _, err := s.store.Users().GetByID(userID); err != nil {
		return nil, err
	}
	return s.store.Purchases().ListByBuyer(userID)
}

// ListTagsOfProduct retrieves the tags actively associated with a product.
func (s *CommerceService) ListTagsOfProduct(productID string) ([]models.Tag, error) {
	if _, err := s.store.Products().GetByID(productID); err != nil {
		return nil, err
	}
	associations, err := s.store.ProductTags().ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	tags := make([]models.Tag, 0, len(associations))
	for _, pt := range associations {
		if !pt.IsActive {
			continue
		}
		tag, err := s.store.Tags().GetByID(pt.TagID)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// ListPurchases retrieves the whole ledger.
func (s *CommerceService) ListPurchases() ([]models.Purchase, error) {
	return s.store.Purchases().GetAll()
}

// ListProductsOfTag retrieves the products actively associated with a tag.
func (s *CommerceService) ListProductsOfTag(tagID string) ([]models.Product, error) {
	if _, err := s.store.Tags().GetByID(tagID); err != nil {
		return nil, err
	}
	associations, err := s.store.ProductTags().ListByTag(tagID)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(associations))
	for _, pt := range associations {
		if !pt.IsActive {
			continue
		}
		product, err := s.store.Products().GetByID(pt.ProductID)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

// ListOwnersOfProduct retrieves the ownership rows referencing a product.
func (s *CommerceService) ListOwnersOfProduct(productID string) ([]models.UserProduct, error) {
	if _, err := s.store.Products().GetByID(productID); err != nil {
		return nil, err
	}
	return s.store.UserProducts().ListByProduct(productID)
}

// ListProductsOfUser retrieves the ownership rows of a user.
func (s *CommerceService) ListProductsOfUser(userID string) ([]models.UserProduct, error) {
	if _, err := s.store.Users().GetByID(userID); err != nil {
		return nil, err
	}
	return s.store.UserProducts().ListByUser(userID)
}
