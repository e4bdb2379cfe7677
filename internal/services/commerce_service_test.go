package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"betsy/internal/apperrors"
	"betsy/internal/services"
)

func TestCommerceService_PurchaseProduct(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	purchase, err := commerce.PurchaseProduct(buyer.ID, widget.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, buyer.ID, purchase.BuyerID)
	assert.Nil(t, purchase.SellerID)
	assert.Equal(t, widget.ID, purchase.ProductID)
	assert.Equal(t, 3, purchase.Quantity)
	assert.True(t, decimal.RequireFromString("30.00").Equal(purchase.Amount))
	assert.Equal(t, buyer.BillingAccount, purchase.Account)

	reloaded, err := products.GetProduct(widget.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, reloaded.QuantityInStock)

	history, err := commerce.ListPurchasesByUser(buyer.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCommerceService_PurchaseProduct_InsufficientStock(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 3)
	assert.NoError(t, err)

	// Only 2 units remain; a second purchase of 3 must fail and leave
	// stock and ledger untouched.
	purchase, err := commerce.PurchaseProduct(buyer.ID, widget.ID, 3)
	assert.Error(t, err)
	assert.True(t, apperrors.IsInsufficientStock(err))
	assert.Nil(t, purchase)

	reloaded, err := products.GetProduct(widget.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, reloaded.QuantityInStock)

	history, err := commerce.ListPurchasesByUser(buyer.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCommerceService_PurchaseProduct_SequentialRereadsStock(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	// Each purchase re-checks stock inside its own transaction, so the
	// second sees the first's decrement.
	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 3)
	assert.NoError(t, err)
	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 2)
	assert.NoError(t, err)

	reloaded, err := products.GetProduct(widget.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, reloaded.QuantityInStock)

	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 1)
	assert.True(t, apperrors.IsInsufficientStock(err))
}

func TestCommerceService_PurchaseFromSeller(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	seller := createTestUser(t, store, "seller1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	purchase, err := commerce.PurchaseFromSeller(buyer.ID, seller.ID, widget.ID, 2)
	assert.NoError(t, err)
	assert.NotNil(t, purchase.SellerID)
	assert.Equal(t, seller.ID, *purchase.SellerID)
	assert.True(t, decimal.RequireFromString("20.00").Equal(purchase.Amount))
}

func TestCommerceService_PurchaseFromSeller_UnknownSeller(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	purchase, err := commerce.PurchaseFromSeller(buyer.ID, "no-such-seller", widget.ID, 2)
	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, purchase)

	// A failed resolution must not touch the stock.
	reloaded, err := products.GetProduct(widget.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, reloaded.QuantityInStock)
}

func TestCommerceService_PurchaseProduct_UnknownBuyer(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	purchase, err := commerce.PurchaseProduct("no-such-user", widget.ID, 1)
	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, purchase)
}

func TestCommerceService_PurchaseProduct_InvalidQuantity(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	for _, quantity := range []int{0, -1} {
		purchase, err := commerce.PurchaseProduct(buyer.ID, widget.ID, quantity)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Nil(t, purchase)
	}
}

func TestCommerceService_AddTagToProduct_Idempotent(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	tags := services.NewTagService(store)
	commerce := services.NewCommerceService(store, nil)

	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)
	gadgets, err := tags.CreateTag("Gadgets", nil, nil, nil)
	assert.NoError(t, err)

	pt, created, err := commerce.AddTagToProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, widget.ID, pt.ProductID)
	assert.Equal(t, gadgets.ID, pt.TagID)

	// Adding the same tag again reports the existing association instead
	// of failing or duplicating.
	again, created, err := commerce.AddTagToProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, pt.ID, again.ID)

	listed, err := commerce.ListTagsOfProduct(widget.ID)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "Gadgets", listed[0].Name)
}

func TestCommerceService_RemoveTagFromProduct(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	tags := services.NewTagService(store)
	commerce := services.NewCommerceService(store, nil)

	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)
	gadgets, err := tags.CreateTag("Gadgets", nil, nil, nil)
	assert.NoError(t, err)

	_, _, err = commerce.AddTagToProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)

	removed, err := commerce.RemoveTagFromProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	// Removing an association that no longer exists is a no-op.
	removed, err = commerce.RemoveTagFromProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)
	assert.False(t, removed)

	listed, err := commerce.ListTagsOfProduct(widget.ID)
	assert.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCommerceService_AddProductToUser_Increments(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	owner := createTestUser(t, store, "owner1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	first, err := commerce.AddProductToUser(owner.ID, widget.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := commerce.AddProductToUser(owner.ID, widget.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	// Still exactly one ownership row for the pair.
	rows, err := commerce.ListProductsOfUser(owner.ID)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
}

func TestCommerceService_ListProductsOfTag(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	tags := services.NewTagService(store)
	commerce := services.NewCommerceService(store, nil)

	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)
	gear, err := products.CreateProduct("Gear", "A test gear", decimal.RequireFromString("4.00"), 7)
	assert.NoError(t, err)
	_, err = products.CreateProduct("Sprocket", "An untagged sprocket", decimal.RequireFromString("2.50"), 3)
	assert.NoError(t, err)
	gadgets, err := tags.CreateTag("Gadgets", nil, nil, nil)
	assert.NoError(t, err)

	_, _, err = commerce.AddTagToProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)
	_, _, err = commerce.AddTagToProduct(gear.ID, gadgets.ID)
	assert.NoError(t, err)

	listed, err := commerce.ListProductsOfTag(gadgets.ID)
	assert.NoError(t, err)
	assert.Len(t, listed, 2)

	// Removing an association narrows the listing.
	_, err = commerce.RemoveTagFromProduct(gear.ID, gadgets.ID)
	assert.NoError(t, err)
	listed, err = commerce.ListProductsOfTag(gadgets.ID)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "Widget", listed[0].Name)

	_, err = commerce.ListProductsOfTag("no-such-tag")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCommerceService_ListOwnersOfProduct(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	emma := createTestUser(t, store, "emma1")
	max := createTestUser(t, store, "max1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	_, err = commerce.AddProductToUser(emma.ID, widget.ID, 2)
	assert.NoError(t, err)
	_, err = commerce.AddProductToUser(max.ID, widget.ID, 1)
	assert.NoError(t, err)

	owners, err := commerce.ListOwnersOfProduct(widget.ID)
	assert.NoError(t, err)
	assert.Len(t, owners, 2)

	_, err = commerce.ListOwnersOfProduct("no-such-product")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCommerceService_ListPurchases(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	ledger, err := commerce.ListPurchases()
	assert.NoError(t, err)
	assert.Empty(t, ledger)

	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 1)
	assert.NoError(t, err)
	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 2)
	assert.NoError(t, err)

	ledger, err = commerce.ListPurchases()
	assert.NoError(t, err)
	assert.Len(t, ledger, 2)
}

func TestCommerceService_AddProductToUser_InvalidQuantity(t *testing.T) {
	store := newTestStore(t)
	commerce := services.NewCommerceService(store, nil)

	up, err := commerce.AddProductToUser("user-1", "prod-1", 0)
	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, up)
}

func TestProductService_DeleteProduct_BlockedByPurchases(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	commerce := services.NewCommerceService(store, nil)

	buyer := createTestUser(t, store, "buyer1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	_, err = commerce.PurchaseProduct(buyer.ID, widget.ID, 1)
	assert.NoError(t, err)

	// The ledger references the product, so deletion is refused.
	err = products.DeleteProduct(widget.ID)
	assert.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	_, err = products.GetProduct(widget.ID)
	assert.NoError(t, err)
}

func TestProductService_DeleteProduct_CascadesAssociations(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)
	tags := services.NewTagService(store)
	commerce := services.NewCommerceService(store, nil)

	owner := createTestUser(t, store, "owner1")
	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)
	gadgets, err := tags.CreateTag("Gadgets", nil, nil, nil)
	assert.NoError(t, err)

	_, _, err = commerce.AddTagToProduct(widget.ID, gadgets.ID)
	assert.NoError(t, err)
	_, err = commerce.AddProductToUser(owner.ID, widget.ID, 1)
	assert.NoError(t, err)

	err = products.DeleteProduct(widget.ID)
	assert.NoError(t, err)

	_, err = products.GetProduct(widget.ID)
	assert.True(t, apperrors.IsNotFound(err))

	// Associations went with the product; the tag itself survives.
	rows, err := commerce.ListProductsOfUser(owner.ID)
	assert.NoError(t, err)
	assert.Empty(t, rows)
	_, err = tags.GetTag(gadgets.ID)
	assert.NoError(t, err)
}

func TestProductService_Stock(t *testing.T) {
	store := newTestStore(t)
	products := services.NewProductService(store)

	widget, err := products.CreateProduct("Widget", "A test widget", decimal.RequireFromString("10.00"), 5)
	assert.NoError(t, err)

	updated, err := products.AddStock(widget.ID, 10)
	assert.NoError(t, err)
	assert.Equal(t, 15, updated.QuantityInStock)

	updated, err = products.ReduceStock(widget.ID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 11, updated.QuantityInStock)

	_, err = products.ReduceStock(widget.ID, 12)
	assert.Error(t, err)
	assert.True(t, apperrors.IsInsufficientStock(err))

	reloaded, err := products.GetProduct(widget.ID)
	assert.NoError(t, err)
	assert.Equal(t, 11, reloaded.QuantityInStock)
}
