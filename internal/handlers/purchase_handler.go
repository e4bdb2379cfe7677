package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"betsy/internal/services"
)

// PurchaseHandler handles HTTP requests for purchases and ownership
// tracking.
type PurchaseHandler struct {
	commerce *services.CommerceService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(commerce *services.CommerceService) *PurchaseHandler {
	return &PurchaseHandler{
		commerce: commerce,
	}
}

// RegisterRoutes registers the purchase routes with the Fiber app.
func (h *PurchaseHandler) RegisterRoutes(router fiber.Router) {
	purchaseRoutes := router.Group("/purchases")
	purchaseRoutes.Get("/", h.HandleListPurchases)
	purchaseRoutes.Post("/", h.HandlePurchase)
	purchaseRoutes.Get("/:id", h.HandleGetPurchase)

	userRoutes := router.Group("/users")
	userRoutes.Get("/:id/purchases", h.HandleListUserPurchases)
	userRoutes.Get("/:id/products", h.HandleListUserProducts)
	userRoutes.Post("/:id/products", h.HandleAddProductToUser)
}

// PurchaseRequest represents the request body for a purchase. SellerID is
// optional; when present the purchase is recorded as peer-to-peer.
type PurchaseRequest struct {
	BuyerID   string  `json:"buyer_id"`
	SellerID  *string `json:"seller_id,omitempty"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
}

// HandlePurchase executes a purchase workflow.
func (h *PurchaseHandler) HandlePurchase(c *fiber.Ctx) error {
	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing purchase request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	var (
		purchase interface{}
		err      error
	)
	if req.SellerID != nil {
		purchase, err = h.commerce.PurchaseFromSeller(req.BuyerID, *req.SellerID, req.ProductID, req.Quantity)
	} else {
		purchase, err = h.commerce.PurchaseProduct(req.BuyerID, req.ProductID, req.Quantity)
	}
	if err != nil {
		log.Printf("Error executing purchase: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// HandleListPurchases retrieves the whole purchase ledger.
func (h *PurchaseHandler) HandleListPurchases(c *fiber.Ctx) error {
	purchases, err := h.commerce.ListPurchases()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchases)
}

// HandleGetPurchase retrieves a single purchase by its ID.
func (h *PurchaseHandler) HandleGetPurchase(c *fiber.Ctx) error {
	purchase, err := h.commerce.GetPurchase(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// HandleListUserPurchases lists all purchases made by a user.
func (h *PurchaseHandler) HandleListUserPurchases(c *fiber.Ctx) error {
	purchases, err := h.commerce.ListPurchasesByUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchases)
}

// HandleListUserProducts lists the ownership rows of a user.
func (h *PurchaseHandler) HandleListUserProducts(c *fiber.Ctx) error {
	ups, err := h.commerce.ListProductsOfUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ups)
}

// OwnershipRequest represents the request body for adding a product to a
// user's inventory.
type OwnershipRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddProductToUser records product ownership for a user, creating or
// incrementing the (user, product) row.
func (h *PurchaseHandler) HandleAddProductToUser(c *fiber.Ctx) error {
	var req OwnershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	up, err := h.commerce.AddProductToUser(c.Params("id"), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(up)
}
