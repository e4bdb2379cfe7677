package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"betsy/internal/models"
	"betsy/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	commerce *services.CommerceService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, commerce *services.CommerceService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		commerce: commerce,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/stock", h.HandleAdjustStock)
	productRoutes.Get("/:id/tags", h.HandleListProductTags)
	productRoutes.Get("/:id/owners", h.HandleListProductOwners)
	productRoutes.Put("/:id/tags/:tagId", h.HandleAddTag)
	productRoutes.Delete("/:id/tags/:tagId", h.HandleRemoveTag)
}

// CreateProductRequest represents the request body for product creation.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	QuantityInStock int             `json:"quantity_in_stock"`
}

// HandleListProducts retrieves all products, optionally filtered by a
// search keyword.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	keyword := c.Query("q")
	var (
		products []models.Product
		err      error
	)
	if keyword != "" {
		products, err = h.service.SearchProducts(keyword)
	} else {
		products, err = h.service.ListProducts()
	}
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(req.Name, req.Description, req.PricePerUnit, req.QuantityInStock)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var update models.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(c.Params("id"), update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// StockRequest represents a stock adjustment body. Positive quantities add
// stock, negative quantities reduce it.
type StockRequest struct {
	Quantity int `json:"quantity"`
}

// HandleAdjustStock adds or removes stock of a product.
func (h *ProductHandler) HandleAdjustStock(c *fiber.Ctx) error {
	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	var (
		product *models.Product
		err     error
	)
	if req.Quantity >= 0 {
		product, err = h.service.AddStock(c.Params("id"), req.Quantity)
	} else {
		product, err = h.service.ReduceStock(c.Params("id"), -req.Quantity)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleListProductTags lists the tags associated with a product.
func (h *ProductHandler) HandleListProductTags(c *fiber.Ctx) error {
	tags, err := h.commerce.ListTagsOfProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// HandleListProductOwners lists the ownership rows referencing a product.
func (h *ProductHandler) HandleListProductOwners(c *fiber.Ctx) error {
	owners, err := h.commerce.ListOwnersOfProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(owners)
}

// HandleAddTag associates a tag with a product. Adding an already
// associated tag is idempotent.
func (h *ProductHandler) HandleAddTag(c *fiber.Ctx) error {
	pt, created, err := h.commerce.AddTagToProduct(c.Params("id"), c.Params("tagId"))
	if err != nil {
		return respondError(c, err)
	}
	if !created {
		return c.JSON(fiber.Map{
			"message":     "Tag already associated with product",
			"association": pt,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(pt)
}

// HandleRemoveTag removes the association between a product and a tag.
func (h *ProductHandler) HandleRemoveTag(c *fiber.Ctx) error {
	removed, err := h.commerce.RemoveTagFromProduct(c.Params("id"), c.Params("tagId"))
	if err != nil {
		return respondError(c, err)
	}
	if !removed {
		return c.JSON(fiber.Map{
			"message": "No association between product and tag",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Tag removed from product",
	})
}
