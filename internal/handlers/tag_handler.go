package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"betsy/internal/models"
	"betsy/internal/services"
)

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	service  *services.TagService
	commerce *services.CommerceService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(service *services.TagService, commerce *services.CommerceService) *TagHandler {
	return &TagHandler{
		service:  service,
		commerce: commerce,
	}
}

// RegisterRoutes registers the tag routes with the Fiber app.
func (h *TagHandler) RegisterRoutes(router fiber.Router) {
	tagRoutes := router.Group("/tags")
	tagRoutes.Get("/", h.HandleListTags)
	tagRoutes.Get("/:id", h.HandleGetTag)
	tagRoutes.Get("/:id/children", h.HandleListChildren)
	tagRoutes.Get("/:id/products", h.HandleListTagProducts)
	tagRoutes.Post("/", h.HandleCreateTag)
	tagRoutes.Patch("/:id", h.HandleUpdateTag)
	tagRoutes.Delete("/:id", h.HandleDeleteTag)
}

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// HandleListTags retrieves all tags.
func (h *TagHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.service.ListTags()
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// HandleGetTag retrieves a single tag by its ID.
func (h *TagHandler) HandleGetTag(c *fiber.Ctx) error {
	tag, err := h.service.GetTag(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// HandleListChildren retrieves the direct children of a tag.
func (h *TagHandler) HandleListChildren(c *fiber.Ctx) error {
	children, err := h.service.ListChildren(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(children)
}

// HandleListTagProducts retrieves the products carrying a tag.
func (h *TagHandler) HandleListTagProducts(c *fiber.Ctx) error {
	products, err := h.commerce.ListProductsOfTag(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleCreateTag creates a new tag.
func (h *TagHandler) HandleCreateTag(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	tag, err := h.service.CreateTag(req.Name, req.Description, req.Color, req.ParentID)
	if err != nil {
		log.Printf("Error creating tag: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// HandleUpdateTag applies a partial update to a tag.
func (h *TagHandler) HandleUpdateTag(c *fiber.Ctx) error {
	var update models.TagUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	tag, err := h.service.UpdateTag(c.Params("id"), update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// HandleDeleteTag deletes a tag by its ID.
func (h *TagHandler) HandleDeleteTag(c *fiber.Ctx) error {
	if err := h.service.DeleteTag(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Tag deleted successfully",
	})
}
