package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the category routes; all of them require a
// bearer token.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/category", auth, h.HandleListActive)
	router.Get("/category/inactive", auth, h.HandleListInactive)
	router.Get("/category/:id", auth, h.HandleRead)
	router.Post("/category", auth, h.HandleCreate)
	router.Put("/category/:id", auth, h.HandleUpdate)
	router.Delete("/category/:id", auth, h.HandleDestroy)
}

// CategoryCreateRequest is the category creation payload.
type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentId" validate:"omitempty,uuid"`
	Status      *bool   `json:"status"`
}

// CategoryUpdateRequest is the partial-update payload; absent fields stay
// unchanged.
type CategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId" validate:"omitempty,uuid"`
	Status      *bool   `json:"status"`
}

// HandleListActive returns the active categories. The split between active
// and inactive listings happens at the repository query, not client-side.
func (h *CategoryHandler) HandleListActive(c *fiber.Ctx) error {
	categories, err := h.service.GetActiveCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleListInactive returns the inactive categories.
func (h *CategoryHandler) HandleListInactive(c *fiber.Ctx) error {
	categories, err := h.service.GetInactiveCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleRead returns a single category by id.
func (h *CategoryHandler) HandleRead(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}
	if req.Status != nil {
		category.Status = *req.Status
	}

	if err := h.service.CreateCategory(&category); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate applies a partial update to a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var req CategoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	category, err := h.service.UpdateCategory(c.Params("id"), services.CategoryChanges{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		Status:      req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDestroy deletes a category and its product associations, responding
// with an empty object.
func (h *CategoryHandler) HandleDestroy(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{})
}
