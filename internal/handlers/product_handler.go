package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products. Create and update
// carry an optional `category` field that is reconciled into association
// rows together with the product write.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes; all of them require a bearer
// token.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/product", auth, h.HandleList)
	router.Get("/product/:id", auth, h.HandleRead)
	router.Post("/product", auth, h.HandleCreate)
	router.Put("/product/:id", auth, h.HandleUpdate)
	router.Delete("/product/:id", auth, h.HandleDestroy)
}

// ProductCreateRequest is the product creation payload. Category accepts a
// single id or a list of ids.
type ProductCreateRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=100"`
	Description string              `json:"description"`
	Model       string              `json:"model" validate:"omitempty,max=50"`
	Upc         string              `json:"upc" validate:"omitempty,max=13"`
	Price       decimal.Decimal     `json:"price" validate:"required,gt=0"`
	Status      *bool               `json:"status"`
	Category    *models.CategoryIDs `json:"category"`
}

// ProductUpdateRequest is the partial-update payload; absent fields stay
// unchanged. An absent Category leaves the association set as it is, while
// an empty list clears it.
type ProductUpdateRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string             `json:"description"`
	Model       *string             `json:"model" validate:"omitempty,max=50"`
	Upc         *string             `json:"upc" validate:"omitempty,max=13"`
	Price       *decimal.Decimal    `json:"price" validate:"omitempty,gt=0"`
	Status      *bool               `json:"status"`
	Category    *models.CategoryIDs `json:"category"`
}

// productResponse is a product merged with its current categories.
type productResponse struct {
	models.Product
	Categories []models.Category `json:"categories"`
}

// HandleList returns all products.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleRead returns a single product by id.
func (h *ProductHandler) HandleRead(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreate creates a product and associates it with the requested
// categories in one transaction.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Model:       req.Model,
		Upc:         req.Upc,
		Price:       req.Price,
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	var categoryIDs []string
	if req.Category != nil {
		categoryIDs = []string(*req.Category)
	}

	created, categories, err := h.service.CreateProduct(&product, categoryIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(productResponse{
		Product:    *created,
		Categories: ensureCategories(categories),
	})
}

// HandleUpdate applies a partial update and, when the payload carries a
// category field, reconciles the association set with it.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	var categoryIDs *[]string
	if req.Category != nil {
		ids := []string(*req.Category)
		categoryIDs = &ids
	}

	updated, categories, err := h.service.UpdateProduct(c.Params("id"), services.ProductChanges{
		Name:        req.Name,
		Description: req.Description,
		Model:       req.Model,
		Upc:         req.Upc,
		Price:       req.Price,
		Status:      req.Status,
	}, categoryIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productResponse{
		Product:    *updated,
		Categories: ensureCategories(categories),
	})
}

// HandleDestroy deletes a product and its category associations, responding
// with an empty object.
func (h *ProductHandler) HandleDestroy(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{})
}

// ensureCategories keeps the categories attribute an array in JSON even when
// there are no associations.
func ensureCategories(categories []models.Category) []models.Category {
	if categories == nil {
		return []models.Category{}
	}
	return categories
}
