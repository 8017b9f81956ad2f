package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts, registration and
// login included.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the user routes. Listing and registration are
// public; everything else requires a bearer token.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/user", h.HandleList)
	router.Get("/user/:id", auth, h.HandleRead)
	router.Post("/user", h.HandleCreate)
	router.Post("/user/login", h.HandleLogin)
	router.Put("/user/:id", auth, h.HandleUpdate)
	router.Delete("/user/:id", auth, h.HandleDestroy)
}

// UserCreateRequest is the registration payload.
type UserCreateRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	Username  string `json:"username" validate:"required,min=1,max=40"`
	Roles     string `json:"roles" validate:"omitempty,oneof=admin publisher customer"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,max=30,strong_password"`
}

// UserUpdateRequest is the partial-update payload; absent fields stay
// unchanged.
type UserUpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Username  *string `json:"username" validate:"omitempty,min=1,max=40"`
	Roles     *string `json:"roles" validate:"omitempty,oneof=admin publisher customer"`
	Email     *string `json:"email" validate:"omitempty,email,max=120"`
	Password  *string `json:"password" validate:"omitempty,max=30,strong_password"`
	Status    *bool   `json:"status"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleList returns all users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleRead returns a single user by id.
func (h *UserHandler) HandleRead(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleCreate registers a new user and responds with a bearer token only;
// the created account's fields are not echoed back.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Roles:     req.Roles,
		Email:     req.Email,
		Password:  req.Password,
	}

	token, err := h.authService.Register(&user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

// HandleLogin authenticates by email and password and responds with a
// bearer token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// HandleUpdate applies a partial update to a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := h.userService.UpdateUser(c.Params("id"), services.UserChanges{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Roles:     req.Roles,
		Email:     req.Email,
		Password:  req.Password,
		Status:    req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDestroy deletes a user account. Accounts can only delete
// themselves.
func (h *UserHandler) HandleDestroy(c *fiber.Ctx) error {
	id := c.Params("id")
	if callerID, _ := c.Locals("user_id").(string); callerID != id {
		return errorJSON(c, fiber.StatusUnauthorized, "users can only delete their own account")
	}

	if err := h.userService.DeleteUser(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{})
}
