package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// setupApp builds the full application against a per-test in-memory SQLite
// database: real repositories, services and handlers, no message broker.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.ProductCategory{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	txRunner := repositories.NewGormTxRunner(db)

	authService := services.NewAuthService(userRepo, testJWTSecret)
	userService := services.NewUserService(userRepo, authService)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, txRunner, nil)

	app := fiber.New()
	auth := middleware.AuthRequired(authService)
	handlers.NewUserHandler(userService, authService).RegisterRoutes(app, auth)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(app, auth)
	handlers.NewProductHandler(productService).RegisterRoutes(app, auth)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	resp.Body.Close()
	return resp, decoded
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, app *fiber.App, username, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/user", "", map[string]string{
		"firstName": "Jack",
		"lastName":  "Bauer",
		"username":  username,
		"email":     email,
		"roles":     "admin",
		"password":  "#24hoursRescuePresident",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createCategory(t *testing.T, app *fiber.App, token, name string, active bool) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/category", token, map[string]interface{}{
		"name":   name,
		"status": active,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	assert.NotEmpty(t, id)
	return id
}

type productResponse struct {
	models.Product
	Categories []models.Category `json:"categories"`
}

func decodeProduct(t *testing.T, body map[string]interface{}) productResponse {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)
	var p productResponse
	assert.NoError(t, json.Unmarshal(raw, &p))
	return p
}

func TestUserRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	// Registration responds with a token only, not the created fields.
	resp, body := doJSON(t, app, http.MethodPost, "/user", "", map[string]string{
		"firstName": "Jack",
		"lastName":  "Bauer",
		"username":  "jack_b",
		"email":     "jbauer@24hours.com",
		"roles":     "admin",
		"password":  "#24hoursRescuePresident",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	assert.NotContains(t, body, "email")
	assert.NotContains(t, body, "password")

	resp, body = doJSON(t, app, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "jbauer@24hours.com",
		"password": "#24hoursRescuePresident",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, _ := setupApp(t)
	registerUser(t, app, "jack_b", "jbauer@24hours.com")

	wrongResp, wrongBody := doJSON(t, app, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "jbauer@24hours.com",
		"password": "#wrongPassword1",
	})
	unknownResp, unknownBody := doJSON(t, app, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "nobody@24hours.com",
		"password": "#24hoursRescuePresident",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, "Email or Password invalid", wrongBody["message"])
	assert.Equal(t, wrongBody["message"], unknownBody["message"])
	assert.Equal(t, wrongBody["statusCode"], unknownBody["statusCode"])
}

func TestPasswordStoredAsHash(t *testing.T) {
	app, db := setupApp(t)
	registerUser(t, app, "jack_b", "jbauer@24hours.com")

	var user models.User
	assert.NoError(t, db.First(&user, "email = ?", "jbauer@24hours.com").Error)
	assert.NotEqual(t, "#24hoursRescuePresident", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestUserValidation(t *testing.T) {
	app, _ := setupApp(t)

	// Weak password.
	resp, body := doJSON(t, app, http.MethodPost, "/user", "", map[string]string{
		"firstName": "Jack",
		"lastName":  "Bauer",
		"username":  "jack_b",
		"email":     "jbauer@24hours.com",
		"password":  "weak",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "password")

	// Bad role.
	resp, body = doJSON(t, app, http.MethodPost, "/user", "", map[string]string{
		"firstName": "Jack",
		"lastName":  "Bauer",
		"username":  "jack_b",
		"email":     "jbauer@24hours.com",
		"roles":     "superhero",
		"password":  "#24hoursRescuePresident",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "roles")
}

func TestUserDeleteIsSelfOnly(t *testing.T) {
	app, db := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")
	registerUser(t, app, "nina_m", "nmyers@24hours.com")

	var self, other models.User
	assert.NoError(t, db.First(&self, "username = ?", "jack_b").Error)
	assert.NoError(t, db.First(&other, "username = ?", "nina_m").Error)

	resp, _ := doJSON(t, app, http.MethodDelete, "/user/"+other.ID, token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodDelete, "/user/"+self.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Where("id = ?", self.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCategoryActiveInactiveSplit(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")

	for i := 0; i < 4; i++ {
		createCategory(t, app, token, fmt.Sprintf("active-%d", i), true)
	}
	createCategory(t, app, token, "dormant", false)

	req := httptest.NewRequest(http.MethodGet, "/category", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var active []models.Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	assert.Len(t, active, 4)
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodGet, "/category/inactive", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var inactive []models.Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&inactive))
	assert.Len(t, inactive, 1)
	assert.Equal(t, "dormant", inactive[0].Name)
	resp.Body.Close()
}

func TestCategoryCRUD(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")

	id := createCategory(t, app, token, "instruments", true)

	resp, body := doJSON(t, app, http.MethodGet, "/category/"+id, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "instruments", body["name"])

	resp, body = doJSON(t, app, http.MethodPut, "/category/"+id, token, map[string]interface{}{
		"description": "musical instruments",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "musical instruments", body["description"])
	assert.Equal(t, "instruments", body["name"]) // untouched fields survive

	resp, body = doJSON(t, app, http.MethodDelete, "/category/"+id, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = doJSON(t, app, http.MethodGet, "/category/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, float64(http.StatusNotFound), body["statusCode"])
}

func TestProductCreateWithCategories(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")
	catA := createCategory(t, app, token, "strings", true)
	catB := createCategory(t, app, token, "acoustic", true)

	resp, body := doJSON(t, app, http.MethodPost, "/product", token, map[string]interface{}{
		"name":     "dreadnought guitar",
		"model":    "D-28",
		"upc":      "0123456789012",
		"price":    2899.99,
		"category": []string{catA, catB, catA}, // duplicate collapses
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	product := decodeProduct(t, body)
	assert.NotEmpty(t, product.ID)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("2899.99")))
	assert.Len(t, product.Categories, 2)
}

func TestProductCategoryAcceptsSingleID(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")
	catA := createCategory(t, app, token, "strings", true)

	resp, body := doJSON(t, app, http.MethodPost, "/product", token, map[string]interface{}{
		"name":     "mandolin",
		"price":    499.00,
		"category": catA,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	product := decodeProduct(t, body)
	assert.Len(t, product.Categories, 1)
	assert.Equal(t, catA, product.Categories[0].ID)
}

func TestProductWithoutCategories(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")

	resp, body := doJSON(t, app, http.MethodPost, "/product", token, map[string]interface{}{
		"name":  "capo",
		"price": 14.99,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	product := decodeProduct(t, body)
	assert.NotNil(t, product.Categories)
	assert.Empty(t, product.Categories)
}

func TestProductUnknownCategoryRollsBack(t *testing.T) {
	app, db := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")

	resp, body := doJSON(t, app, http.MethodPost, "/product", token, map[string]interface{}{
		"name":     "theremin",
		"price":    349.00,
		"category": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "00000000-0000-0000-0000-000000000000")

	// The product row rolled back with the failed reconciliation.
	var count int64
	assert.NoError(t, db.Model(&models.Product{}).Where("name = ?", "theremin").Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductUpdateReconcilesCategories(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")
	catA := createCategory(t, app, token, "strings", true)
	catB := createCategory(t, app, token, "acoustic", true)
	catC := createCategory(t, app, token, "vintage", true)

	resp, body := doJSON(t, app, http.MethodPost, "/product", token, map[string]interface{}{
		"name":     "parlor guitar",
		"price":    1199.00,
		"category": []string{catA, catB},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decodeProduct(t, body)

	// Reconcile to {B, C}: A is removed, C is added.
	resp, body = doJSON(t, app, http.MethodPut, "/product/"+product.ID, token, map[string]interface{}{
		"category": []string{catB, catC},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeProduct(t, body)
	assert.Len(t, updated.Categories, 2)
	ids := []string{updated.Categories[0].ID, updated.Categories[1].ID}
	assert.ElementsMatch(t, []string{catB, catC}, ids)

	// An update without a category field leaves associations untouched.
	resp, body = doJSON(t, app, http.MethodPut, "/product/"+product.ID, token, map[string]interface{}{
		"name": "parlor guitar (restored)",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated = decodeProduct(t, body)
	assert.Equal(t, "parlor guitar (restored)", updated.Name)
	assert.Len(t, updated.Categories, 2)

	// An explicit empty list clears the set.
	resp, body = doJSON(t, app, http.MethodPut, "/product/"+product.ID, token, map[string]interface{}{
		"category": []string{},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated = decodeProduct(t, body)
	assert.Empty(t, updated.Categories)
}

func TestProductPriceMustBePositive(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")

	resp, body := doJSON(t, app, http.MethodPost, "/product", token, map[string]interface{}{
		"name":  "broken amp",
		"price": -1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "price")
	assert.Contains(t, body["message"], "positive")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/product", "/category", "/category/inactive"} {
		resp, body := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, float64(http.StatusUnauthorized), body["statusCode"], path)
	}

	// A garbage token is rejected the same way.
	resp, _ := doJSON(t, app, http.MethodGet, "/product", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// User listing stays public.
	resp, _ = doJSON(t, app, http.MethodGet, "/user", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductNotFound(t *testing.T) {
	app, _ := setupApp(t)
	token := registerUser(t, app, "jack_b", "jbauer@24hours.com")

	resp, body := doJSON(t, app, http.MethodGet, "/product/ffffffff-ffff-ffff-ffff-ffffffffffff", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, float64(http.StatusNotFound), body["statusCode"])
	assert.Equal(t, "Not Found", body["error"])
}
