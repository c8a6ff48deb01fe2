package menuControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/auth"
	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/routes"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{}, &models.Group{}, &models.Category{}, &models.MenuItem{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		var group models.Group
		if err := db.Where(models.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
			t.Fatalf("failed to seed group %q: %v", name, err)
		}
	}

	r := gin.New()
	routes.SetupRoutes(r, db)
	return db, r
}

func createUser(t *testing.T, db *gorm.DB, username string, groupNames ...string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	for _, name := range groupNames {
		var group models.Group
		if err := db.Where("name = ?", name).First(&group).Error; err != nil {
			t.Fatalf("group %q missing: %v", name, err)
		}
		if err := db.Model(&group).Association("Users").Append(&user); err != nil {
			t.Fatalf("failed to add %q to %q: %v", username, name, err)
		}
	}
	return user
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()
	token, _, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedCategory(t *testing.T, db *gorm.DB, slug, title string) models.Category {
	t.Helper()
	category := models.Category{Slug: slug, Title: title}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

type menuListResponse struct {
	Count    int64             `json:"count"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Results  []models.MenuItem `json:"results"`
}

func TestMenuItems(t *testing.T) {
	db, r := setupTest(t)
	manager := createUser(t, db, "mia", models.GroupManager)
	alice := createUser(t, db, "alice")
	desserts := seedCategory(t, db, "desserts", "Desserts")
	mains := seedCategory(t, db, "mains", "Mains")

	t.Run("customer cannot create menu items", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/menu-items", bearer(t, alice),
			gin.H{"title": "Tiramisu", "price": 6.0, "category_id": desserts.ID})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("manager creates a menu item", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/menu-items", bearer(t, manager),
			gin.H{"title": "Tiramisu", "price": 6.0, "featured": true, "inventory": 12, "category_id": desserts.ID})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/menu-items", bearer(t, manager),
			gin.H{"title": "Mystery", "price": 1.0, "category_id": 9999})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("search matches category title", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/menu-items?search=dessert", bearer(t, alice), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp menuListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Count != 1 || resp.Results[0].Title != "Tiramisu" {
			t.Errorf("unexpected search result: %+v", resp)
		}
	})

	t.Run("pagination defaults and caps", func(t *testing.T) {
		for i := 0; i < 7; i++ {
			item := models.MenuItem{Title: fmt.Sprintf("Pasta %d", i), Price: 5.0, CategoryID: mains.ID}
			if err := db.Create(&item).Error; err != nil {
				t.Fatalf("failed to seed item: %v", err)
			}
		}

		w := doRequest(t, r, http.MethodGet, "/menu-items", bearer(t, alice), nil)
		var resp menuListResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.PageSize != 5 || len(resp.Results) != 5 {
			t.Errorf("expected default page of 5, got size=%d len=%d", resp.PageSize, len(resp.Results))
		}
		if resp.Count != 8 {
			t.Errorf("expected count 8, got %d", resp.Count)
		}

		w = doRequest(t, r, http.MethodGet, "/menu-items?page=2", bearer(t, alice), nil)
		json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp.Results) != 3 {
			t.Errorf("expected 3 results on page 2, got %d", len(resp.Results))
		}

		w = doRequest(t, r, http.MethodGet, "/menu-items?page_size=500", bearer(t, alice), nil)
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.PageSize != 50 {
			t.Errorf("expected page_size capped at 50, got %d", resp.PageSize)
		}
	})

	t.Run("sort by price descending", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/menu-items?sort_by=price&order=desc", bearer(t, alice), nil)
		var resp menuListResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp.Results) == 0 || resp.Results[0].Price != 6.0 {
			t.Errorf("expected most expensive item first: %+v", resp.Results)
		}
	})

	t.Run("invalid sort field rejected", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/menu-items?sort_by=title", bearer(t, alice), nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("partial update touches only sent fields", func(t *testing.T) {
		var item models.MenuItem
		if err := db.Where("title = ?", "Tiramisu").First(&item).Error; err != nil {
			t.Fatalf("seed item missing: %v", err)
		}

		path := fmt.Sprintf("/menu-items/%d", item.ID)
		w := doRequest(t, r, http.MethodPatch, path, bearer(t, manager), gin.H{"price": 7.5})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var saved models.MenuItem
		db.First(&saved, item.ID)
		if saved.Price != 7.5 || saved.Title != "Tiramisu" || !saved.Featured {
			t.Errorf("unexpected state after patch: %+v", saved)
		}
	})

	t.Run("customer cannot delete", func(t *testing.T) {
		var item models.MenuItem
		db.Where("title = ?", "Tiramisu").First(&item)

		path := fmt.Sprintf("/menu-items/%d", item.ID)
		w := doRequest(t, r, http.MethodDelete, path, bearer(t, alice), nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}
	})

	t.Run("manager deletes a menu item", func(t *testing.T) {
		var item models.MenuItem
		db.Where("title = ?", "Tiramisu").First(&item)

		path := fmt.Sprintf("/menu-items/%d", item.ID)
		w := doRequest(t, r, http.MethodDelete, path, bearer(t, manager), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		w = doRequest(t, r, http.MethodGet, path, bearer(t, alice), nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", w.Code)
		}
	})

	t.Run("export requires manager", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/menu-items/export", bearer(t, alice), nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", w.Code)
		}

		w = doRequest(t, r, http.MethodGet, "/menu-items/export", bearer(t, manager), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("unexpected content type %q", ct)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/menu-items", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
