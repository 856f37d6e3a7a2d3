package controllers

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/medimind/clinic-backend/db"
	"github.com/medimind/clinic-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRBACApp(t *testing.T) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Role{}, &models.Permission{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Post("/rbac/permissions", CreatePermission)
	app.Post("/rbac/roles", CreateRole)
	return app
}

func TestCreatePermissionValidatesResourceVocabulary(t *testing.T) {
	app := setupRBACApp(t)

	cases := []struct {
		name    string
		payload string
		status  int
	}{
		{"known pair", `{"name":"read_inventory","resource":"inventory","action":"read"}`, http.StatusCreated},
		{"unknown resource", `{"name":"read_billing","resource":"billing","action":"read"}`, http.StatusBadRequest},
		{"unknown action", `{"name":"approve_patients","resource":"patients","action":"approve"}`, http.StatusBadRequest},
		{"missing fields", `{"name":"read_patients"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodPost, "/rbac/permissions", tc.payload)
			if resp.StatusCode != tc.status {
				t.Errorf("status %d, want %d: %s", resp.StatusCode, tc.status, raw)
			}
		})
	}

	var count int64
	db.DB.Model(&models.Permission{}).Count(&count)
	if count != 1 {
		t.Errorf("expected only the valid permission persisted, got %d", count)
	}
}

func TestCreatePermissionRejectsDuplicateName(t *testing.T) {
	app := setupRBACApp(t)
	payload := `{"name":"read_patients","resource":"patients","action":"read"}`

	resp, raw := doJSON(t, app, http.MethodPost, "/rbac/permissions", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: status %d: %s", resp.StatusCode, raw)
	}
	resp, raw = doJSON(t, app, http.MethodPost, "/rbac/permissions", payload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: status %d, want 409: %s", resp.StatusCode, raw)
	}
}

func TestCreateRoleLowercasesName(t *testing.T) {
	app := setupRBACApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/rbac/roles", `{"name":"Pharmacist","description":"Runs the pharmacy counter"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, raw)
	}
	var role models.Role
	if err := json.Unmarshal(raw, &role); err != nil {
		t.Fatalf("decode role: %v", err)
	}
	if role.Name != "pharmacist" {
		t.Errorf("role name %q, want lowercased", role.Name)
	}

	// Case-insensitive duplicate is caught by the lowered name.
	resp, raw = doJSON(t, app, http.MethodPost, "/rbac/roles", `{"name":"PHARMACIST"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate role: status %d, want 409: %s", resp.StatusCode, raw)
	}
}
