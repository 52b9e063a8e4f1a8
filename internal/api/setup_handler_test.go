package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/db"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// MIGRATE ALL MODELS USED IN TESTS!
	if err := conn.AutoMigrate(
		&user.User{},
		&tracker.Domain{},
		&tracker.Tag{},
		&tracker.Goal{},
		&tracker.ScheduleEntry{},
		&tracker.TrackerEntry{},
		&tracker.GoalReview{},
		&tracker.DomainReview{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.DB = conn
	return conn
}

func resetTables(t *testing.T) {
	tables := []string{"tracker_tags", "goal_tags", "tracker_entries", "schedule_entries", "goal_reviews", "domain_reviews", "goals", "tags", "domains", "users"}
	for _, table := range tables {
		if err := db.DB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s table: %v", table, err)
		}
	}
}

func TestSetupHandler_AllowsInitialSetup(t *testing.T) {
	setupTestDB(t)
	resetTables(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/setup", SetupHandler())
	payload := SetupRequest{Username: "owner", Password: "pw1"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/setup", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "setup_complete") {
		t.Errorf("setup response should indicate completion, got: %s", w.Body.String())
	}
}

func TestSetupHandler_ForbiddenIfAccountExists(t *testing.T) {
	setupTestDB(t)
	resetTables(t)
	// Seed the owner account to block setup
	u := user.User{Username: "existing", PasswordHash: "hash"}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/setup", SetupHandler())
	payload := SetupRequest{Username: "second", Password: "pw2"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/setup", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d: %s", w.Code, w.Body.String())
	}
}
