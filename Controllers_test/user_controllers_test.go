package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

// setupTestDB menggunakan SQLite in-memory untuk testing
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:users_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(&models.User{})
	if err != nil {
		panic(err)
	}
	return db
}

// setupRouterForTest mengonfigurasi router dengan endpoint yang akan diuji
func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	router := setupRouterForTest(db)

	// --- Test Register User ---
	registerPayload := map[string]string{
		"name":     "Test Owner",
		"email":    "owner@example.com",
		"password": "password123",
		"role":     "owner",
	}
	payloadBytes, err := json.Marshal(registerPayload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &registerResponse)
	assert.NoError(t, err)
	assert.Equal(t, true, registerResponse["status"])
	data := registerResponse["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// --- Test Login User ---
	loginPayload := map[string]string{
		"email":    "owner@example.com",
		"password": "password123",
	}
	payloadBytes, err = json.Marshal(loginPayload)
	assert.NoError(t, err)

	req, err = http.NewRequest("POST", "/login", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	assert.Equal(t, true, loginResponse["status"])
	data = loginResponse["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	assert.Equal(t, "owner", data["user_role"])
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB()
	router := setupRouterForTest(db)

	payload := map[string]string{
		"name":     "Bad Role",
		"email":    "badrole@example.com",
		"password": "password123",
		"role":     "admin",
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "badrole@example.com").Count(&count)
	assert.Equal(t, int64(0), count)
}
