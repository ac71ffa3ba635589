package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/router"
	"github.com/yeremiapane/reservation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Register owner & staff, login -> token
// 1. Owner onboarding: restoran, deposit tier, tipe meja, meja
// 2. Tamu cek availability -> booking slot
// 3. Tamu kedua di slot yang sama kalah kapasitas (409)
// 4. Staff lihat dashboard reservasi
// 5. Tamu cancel via kode, idempoten, kapasitas bebas lagi
// 6. Owner pasang limit slot -> reservasi kedua di slot itu 409
// 7. Owner set closed day -> availability menjawab closed
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db, nil)

	ownerToken := registerAndLogin(t, r, "owner@resto.test", "owner")
	staffToken := registerAndLogin(t, r, "staff@resto.test", "staff")

	// --- Onboarding restoran ---
	restaurantID := createRestaurantTest(t, r, ownerToken)
	setDepositTiersTest(t, r, ownerToken, restaurantID)
	typeID := createTableTypeTest(t, r, ownerToken, restaurantID)
	createTableTest(t, r, ownerToken, restaurantID, typeID)

	// --- Availability awal: grid penuh ---
	slots := availabilityTest(t, r, restaurantID, "2030-05-10", 2)
	if len(slots) != 5 {
		t.Fatalf("expected 5 open slots, got %v", slots)
	}

	// --- Booking tamu pertama ---
	code := placeReservationTest(t, r, restaurantID, "2030-05-10", "18:00", "Alice", http.StatusCreated)

	// --- Tamu kedua kalah kapasitas ---
	placeReservationTest(t, r, restaurantID, "2030-05-10", "18:00", "Bob", http.StatusConflict)

	// Slot 18:00 tidak lagi ditawarkan
	slots = availabilityTest(t, r, restaurantID, "2030-05-10", 2)
	for _, s := range slots {
		if s == "18:00" {
			t.Fatalf("slot 18:00 should be full, got %v", slots)
		}
	}

	// --- Dashboard staff ---
	listReservationsTest(t, r, staffToken, restaurantID, "2030-05-10", 1)

	// --- Cancel via kode, dua kali tetap 200 ---
	cancelByCodeTest(t, r, code)
	cancelByCodeTest(t, r, code)

	// Kapasitas bebas lagi
	placeReservationTest(t, r, restaurantID, "2030-05-10", "18:00", "Carol", http.StatusCreated)

	// --- Limit owner: slot 20:00 maksimal satu reservasi ---
	createLimitTest(t, r, ownerToken, restaurantID, "2030-05-10", "20:00", 1)
	placeReservationTest(t, r, restaurantID, "2030-05-10", "20:00", "Eve", http.StatusCreated)
	placeReservationTest(t, r, restaurantID, "2030-05-10", "20:00", "Frank", http.StatusConflict)

	// --- Closed day ---
	createClosedDayTest(t, r, ownerToken, restaurantID, "2030-05-11")
	closed := availabilityClosedTest(t, r, restaurantID, "2030-05-11", 2)
	if !closed {
		t.Fatal("expected closed flag for closed day")
	}
	placeReservationTest(t, r, restaurantID, "2030-05-11", "18:00", "Dave", http.StatusConflict)
}

// TestGlobalRateLimiterActive memastikan limiter per-IP terpasang sebelum
// registrasi route: 60 request beruntun dari satu IP harus sebagian ditolak 429
func TestGlobalRateLimiterActive(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db, nil)

	tooMany := false
	for i := 0; i < 60; i++ {
		w := doJSON(t, r, "GET", "/ping", "", nil)
		switch w.Code {
		case http.StatusOK:
		case http.StatusTooManyRequests:
			tooMany = true
		default:
			t.Fatalf("unexpected status %d on /ping", w.Code)
		}
	}
	if !tooMany {
		t.Fatal("expected per-IP rate limiter to reject part of 60 rapid requests")
	}
}

// setupTestDB -> migrasi model di SQLite in-memory
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	// Satu koneksi saja: tiap koneksi baru ke ":memory:" adalah database kosong
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.DepositTier{},
		&models.TableType{},
		&models.Table{},
		&models.ReservationLimit{},
		&models.ClosedDay{},
		&models.Reservation{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v (%s)", err, w.Body.String())
	}
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func registerAndLogin(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/register", "", map[string]string{
		"name":     "Integration " + role,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s failed: %d %s", role, w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s failed: %d %s", role, w.Code, w.Body.String())
	}
	token, _ := parseData(t, w)["token"].(string)
	if token == "" {
		t.Fatal("empty token after login")
	}
	return token
}

func createRestaurantTest(t *testing.T, r *gin.Engine, token string) uint {
	t.Helper()
	w := doJSON(t, r, "POST", "/restaurants", token, map[string]interface{}{
		"name":                  "Integration Resto",
		"open_time":             "12:00",
		"close_time":            "22:00",
		"slot_duration_minutes": 120,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create restaurant failed: %d %s", w.Code, w.Body.String())
	}
	return uint(parseData(t, w)["id"].(float64))
}

func setDepositTiersTest(t *testing.T, r *gin.Engine, token string, restaurantID uint) {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/deposit-tiers", restaurantID)
	w := doJSON(t, r, "PUT", url, token, map[string]interface{}{
		"tiers": []map[string]interface{}{
			{"min_people": 1, "cost": 10},
			{"min_people": 6, "cost": 25},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("set deposit tiers failed: %d %s", w.Code, w.Body.String())
	}
}

func createTableTypeTest(t *testing.T, r *gin.Engine, token string, restaurantID uint) uint {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/table-types", restaurantID)
	w := doJSON(t, r, "POST", url, token, map[string]interface{}{
		"label":      "2-top",
		"min_covers": 1,
		"max_covers": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create table type failed: %d %s", w.Code, w.Body.String())
	}
	return uint(parseData(t, w)["id"].(float64))
}

func createTableTest(t *testing.T, r *gin.Engine, token string, restaurantID, typeID uint) {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/tables", restaurantID)
	w := doJSON(t, r, "POST", url, token, map[string]interface{}{
		"table_type_id": typeID,
		"table_number":  "A1",
		"capacity":      2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create table failed: %d %s", w.Code, w.Body.String())
	}
}

func availabilityTest(t *testing.T, r *gin.Engine, restaurantID uint, date string, people int) []string {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/availability?date=%s&people=%d", restaurantID, date, people)
	w := doJSON(t, r, "GET", url, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability failed: %d %s", w.Code, w.Body.String())
	}
	raw, _ := parseData(t, w)["slots"].([]interface{})
	slots := make([]string, 0, len(raw))
	for _, s := range raw {
		slots = append(slots, s.(string))
	}
	return slots
}

func availabilityClosedTest(t *testing.T, r *gin.Engine, restaurantID uint, date string, people int) bool {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/availability?date=%s&people=%d", restaurantID, date, people)
	w := doJSON(t, r, "GET", url, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability failed: %d %s", w.Code, w.Body.String())
	}
	closed, _ := parseData(t, w)["closed"].(bool)
	return closed
}

func placeReservationTest(t *testing.T, r *gin.Engine, restaurantID uint, date, slot, guest string, wantStatus int) string {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/reservations", restaurantID)
	w := doJSON(t, r, "POST", url, "", map[string]interface{}{
		"date":       date,
		"time":       slot,
		"people":     2,
		"guest_name": guest,
	})
	if w.Code != wantStatus {
		t.Fatalf("place reservation for %s: want %d got %d %s", guest, wantStatus, w.Code, w.Body.String())
	}
	if wantStatus != http.StatusCreated {
		return ""
	}
	code, _ := parseData(t, w)["code"].(string)
	if code == "" {
		t.Fatal("reservation created without confirmation code")
	}
	return code
}

func listReservationsTest(t *testing.T, r *gin.Engine, token string, restaurantID uint, date string, want int) {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/reservations?date=%s", restaurantID, date)
	w := doJSON(t, r, "GET", url, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list reservations failed: %d %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	data, _ := resp["data"].([]interface{})
	if len(data) != want {
		t.Fatalf("expected %d reservations, got %d", want, len(data))
	}
}

func cancelByCodeTest(t *testing.T, r *gin.Engine, code string) {
	t.Helper()
	w := doJSON(t, r, "PATCH", "/reservations/code/"+code+"/cancel", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel by code failed: %d %s", w.Code, w.Body.String())
	}
}

func createLimitTest(t *testing.T, r *gin.Engine, token string, restaurantID uint, date, slot string, max int) {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/limits", restaurantID)
	w := doJSON(t, r, "POST", url, token, map[string]interface{}{
		"date":             date,
		"time_slot":        slot,
		"max_reservations": max,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create limit failed: %d %s", w.Code, w.Body.String())
	}
}

func createClosedDayTest(t *testing.T, r *gin.Engine, token string, restaurantID uint, date string) {
	t.Helper()
	url := fmt.Sprintf("/restaurants/%d/closed-days", restaurantID)
	w := doJSON(t, r, "POST", url, token, map[string]interface{}{
		"date":   date,
		"reason": "Private event",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create closed day failed: %d %s", w.Code, w.Body.String())
	}
}
