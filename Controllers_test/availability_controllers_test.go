package Controllers_test

import (
	"encoding/json"
	"fmt"
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

func setupTestDBForAvailability() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:availability_test?mode=memory&cache=shared"),
		&gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.DepositTier{},
		&models.TableType{},
		&models.Table{},
		&models.ReservationLimit{},
		&models.ClosedDay{},
		&models.Reservation{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupAvailabilityRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	availCtrl := controllers.NewAvailabilityController(db)
	router.GET("/restaurants/:restaurant_id/availability", availCtrl.GetAvailability)
	return router
}

// seedAvailabilityFixture: restoran 12:00-22:00 slot 2 jam dengan satu meja
// 2-top dan satu meja 4-top
func seedAvailabilityFixture(db *gorm.DB, name string) models.Restaurant {
	owner := models.User{Name: "Owner", Email: name + "@example.com", Password: "secret", Role: "owner"}
	db.Create(&owner)
	restaurant := models.Restaurant{
		OwnerID:             owner.ID,
		Name:                name,
		OpenTime:            "12:00",
		CloseTime:           "22:00",
		SlotDurationMinutes: 120,
		TableAssignmentMode: "automatic",
		CapacityBasis:       "reservations",
		DepositTiers: []models.DepositTier{
			{MinPeople: 1, Cost: 10},
			{MinPeople: 6, Cost: 25},
		},
	}
	db.Create(&restaurant)

	twoTop := models.TableType{RestaurantID: restaurant.ID, Label: "2-top", MinCovers: 1, MaxCovers: 2}
	fourTop := models.TableType{RestaurantID: restaurant.ID, Label: "4-top", MinCovers: 1, MaxCovers: 4}
	db.Create(&twoTop)
	db.Create(&fourTop)
	db.Create(&models.Table{RestaurantID: restaurant.ID, TableTypeID: twoTop.ID, TableNumber: "A1", Capacity: 2})
	db.Create(&models.Table{RestaurantID: restaurant.ID, TableTypeID: fourTop.ID, TableNumber: "B1", Capacity: 4})
	return restaurant
}

func getAvailability(router *gin.Engine, restaurantID uint, date string, people int) (int, map[string]interface{}) {
	url := fmt.Sprintf("/restaurants/%d/availability?date=%s&people=%d", restaurantID, date, people)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	data, _ := resp["data"].(map[string]interface{})
	return w.Code, data
}

func slotStrings(data map[string]interface{}) []string {
	raw, _ := data["slots"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		out = append(out, s.(string))
	}
	return out
}

func TestGetAvailabilityFullGrid(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAvailability()
	restaurant := seedAvailabilityFixture(db, "avail-grid-resto")
	router := setupAvailabilityRouter(db)

	code, data := getAvailability(router, restaurant.ID, "2030-05-10", 2)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"12:00", "14:00", "16:00", "18:00", "20:00"}, slotStrings(data))
	assert.Equal(t, false, data["fallback_mode"])
	assert.Equal(t, false, data["closed"])
	assert.Equal(t, float64(10), data["deposit_cost"])
}

func TestGetAvailabilityHidesFullSlot(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAvailability()
	restaurant := seedAvailabilityFixture(db, "avail-full-resto")
	router := setupAvailabilityRouter(db)

	// Limit 1 di 18:00 plus satu reservasi aktif -> slot 18:00 hilang
	db.Create(&models.ReservationLimit{
		RestaurantID: restaurant.ID, Date: "2030-05-11", TimeSlot: "18:00", MaxReservations: 1,
	})
	db.Create(&models.Reservation{
		Code: "avail-res-1", RestaurantID: restaurant.ID,
		Date: "2030-05-11", Time: "18:00", People: 2, GuestName: "Alice",
	})

	code, data := getAvailability(router, restaurant.ID, "2030-05-11", 2)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"12:00", "14:00", "16:00", "20:00"}, slotStrings(data))

	// Reservasi yang dibatalkan tidak menghabiskan kapasitas
	db.Model(&models.Reservation{}).Where("code = ?", "avail-res-1").Update("cancelled", true)
	code, data = getAvailability(router, restaurant.ID, "2030-05-11", 2)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, slotStrings(data), "18:00")
}

func TestGetAvailabilityClosedDay(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAvailability()
	restaurant := seedAvailabilityFixture(db, "avail-closed-resto")
	router := setupAvailabilityRouter(db)

	db.Create(&models.ClosedDay{RestaurantID: restaurant.ID, Date: "2030-05-12", Reason: "Private event"})

	code, data := getAvailability(router, restaurant.ID, "2030-05-12", 2)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["closed"])
	assert.Empty(t, slotStrings(data))
}

func TestGetAvailabilityOversizedPartyFallback(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAvailability()
	restaurant := seedAvailabilityFixture(db, "avail-fallback-resto")
	router := setupAvailabilityRouter(db)

	// Rombongan 6 tidak muat di meja manapun; fallback headcount menyala
	code, data := getAvailability(router, restaurant.ID, "2030-05-13", 6)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["fallback_mode"])
	assert.NotEmpty(t, slotStrings(data))
	assert.Equal(t, float64(25), data["deposit_cost"])

	// Fallback dimatikan -> tidak ada slot untuk rombongan besar
	db.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
		Update("allow_headcount_fallback", false)
	code, data = getAvailability(router, restaurant.ID, "2030-05-13", 6)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, data["fallback_mode"])
	assert.Empty(t, slotStrings(data))
}

func TestGetAvailabilityRejectsBadPeople(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAvailability()
	restaurant := seedAvailabilityFixture(db, "avail-badpeople-resto")
	router := setupAvailabilityRouter(db)

	url := fmt.Sprintf("/restaurants/%d/availability?date=2030-05-10&people=abc", restaurant.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
