package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTableType -> menambahkan tipe meja baru (mis. "2-top", "family")
func (tc *TableController) CreateTableType(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := tc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Label     string `json:"label" binding:"required"`
		MinCovers int    `json:"min_covers" binding:"min=0"`
		MaxCovers int    `json:"max_covers" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tableType := models.TableType{
		RestaurantID: restaurant.ID,
		Label:        req.Label,
		MinCovers:    req.MinCovers,
		MaxCovers:    req.MaxCovers,
	}
	if tableType.MinCovers == 0 {
		tableType.MinCovers = 1
	}

	if err := tc.DB.Create(&tableType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table type created: %s (restaurant=%d)", tableType.Label, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Table type created", tableType)
}

// GetTableTypes -> seluruh tipe meja satu restoran
func (tc *TableController) GetTableTypes(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var types []models.TableType
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).Find(&types).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of table types", types)
}

// DeleteTableType -> hapus tipe meja; ditolak selama masih ada meja yang memakainya
func (tc *TableController) DeleteTableType(c *gin.Context) {
	typeID := c.Param("type_id")
	var tableType models.TableType
	if err := tc.DB.First(&tableType, typeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var inUse int64
	tc.DB.Model(&models.Table{}).Where("table_type_id = ?", tableType.ID).Count(&inUse)
	if inUse > 0 {
		utils.RespondError(c, http.StatusConflict,
			gin.Error{Err: ErrTableTypeInUse, Type: gin.ErrorTypePublic})
		return
	}

	if err := tc.DB.Delete(&tableType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table type deleted", gin.H{"id": tableType.ID})
}

// CreateTable -> menambahkan meja baru ke inventaris
func (tc *TableController) CreateTable(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := tc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		TableTypeID uint   `json:"table_type_id" binding:"required"`
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tableType models.TableType
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", req.TableTypeID, restaurant.ID).
		First(&tableType).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table := models.Table{
		RestaurantID: restaurant.ID,
		TableTypeID:  tableType.ID,
		TableNumber:  req.TableNumber,
		Capacity:     req.Capacity,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Broadcast dengan statistik inventaris terbaru
	stats := tc.getInventoryStats(restaurant.ID)
	events.BroadcastTableUpdate(map[string]interface{}{
		"table": table,
		"stats": stats,
	})

	utils.InfoLogger.Printf("New table created: %s (restaurant=%d capacity=%d)", table.TableNumber, restaurant.ID, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> seluruh meja satu restoran beserta tipenya
func (tc *TableController) GetAllTables(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var tables []models.Table
	if err := tc.DB.Preload("TableType").Where("restaurant_id = ?", restaurantID).
		Order("table_number ASC").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTable -> ubah nomor/kapasitas/tipe meja
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		TableTypeID *uint   `json:"table_type_id"`
		TableNumber *string `json:"table_number"`
		Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableTypeID != nil {
		var tableType models.TableType
		if err := tc.DB.Where("id = ? AND restaurant_id = ?", *req.TableTypeID, table.RestaurantID).
			First(&tableType).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		table.TableTypeID = tableType.ID
	}
	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := tc.getInventoryStats(table.RestaurantID)
	events.BroadcastTableUpdate(map[string]interface{}{
		"table": table,
		"stats": stats,
	})

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja dari inventaris
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := tc.getInventoryStats(table.RestaurantID)
	events.BroadcastTableUpdate(map[string]interface{}{
		"table_id": table.ID,
		"stats":    stats,
	})

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}

// getInventoryStats menghitung ringkasan inventaris untuk dashboard
func (tc *TableController) getInventoryStats(restaurantID uint) map[string]interface{} {
	var tableCount int64
	var totalSeats int64

	tc.DB.Model(&models.Table{}).Where("restaurant_id = ?", restaurantID).Count(&tableCount)
	tc.DB.Model(&models.Table{}).Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(SUM(capacity),0)").Scan(&totalSeats)

	return map[string]interface{}{
		"tables":      tableCount,
		"total_seats": totalSeats,
	}
}

var ErrTableTypeInUse = &CustomError{"Table type still has tables assigned"}
