package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/langchou/lugnut/internal/models"
)

type addFuelEntryRequest struct {
	Date       *time.Time `json:"date"`
	Odometer   int        `json:"odometer"`
	Gallons    float64    `json:"gallons" binding:"required,gt=0"`
	TotalCost  *float64   `json:"total_cost"`
	GasStation *string    `json:"gas_station"`
	Notes      *string    `json:"notes"`
}

// ListFuelEntries 获取加油记录（最新在前），每条附派生的 MPG 和每加仑单价
func (h *Handler) ListFuelEntries(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	entries, err := h.garage.ListFuelEntries(c.Request.Context(), vehicle)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// AddFuelEntry 创建加油记录
func (h *Handler) AddFuelEntry(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	var req addFuelEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	entry := &models.FuelEntry{
		Date:       date,
		Odometer:   req.Odometer,
		Gallons:    req.Gallons,
		TotalCost:  req.TotalCost,
		GasStation: req.GasStation,
		Notes:      req.Notes,
	}

	if err := h.garage.AddFuelEntry(c.Request.Context(), h.currentUser(c), vehicle, entry); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": entry, "current_odometer": vehicle.CurrentOdometer})
}
