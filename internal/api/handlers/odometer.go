package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// odometer 不加 required：initial_odometer 为 0 的新车读数 0 合法，
// 范围校验交给服务层
type recordOdometerRequest struct {
	Odometer  int        `json:"odometer"`
	EntryDate *time.Time `json:"entry_date"`
	Notes     *string    `json:"notes"`
}

// ListOdometerEntries 获取里程台账，?order=asc 时按时间升序（图表用）
func (h *Handler) ListOdometerEntries(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	ascending := c.Query("order") == "asc"
	entries, err := h.garage.ListOdometerEntries(c.Request.Context(), vehicle, ascending)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries, "current_odometer": vehicle.CurrentOdometer})
}

// RecordOdometer 记录一次里程读数
func (h *Handler) RecordOdometer(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	var req recordOdometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entryDate := time.Now()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	err := h.garage.RecordOdometer(c.Request.Context(), h.currentUser(c), vehicle, req.Odometer, entryDate, req.Notes)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"current_odometer": vehicle.CurrentOdometer})
}
