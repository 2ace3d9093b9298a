package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/langchou/lugnut/internal/models"
)

type addServiceIntervalRequest struct {
	Name            string   `json:"name" binding:"required"`
	MileageInterval *int     `json:"mileage_interval"`
	MonthInterval   *int     `json:"month_interval"`
	Notes           *string  `json:"notes"`
	Tags            []string `json:"tags"`
}

type linkRecordsRequest struct {
	RecordIDs []int64 `json:"record_ids" binding:"required"`
}

// ListServiceIntervals 获取保养周期列表（按紧迫度排序）和状态摘要
func (h *Handler) ListServiceIntervals(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	evaluated, summary, err := h.garage.ListServiceIntervals(c.Request.Context(), vehicle)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": evaluated, "summary": summary})
}

// AddServiceInterval 创建保养周期
func (h *Handler) AddServiceInterval(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	var req addServiceIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MileageInterval == nil && req.MonthInterval == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mileage_interval or month_interval is required"})
		return
	}

	si := &models.ServiceInterval{
		Name:            req.Name,
		MileageInterval: req.MileageInterval,
		MonthInterval:   req.MonthInterval,
		Notes:           req.Notes,
		Tags:            req.Tags,
	}

	if err := h.garage.AddServiceInterval(c.Request.Context(), h.currentUser(c), vehicle, si); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": si})
}

// DeleteServiceInterval 删除保养周期
func (h *Handler) DeleteServiceInterval(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	intervalID, err := strconv.ParseInt(c.Param("intervalID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interval ID"})
		return
	}

	if err := h.garage.DeleteServiceInterval(c.Request.Context(), vehicle, intervalID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service interval deleted", "interval_id": intervalID})
}

// LinkRecords 把既有作业明细关联到保养周期
func (h *Handler) LinkRecords(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	intervalID, err := strconv.ParseInt(c.Param("intervalID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interval ID"})
		return
	}

	var req linkRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.garage.LinkRecords(c.Request.Context(), vehicle, intervalID, req.RecordIDs); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Records linked", "interval_id": intervalID, "count": len(req.RecordIDs)})
}

// ListUnlinkedRecords 获取尚未关联任何周期的作业明细
func (h *Handler) ListUnlinkedRecords(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	records, err := h.garage.ListUnlinkedRecords(c.Request.Context(), vehicle)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
