package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/models"
)

type createVehicleRequest struct {
	Make                   string     `json:"make" binding:"required"`
	Model                  string     `json:"model" binding:"required"`
	Year                   int        `json:"year" binding:"required"`
	LicensePlate           *string    `json:"license_plate"`
	VIN                    *string    `json:"vin"`
	Nickname               *string    `json:"nickname"`
	InitialOdometer        int        `json:"initial_odometer"`
	RegistrationExpiration *time.Time `json:"registration_expiration"`
	PurchaseDate           *time.Time `json:"purchase_date"`
}

// ListVehicles 获取当前用户的车辆列表
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.garage.ListVehicles(c.Request.Context(), h.currentUser(c))
	if err != nil {
		h.logger.Error("Failed to list vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// CreateVehicle 创建车辆
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.InitialOdometer < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "initial_odometer must not be negative"})
		return
	}

	vehicle := &models.Vehicle{
		Make:                   req.Make,
		Model:                  req.Model,
		Year:                   req.Year,
		LicensePlate:           req.LicensePlate,
		VIN:                    req.VIN,
		Nickname:               req.Nickname,
		InitialOdometer:        req.InitialOdometer,
		RegistrationExpiration: req.RegistrationExpiration,
		PurchaseDate:           req.PurchaseDate,
	}

	if err := h.garage.CreateVehicle(c.Request.Context(), h.currentUser(c), vehicle); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}

// GetVehicle 获取车辆详情
func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// DeleteVehicle 删除车辆及其全部记录
func (h *Handler) DeleteVehicle(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	if err := h.garage.DeleteVehicle(c.Request.Context(), h.currentUser(c), vehicle.ID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted", "vehicle_id": vehicle.ID})
}

// GetVehicleInsights 获取车辆仪表盘数据
func (h *Handler) GetVehicleInsights(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	data, err := h.garage.GetVehicleInsights(c.Request.Context(), vehicle)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
