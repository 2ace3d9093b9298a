package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/langchou/lugnut/internal/models"
	"github.com/langchou/lugnut/internal/service"
	"github.com/langchou/lugnut/pkg/ws"
)

// Handler HTTP 处理器
type Handler struct {
	logger   *zap.Logger
	garage   *service.GarageService
	wsHub    *ws.Hub
	upgrader websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(logger *zap.Logger, garage *service.GarageService, wsHub *ws.Hub) *Handler {
	return &Handler{
		logger: logger,
		garage: garage,
		wsHub:  wsHub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由，统一要求用户身份
	api := r.Group("/api")
	api.Use(h.requireUser())
	{
		// 车辆
		api.GET("/vehicles", h.ListVehicles)
		api.POST("/vehicles", h.CreateVehicle)
		api.GET("/vehicles/:id", h.GetVehicle)
		api.DELETE("/vehicles/:id", h.DeleteVehicle)
		api.GET("/vehicles/:id/insights", h.GetVehicleInsights)

		// 里程台账
		api.GET("/vehicles/:id/odometer", h.ListOdometerEntries)
		api.POST("/vehicles/:id/odometer", h.RecordOdometer)

		// 加油
		api.GET("/vehicles/:id/fuel", h.ListFuelEntries)
		api.POST("/vehicles/:id/fuel", h.AddFuelEntry)

		// 保养作业
		api.GET("/vehicles/:id/jobs", h.ListJobs)
		api.POST("/vehicles/:id/jobs", h.AddJob)
		api.GET("/vehicles/:id/jobs/:jobID", h.GetJob)

		// 保养周期
		api.GET("/vehicles/:id/service-intervals", h.ListServiceIntervals)
		api.POST("/vehicles/:id/service-intervals", h.AddServiceInterval)
		api.DELETE("/vehicles/:id/service-intervals/:intervalID", h.DeleteServiceInterval)
		api.POST("/vehicles/:id/service-intervals/:intervalID/link", h.LinkRecords)
		api.GET("/vehicles/:id/unlinked-records", h.ListUnlinkedRecords)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// requireUser 从 X-User-ID 解析用户并挂到 context。
// 认证网关在上游完成，这里只做身份解析。
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid X-User-ID"})
			return
		}

		user, err := h.garage.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// currentUser 取 requireUser 挂载的用户
func (h *Handler) currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

// vehicleFromPath 解析 :id 并加载归属当前用户的车辆。
// 返回 nil 时响应已写出，调用方直接 return。
func (h *Handler) vehicleFromPath(c *gin.Context) *models.Vehicle {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return nil
	}

	vehicle, err := h.garage.GetVehicle(c.Request.Context(), h.currentUser(c), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return nil
	}
	return vehicle
}

// writeServiceError 按服务层哨兵错误映射状态码
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUpgradeRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOdometerBelowInitial), errors.Is(err, service.ErrOdometerOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// HandleWebSocket WebSocket 处理
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	})
}
