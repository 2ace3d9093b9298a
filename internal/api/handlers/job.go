package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/langchou/lugnut/internal/models"
)

type addPartRequest struct {
	Name         string  `json:"name" binding:"required"`
	PartNumber   *string `json:"part_number"`
	Manufacturer *string `json:"manufacturer"`
	Cost         float64 `json:"cost"`
	Quantity     int     `json:"quantity"`
	URL          *string `json:"url"`
}

type addRecordRequest struct {
	Title             string           `json:"title" binding:"required"`
	ServiceIntervalID *int64           `json:"service_interval_id"`
	Notes             *string          `json:"notes"`
	Tags              []string         `json:"tags"`
	Parts             []addPartRequest `json:"parts"`
}

type addJobRequest struct {
	Title      string             `json:"title" binding:"required"`
	Date       *time.Time         `json:"date"`
	Odometer   int                `json:"odometer"`
	LaborCost  float64            `json:"labor_cost"`
	IsDIY      bool               `json:"is_diy"`
	Difficulty int                `json:"difficulty"`
	ShopName   *string            `json:"shop_name"`
	Notes      *string            `json:"notes"`
	URL        *string            `json:"url"`
	Hours      *float64           `json:"hours"`
	Records    []addRecordRequest `json:"records"`
}

// ListJobs 获取车辆作业列表
func (h *Handler) ListJobs(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	jobs, err := h.garage.ListJobs(c.Request.Context(), vehicle)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": jobs})
}

// AddJob 创建保养作业（含明细、标签、零件）
func (h *Handler) AddJob(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	var req addJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	job := &models.Job{
		Title:      req.Title,
		Date:       date,
		Odometer:   req.Odometer,
		LaborCost:  req.LaborCost,
		IsDIY:      req.IsDIY,
		Difficulty: req.Difficulty,
		ShopName:   req.ShopName,
		Notes:      req.Notes,
		URL:        req.URL,
		Hours:      req.Hours,
	}
	for _, r := range req.Records {
		record := &models.Record{
			Title:             r.Title,
			ServiceIntervalID: r.ServiceIntervalID,
			Notes:             r.Notes,
			Tags:              r.Tags,
		}
		for _, p := range r.Parts {
			quantity := p.Quantity
			if quantity < 1 {
				quantity = 1
			}
			record.Parts = append(record.Parts, &models.Part{
				Name:         p.Name,
				PartNumber:   p.PartNumber,
				Manufacturer: p.Manufacturer,
				Cost:         p.Cost,
				Quantity:     quantity,
				URL:          p.URL,
			})
		}
		job.Records = append(job.Records, record)
	}

	if err := h.garage.AddJob(c.Request.Context(), h.currentUser(c), vehicle, job); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": job, "current_odometer": vehicle.CurrentOdometer})
}

// GetJob 获取作业详情和费用拆分
func (h *Handler) GetJob(c *gin.Context) {
	vehicle := h.vehicleFromPath(c)
	if vehicle == nil {
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, breakdown, err := h.garage.GetJob(c.Request.Context(), vehicle, jobID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job, "cost_breakdown": breakdown})
}
