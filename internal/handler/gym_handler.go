package handler

import (
	"net/http"

	"gymref/internal/middleware"
	"gymref/internal/service"

	"github.com/gin-gonic/gin"
)

type GymHandler struct {
	gyms      *service.GymService
	dashboard *service.DashboardService
}

func NewGymHandler(gyms *service.GymService, dashboard *service.DashboardService) *GymHandler {
	return &GymHandler{gyms: gyms, dashboard: dashboard}
}

// ScanInfo backs the public page a QR code points to.
func (h *GymHandler) ScanInfo(c *gin.Context) {
	info, err := h.gyms.ScanInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *GymHandler) ListMembers(c *gin.Context) {
	list, err := h.gyms.ListMembers(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *GymHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
