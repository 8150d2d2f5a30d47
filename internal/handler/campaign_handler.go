package handler

import (
	"net/http"

	"gymref/internal/middleware"
	"gymref/internal/service"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	svc *service.CampaignService
}

func NewCampaignHandler(svc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req service.CreateCampaignInput
	if !bindJSON(c, &req) {
		return
	}
	campaign, err := h.svc.Create(c.Request.Context(), middleware.GetOwnerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.svc.Get(c.Request.Context(), middleware.GetOwnerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	campaign, err := h.svc.SetActive(c.Request.Context(), middleware.GetOwnerID(c), c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}
