package handler

import (
	"net/http"

	"gymref/internal/middleware"
	"gymref/internal/service"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	svc *service.RewardService
}

func NewRewardHandler(svc *service.RewardService) *RewardHandler {
	return &RewardHandler{svc: svc}
}

func (h *RewardHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *RewardHandler) MarkGiven(c *gin.Context) {
	var req service.MarkGivenInput
	if !bindJSON(c, &req) {
		return
	}
	reward, err := h.svc.MarkGiven(c.Request.Context(), middleware.GetOwnerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reward)
}
