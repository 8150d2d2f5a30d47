package handler

import (
	"net/http"

	"gymref/internal/middleware"
	"gymref/internal/service"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	svc *service.ReferralService
}

func NewReferralHandler(svc *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{svc: svc}
}

// IssueCode is the public scan-to-join endpoint.
func (h *ReferralHandler) IssueCode(c *gin.Context) {
	var req service.IssueCodeInput
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.IssueCode(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *ReferralHandler) Verify(c *gin.Context) {
	var req service.VerifyJoinInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.VerifyJoin(c.Request.Context(), middleware.GetOwnerID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"joinCount":      res.JoinCount,
		"targetJoins":    res.TargetJoins,
		"rewardUnlocked": res.RewardUnlocked,
		"reward":         res.Reward,
	})
}

func (h *ReferralHandler) Status(c *gin.Context) {
	st, err := h.svc.Status(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
