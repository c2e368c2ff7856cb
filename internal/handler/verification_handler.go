package handler

import (
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationLogic *logic.VerificationLogic
}

func NewVerificationHandler(verificationLogic *logic.VerificationLogic) *VerificationHandler {
	return &VerificationHandler{
		verificationLogic: verificationLogic,
	}
}

// Submit 对贡献提交同行验证（质押+签名）
func (h *VerificationHandler) Submit(c *gin.Context) {
	var req struct {
		ContributionId string `json:"contribution_id" binding:"required"`
		VerifierWallet string `json:"verifier_wallet" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	verification, err := h.verificationLogic.Submit(c.Request.Context(), req.ContributionId, req.VerifierWallet)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "验证提交成功", verification)
}

// AttachSignature 为质押后未签名的记录补签名
func (h *VerificationHandler) AttachSignature(c *gin.Context) {
	var req struct {
		Signature string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	verification, err := h.verificationLogic.AttachSignature(c.Param("id"), req.Signature)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "签名已记录", verification)
}

// ListPending 获取待签名验证列表
func (h *VerificationHandler) ListPending(c *gin.Context) {
	pending, err := h.verificationLogic.ListPending()
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"verifications": pending})
}
