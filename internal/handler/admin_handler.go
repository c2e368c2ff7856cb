package handler

import (
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
)

// AdminWalletHeader 管理端以连接钱包地址作为能力凭证
const AdminWalletHeader = "X-Admin-Wallet"

type AdminHandler struct {
	adminLogic *logic.AdminLogic
}

func NewAdminHandler(adminLogic *logic.AdminLogic) *AdminHandler {
	return &AdminHandler{
		adminLogic: adminLogic,
	}
}

// OwnerRequired 管理员钱包校验中间件，校验先于一切副作用
func OwnerRequired(dao config.DaoConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetHeader(AdminWalletHeader)
		if !dao.IsOwner(wallet) {
			ErrorResponse(c, http.StatusForbidden, "仅合约owner可访问管理接口")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ListPendingContributions 待铸造贡献及质押、奖励预览
func (h *AdminHandler) ListPendingContributions(c *gin.Context) {
	pending, err := h.adminLogic.ListPendingContributions(c.Request.Context(), c.GetHeader(AdminWalletHeader))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"contributions": pending})
}

// MintForContribution 为贡献铸造SBT并发放奖励
func (h *AdminHandler) MintForContribution(c *gin.Context) {
	record, err := h.adminLogic.MintForContribution(c.Request.Context(), c.GetHeader(AdminWalletHeader), c.Param("id"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "SBT铸造成功", record)
}

// ListEligibleVerifiers 可获验证者徽章的用户
func (h *AdminHandler) ListEligibleVerifiers(c *gin.Context) {
	verifiers, err := h.adminLogic.ListEligibleVerifiers()
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"verifiers": verifiers})
}

// MintVerifierBadge 为验证者铸造徽章SBT
func (h *AdminHandler) MintVerifierBadge(c *gin.Context) {
	record, err := h.adminLogic.MintVerifierBadge(c.Request.Context(), c.GetHeader(AdminWalletHeader), c.Param("wallet"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "验证者徽章铸造成功", record)
}

// Slash 罚没验证者质押
func (h *AdminHandler) Slash(c *gin.Context) {
	txHash, err := h.adminLogic.Slash(c.Request.Context(), c.GetHeader(AdminWalletHeader), c.Param("id"), c.Param("verifier"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "质押罚没成功", gin.H{"tx_hash": txHash})
}
