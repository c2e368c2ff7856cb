package handler

import (
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
}

func NewContributionHandler(db *gorm.DB, dao config.DaoConfig) *ContributionHandler {
	return &ContributionHandler{
		contributionLogic: logic.NewContributionLogic(db, dao),
	}
}

// Submit 提交贡献
func (h *ContributionHandler) Submit(c *gin.Context) {
	var req struct {
		Wallet string `json:"wallet" binding:"required"`
		Dao    string `json:"dao"`
		Reason string `json:"reason"`
		Proof  string `json:"proof"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	contribution, err := h.contributionLogic.Submit(req.Wallet, req.Dao, req.Reason, req.Proof)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "贡献提交成功", contribution)
}

// List 获取贡献列表
func (h *ContributionHandler) List(c *gin.Context) {
	status := c.Query("status")

	contributions, err := h.contributionLogic.List(status)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"contributions": contributions})
}

// Get 获取贡献详情
func (h *ContributionHandler) Get(c *gin.Context) {
	contribution, err := h.contributionLogic.Get(c.Param("id"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", contribution)
}
