package handler

import (
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userLogic *logic.UserLogic
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userLogic: logic.NewUserLogic(db),
	}
}

// SyncUser 钱包连接时幂等注册/更新用户
func (h *UserHandler) SyncUser(c *gin.Context) {
	var req struct {
		Wallet      string `json:"wallet" binding:"required"`
		DisplayName string `json:"display_name"`
		Ens         string `json:"ens"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.SyncUser(req.Wallet, req.DisplayName, req.Ens)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "用户同步成功", user)
}

// GetProfile 获取用户资料及历史
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userLogic.GetProfile(c.Param("wallet"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", profile)
}

// UpdateProfile 编辑个人资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	wallet := c.Param("wallet")

	var req struct {
		DisplayName *string `json:"display_name"`
		Ens         *string `json:"ens"`
		Bio         *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userLogic.UpdateProfile(wallet, req.DisplayName, req.Ens, req.Bio)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "资料更新成功", user)
}
