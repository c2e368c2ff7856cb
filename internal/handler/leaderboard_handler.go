package handler

import (
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardLogic *logic.LeaderboardLogic
}

func NewLeaderboardHandler(leaderboardLogic *logic.LeaderboardLogic) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardLogic: leaderboardLogic,
	}
}

// List 信任分排行榜
func (h *LeaderboardHandler) List(c *gin.Context) {
	entries, err := h.leaderboardLogic.Leaderboard(c.Request.Context())
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"leaderboard": entries})
}

// GetScore 单个钱包的实时信任分
func (h *LeaderboardHandler) GetScore(c *gin.Context) {
	raw, display, err := h.leaderboardLogic.GetScore(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"raw_score":   raw,
		"trust_score": display,
	})
}
