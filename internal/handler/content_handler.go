package handler

import (
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentLogic *logic.ContentLogic
}

func NewContentHandler(contentLogic *logic.ContentLogic) *ContentHandler {
	return &ContentHandler{
		contentLogic: contentLogic,
	}
}

// Publish 记录内容发布，客户端铸造ContentNFT后回传
func (h *ContentHandler) Publish(c *gin.Context) {
	var req struct {
		Wallet      string `json:"wallet" binding:"required"`
		Title       string `json:"title"`
		Description string `json:"description"`
		TokenURI    string `json:"token_uri" binding:"required"`
		TxHash      string `json:"tx_hash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.contentLogic.Publish(req.Wallet, req.Title, req.Description, req.TokenURI, req.TxHash)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "内容发布成功", content)
}

// ListCertificates 枚举钱包持有的内容凭证
func (h *ContentHandler) ListCertificates(c *gin.Context) {
	certificates, err := h.contentLogic.ListCertificates(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"certificates": certificates})
}
