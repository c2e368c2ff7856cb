package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ownerGuardedRouter(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dao := config.DaoConfig{OwnerAddress: "0xfF01A2491F19A0342f6B6b490D9ffDE0320306A1"}
	hits := 0

	r := gin.New()
	admin := r.Group("/admin", OwnerRequired(dao))
	admin.POST("/mint", func(c *gin.Context) {
		hits++
		SuccessResponse(c, http.StatusOK, "", nil)
	})
	return r, &hits
}

// TestOwnerRequired 非owner请求在进入处理器前被拦截
func TestOwnerRequired(t *testing.T) {
	r, hits := ownerGuardedRouter(t)

	// 缺少钱包头
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/mint", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, *hits)

	// 非owner钱包
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/mint", nil)
	req.Header.Set(AdminWalletHeader, "0x0000000000000000000000000000000000000099")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, *hits)

	// owner钱包放行，大小写不敏感
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/mint", nil)
	req.Header.Set(AdminWalletHeader, "0xff01a2491f19a0342f6b6b490d9ffde0320306a1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *hits)
}
