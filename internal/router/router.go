package router

import (
	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/handler"
	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(
	db *gorm.DB,
	oracle contract.Oracle,
	minter contract.SoulboundMinter,
	content contract.ContentToken,
	signer logic.Signer,
	cfg *config.Config,
) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "solverse-reputation-service",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 用户相关路由
		userHandler := handler.NewUserHandler(db)
		users := v1.Group("/users")
		{
			users.POST("/sync", userHandler.SyncUser)
			users.GET("/:wallet", userHandler.GetProfile)
			users.PUT("/:wallet", userHandler.UpdateProfile)
		}

		// 贡献相关路由
		contributionHandler := handler.NewContributionHandler(db, cfg.Dao)
		contributions := v1.Group("/contributions")
		{
			contributions.POST("", contributionHandler.Submit)
			contributions.GET("", contributionHandler.List)
			contributions.GET("/:id", contributionHandler.Get)
		}

		// 验证相关路由
		verificationLogic := logic.NewVerificationLogic(db, oracle, signer, cfg.Dao)
		verificationHandler := handler.NewVerificationHandler(verificationLogic)
		verifications := v1.Group("/verifications")
		{
			verifications.POST("", verificationHandler.Submit)
			verifications.GET("/pending", verificationHandler.ListPending)
			verifications.POST("/:id/signature", verificationHandler.AttachSignature)
		}

		// 排行榜相关路由
		leaderboardLogic := logic.NewLeaderboardLogic(db, oracle, cfg.Dao)
		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardLogic)
		v1.GET("/leaderboard", leaderboardHandler.List)
		users.GET("/:wallet/score", leaderboardHandler.GetScore)

		// 内容发布与凭证浏览
		contentLogic := logic.NewContentLogic(db, content, cfg.Chain.IpfsGateway)
		contentHandler := handler.NewContentHandler(contentLogic)
		v1.POST("/content", contentHandler.Publish)
		v1.GET("/certificates/:wallet", contentHandler.ListCertificates)

		// 管理接口，owner钱包校验先于一切副作用
		adminLogic := logic.NewAdminLogic(db, oracle, minter, signer, cfg.Dao)
		adminHandler := handler.NewAdminHandler(adminLogic)
		admin := v1.Group("/admin", handler.OwnerRequired(cfg.Dao))
		{
			admin.GET("/contributions/pending", adminHandler.ListPendingContributions)
			admin.POST("/contributions/:id/mint", adminHandler.MintForContribution)
			admin.POST("/contributions/:id/slash/:verifier", adminHandler.Slash)
			admin.GET("/verifiers/eligible", adminHandler.ListEligibleVerifiers)
			admin.POST("/verifiers/:wallet/mint", adminHandler.MintVerifierBadge)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Admin-Wallet")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
