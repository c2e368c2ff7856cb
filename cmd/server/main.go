package main

import (
	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/database"
	"github.com/MERAJ-droid/SoLverse/internal/ethereum"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/router"
	"github.com/MERAJ-droid/SoLverse/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化以太坊客户端
	ethClient, err := ethereum.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize ethereum client: %v", err)
	}
	defer ethClient.Close()

	// 初始化合约
	oracle, err := contract.NewReputationOracle(ethClient, cfg.Chain.Contracts["oracle"].Address)
	if err != nil {
		logger.Fatal("Failed to initialize reputation oracle: %v", err)
	}
	minter, err := contract.NewSoulboundToken(ethClient, cfg.Chain.Contracts["soulbound"].Address)
	if err != nil {
		logger.Fatal("Failed to initialize soulbound token: %v", err)
	}
	content, err := contract.NewContentNFT(ethClient, cfg.Chain.Contracts["content"].Address)
	if err != nil {
		logger.Fatal("Failed to initialize content token: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, oracle, minter, content, ethClient, cfg)

	// 启动定时任务
	manager := task.Start(db, oracle, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
