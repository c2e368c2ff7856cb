package main

import (
	"context"
	"time"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/ethereum"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
)

// 一次性部署工具: 按配置顺序部署三个合约并打印地址
func main() {
	cfg := config.Load()
	defer logger.Sync()

	ethClient, err := ethereum.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize ethereum client: %v", err)
	}
	defer ethClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, name := range []string{"soulbound", "content", "oracle"} {
		contractCfg, ok := cfg.Chain.Contracts[name]
		if !ok || contractCfg.ArtifactPath == "" {
			logger.Warn("No artifact configured for contract %s, skipping", name)
			continue
		}

		artifact, err := contract.LoadArtifact(contractCfg.ArtifactPath)
		if err != nil {
			logger.Fatal("Failed to load artifact for %s: %v", name, err)
		}

		address, txHash, err := contract.Deploy(ctx, ethClient, artifact)
		if err != nil {
			logger.Fatal("Failed to deploy %s: %v", name, err)
		}

		logger.Info("%s deployed to: %s (tx: %s)", artifact.Name, address.Hex(), txHash)
	}
}
