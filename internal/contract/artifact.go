package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/MERAJ-droid/SoLverse/internal/ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Artifact hardhat编译产物
type Artifact struct {
	ABI      abi.ABI
	Bytecode []byte
	Name     string
}

// LoadArtifact 加载hardhat编译产物文件
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact from %s: %w", path, err)
	}

	var compiled struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     string          `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &compiled); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if compiled.ABI == nil || compiled.Bytecode == "" {
		return nil, fmt.Errorf("artifact %s missing abi or bytecode", path)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(compiled.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI from artifact %s: %w", path, err)
	}

	bytecode := common.FromHex(strings.TrimSpace(compiled.Bytecode))

	return &Artifact{
		ABI:      parsedABI,
		Bytecode: bytecode,
		Name:     compiled.ContractName,
	}, nil
}

// Deploy 部署合约并等待上链，返回合约地址和交易哈希
func Deploy(ctx context.Context, eth *ethereum.Client, artifact *Artifact, params ...interface{}) (common.Address, string, error) {
	auth, err := eth.GetAuth()
	if err != nil {
		return common.Address{}, "", err
	}
	auth.Context = ctx

	address, tx, _, err := bind.DeployContract(auth, artifact.ABI, artifact.Bytecode, eth.EthClient(), params...)
	if err != nil {
		return common.Address{}, "", fmt.Errorf("failed to deploy %s: %w", artifact.Name, err)
	}

	receipt, err := bind.WaitMined(ctx, eth.EthClient(), tx)
	if err != nil {
		return common.Address{}, "", fmt.Errorf("deploy %s not mined: %w", artifact.Name, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Address{}, "", fmt.Errorf("deploy %s reverted: %s", artifact.Name, tx.Hash().Hex())
	}

	return address, tx.Hash().Hex(), nil
}
