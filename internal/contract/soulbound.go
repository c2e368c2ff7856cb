package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/MERAJ-droid/SoLverse/internal/ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// 灵魂绑定代币合约ABI定义（简化版）
const soulboundTokenABI = `[
	{
		"name": "mint",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "dao", "type": "string"},
			{"name": "reason", "type": "string"},
			{"name": "tokenURI", "type": "string"}
		],
		"outputs": []
	}
]`

// SoulboundToken 灵魂绑定代币合约包装器
type SoulboundToken struct {
	eth      *ethereum.Client
	contract *bind.BoundContract
	address  common.Address
}

// NewSoulboundToken 创建灵魂绑定代币合约实例
func NewSoulboundToken(eth *ethereum.Client, address string) (*SoulboundToken, error) {
	parsedABI, err := abi.JSON(strings.NewReader(soulboundTokenABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse soulbound ABI: %w", err)
	}

	contractAddr := common.HexToAddress(address)
	client := eth.EthClient()
	contract := bind.NewBoundContract(contractAddr, parsedABI, client, client, client)

	return &SoulboundToken{
		eth:      eth,
		contract: contract,
		address:  contractAddr,
	}, nil
}

// GetAddress 获取合约地址
func (s *SoulboundToken) GetAddress() common.Address {
	return s.address
}

// Mint 铸造不可转让代币，返回交易哈希
func (s *SoulboundToken) Mint(ctx context.Context, to common.Address, dao, reason, tokenURI string) (string, error) {
	auth, err := s.eth.GetAuth()
	if err != nil {
		return "", err
	}
	auth.Context = ctx

	tx, err := s.contract.Transact(auth, "mint", to, dao, reason, tokenURI)
	if err != nil {
		return "", fmt.Errorf("soulbound mint failed: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, s.eth.EthClient(), tx)
	if err != nil {
		return "", fmt.Errorf("soulbound mint not mined: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("soulbound mint reverted: %s", tx.Hash().Hex())
	}

	return tx.Hash().Hex(), nil
}
