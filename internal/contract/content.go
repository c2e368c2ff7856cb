package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/MERAJ-droid/SoLverse/internal/ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// 内容凭证合约ABI定义（只读枚举接口）
const contentNFTABI = `[
	{
		"name": "balanceOf",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "owner", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "tokenOfOwnerByIndex",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "owner", "type": "address"},
			{"name": "index", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "tokenURI",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "tokenId", "type": "uint256"}],
		"outputs": [{"name": "", "type": "string"}]
	}
]`

// ContentNFT 内容凭证合约包装器
type ContentNFT struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewContentNFT 创建内容凭证合约实例
func NewContentNFT(eth *ethereum.Client, address string) (*ContentNFT, error) {
	parsedABI, err := abi.JSON(strings.NewReader(contentNFTABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse content ABI: %w", err)
	}

	contractAddr := common.HexToAddress(address)
	client := eth.EthClient()
	contract := bind.NewBoundContract(contractAddr, parsedABI, client, client, client)

	return &ContentNFT{
		contract: contract,
		address:  contractAddr,
	}, nil
}

// GetAddress 获取合约地址
func (c *ContentNFT) GetAddress() common.Address {
	return c.address
}

// BalanceOf 查询钱包持有凭证数量
func (c *ContentNFT) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return c.callUint(ctx, "balanceOf", owner)
}

// TokenOfOwnerByIndex 按序号枚举钱包持有的凭证
func (c *ContentNFT) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index *big.Int) (*big.Int, error) {
	return c.callUint(ctx, "tokenOfOwnerByIndex", owner, index)
}

// TokenURI 查询凭证元数据URI
func (c *ContentNFT) TokenURI(ctx context.Context, tokenId *big.Int) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "tokenURI", tokenId); err != nil {
		return "", fmt.Errorf("content call tokenURI failed: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("content call tokenURI returned no value")
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// callUint 只读调用，返回单个uint256
func (c *ContentNFT) callUint(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("content call %s failed: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("content call %s returned no value", method)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
