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
	"github.com/ethereum/go-ethereum/core/types"
)

// 信誉预言机合约ABI定义（简化版）
const reputationOracleABI = `[
	{
		"name": "getTrustScore",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "verifierStakes",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "contributionId", "type": "string"},
			{"name": "verifier", "type": "address"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "contributionBalances",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "contributionId", "type": "string"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "daoFeeBps",
		"type": "function",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "submitVerification",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "subject", "type": "address"},
			{"name": "reason", "type": "string"},
			{"name": "contributionId", "type": "string"}
		],
		"outputs": []
	},
	{
		"name": "claimReward",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "contributionId", "type": "string"},
			{"name": "contributor", "type": "address"}
		],
		"outputs": []
	},
	{
		"name": "slashVerifier",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "contributionId", "type": "string"},
			{"name": "verifier", "type": "address"}
		],
		"outputs": []
	}
]`

// ReputationOracle 信誉预言机合约包装器
type ReputationOracle struct {
	eth      *ethereum.Client
	contract *bind.BoundContract
	address  common.Address
}

// NewReputationOracle 创建信誉预言机合约实例
func NewReputationOracle(eth *ethereum.Client, address string) (*ReputationOracle, error) {
	parsedABI, err := abi.JSON(strings.NewReader(reputationOracleABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse oracle ABI: %w", err)
	}

	contractAddr := common.HexToAddress(address)
	client := eth.EthClient()
	contract := bind.NewBoundContract(contractAddr, parsedABI, client, client, client)

	return &ReputationOracle{
		eth:      eth,
		contract: contract,
		address:  contractAddr,
	}, nil
}

// GetAddress 获取合约地址
func (o *ReputationOracle) GetAddress() common.Address {
	return o.address
}

// GetTrustScore 读取信任分
func (o *ReputationOracle) GetTrustScore(ctx context.Context, user common.Address) (*big.Int, error) {
	return o.callUint(ctx, "getTrustScore", user)
}

// GetVerifierStake 读取验证者在某贡献上的质押金额
func (o *ReputationOracle) GetVerifierStake(ctx context.Context, contributionId string, verifier common.Address) (*big.Int, error) {
	return o.callUint(ctx, "verifierStakes", contributionId, verifier)
}

// GetContributionBalance 读取贡献累计质押余额
func (o *ReputationOracle) GetContributionBalance(ctx context.Context, contributionId string) (*big.Int, error) {
	return o.callUint(ctx, "contributionBalances", contributionId)
}

// GetDaoFeeBps 读取DAO手续费率（基点）
func (o *ReputationOracle) GetDaoFeeBps(ctx context.Context) (*big.Int, error) {
	return o.callUint(ctx, "daoFeeBps")
}

// SubmitVerification 提交验证并质押，返回交易哈希
func (o *ReputationOracle) SubmitVerification(ctx context.Context, subject common.Address, reason, contributionId string, stake *big.Int) (string, error) {
	return o.transact(ctx, stake, "submitVerification", subject, reason, contributionId)
}

// ClaimReward 发放贡献奖励（扣除DAO手续费后归贡献者）
func (o *ReputationOracle) ClaimReward(ctx context.Context, contributionId string, contributor common.Address) (string, error) {
	return o.transact(ctx, nil, "claimReward", contributionId, contributor)
}

// SlashVerifier 罚没验证者质押
func (o *ReputationOracle) SlashVerifier(ctx context.Context, contributionId string, verifier common.Address) (string, error) {
	return o.transact(ctx, nil, "slashVerifier", contributionId, verifier)
}

// callUint 只读调用，返回单个uint256
func (o *ReputationOracle) callUint(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := o.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("oracle call %s failed: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("oracle call %s returned no value", method)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// transact 发送交易并等待上链确认
func (o *ReputationOracle) transact(ctx context.Context, value *big.Int, method string, params ...interface{}) (string, error) {
	auth, err := o.eth.GetAuth()
	if err != nil {
		return "", err
	}
	auth.Context = ctx
	auth.Value = value

	tx, err := o.contract.Transact(auth, method, params...)
	if err != nil {
		return "", fmt.Errorf("oracle transact %s failed: %w", method, err)
	}

	receipt, err := bind.WaitMined(ctx, o.eth.EthClient(), tx)
	if err != nil {
		return "", fmt.Errorf("oracle transact %s not mined: %w", method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("oracle transact %s reverted: %s", method, tx.Hash().Hex())
	}

	return tx.Hash().Hex(), nil
}
