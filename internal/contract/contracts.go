package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Oracle 信誉预言机合约能力集
// 读接口走公共RPC，写接口由服务端私钥签名并等待上链确认
type Oracle interface {
	GetTrustScore(ctx context.Context, user common.Address) (*big.Int, error)
	GetVerifierStake(ctx context.Context, contributionId string, verifier common.Address) (*big.Int, error)
	GetContributionBalance(ctx context.Context, contributionId string) (*big.Int, error)
	GetDaoFeeBps(ctx context.Context) (*big.Int, error)
	SubmitVerification(ctx context.Context, subject common.Address, reason, contributionId string, stake *big.Int) (string, error)
	ClaimReward(ctx context.Context, contributionId string, contributor common.Address) (string, error)
	SlashVerifier(ctx context.Context, contributionId string, verifier common.Address) (string, error)
}

// SoulboundMinter 灵魂绑定代币铸造能力集
type SoulboundMinter interface {
	Mint(ctx context.Context, to common.Address, dao, reason, tokenURI string) (string, error)
}

// ContentToken 内容凭证合约只读能力集
type ContentToken interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index *big.Int) (*big.Int, error)
	TokenURI(ctx context.Context, tokenId *big.Int) (string, error)
}
