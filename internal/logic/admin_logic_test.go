package logic

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const ownerWallet = "0xfF01A2491F19A0342f6B6b490D9ffDE0320306A1"

func newAdminFixture(t *testing.T) (*AdminLogic, *fakeOracle, *fakeMinter, *fakeSigner, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	oracle := newFakeOracle()
	minter := &fakeMinter{}
	signer := &fakeSigner{}
	adminLogic := NewAdminLogic(db, oracle, minter, signer, testDaoConfig())
	return adminLogic, oracle, minter, signer, db
}

// TestMintForContribution 端到端: 提交->三人验证->管理员铸造
func TestMintForContribution(t *testing.T) {
	adminLogic, oracle, minter, signer, db := newAdminFixture(t)

	author := createUser(t, db, "0x0000000000000000000000000000000000000030")
	contribution := createContribution(t, db, author.Id, "DAO X", "Fixed bug #42")
	for i := 0; i < 3; i++ {
		verifier := createUser(t, db, fmt.Sprintf("0x%040x", 0x300+i))
		createVerification(t, db, contribution.Id, author.Id, verifier.Id)
	}

	record, err := adminLogic.MintForContribution(context.Background(), ownerWallet, contribution.Id)
	require.NoError(t, err)

	// 铸造发到作者钱包，携带DAO和理由
	require.Len(t, minter.mintCalls, 1)
	assert.Equal(t, common.HexToAddress(author.Wallet), minter.mintCalls[0].To)
	assert.Equal(t, "DAO X", minter.mintCalls[0].Dao)
	assert.Equal(t, "Fixed bug #42", minter.mintCalls[0].Reason)

	// 贡献进入approved
	var updated model.ContributionModel
	require.NoError(t, db.First(&updated, "id = ?", contribution.Id).Error)
	assert.Equal(t, model.ContributionStatusApproved, updated.Status)

	// 恰好一条关联SBT记录
	var records []model.SoulboundModel
	require.NoError(t, db.Where("contribution_id = ?", contribution.Id).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, record.Id, records[0].Id)
	assert.Equal(t, "0xminttx", records[0].SbtTxHash)
	assert.Equal(t, "0xsignature", records[0].Signature)

	// 奖励发放指向贡献与作者钱包
	require.Len(t, oracle.claimCalls, 1)
	assert.Equal(t, contribution.Id, oracle.claimCalls[0].ContributionId)
	assert.Equal(t, common.HexToAddress(author.Wallet), oracle.claimCalls[0].Contributor)

	// 管理员签名内容
	require.Len(t, signer.signed, 1)
	assert.Contains(t, signer.signed[0], "Minted SBT for")
}

// TestMintForContributionNonOwner 非owner在任何合约调用前被拒绝
func TestMintForContributionNonOwner(t *testing.T) {
	adminLogic, oracle, minter, _, db := newAdminFixture(t)

	author := createUser(t, db, "0x0000000000000000000000000000000000000031")
	contribution := createContribution(t, db, author.Id, "DAO X", "r")

	_, err := adminLogic.MintForContribution(context.Background(), "0x0000000000000000000000000000000000000099", contribution.Id)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, minter.mintCalls)
	assert.Empty(t, oracle.claimCalls)
}

func TestMintForContributionInsufficientVerifications(t *testing.T) {
	adminLogic, _, minter, _, db := newAdminFixture(t)

	author := createUser(t, db, "0x0000000000000000000000000000000000000032")
	contribution := createContribution(t, db, author.Id, "DAO X", "r")
	verifier := createUser(t, db, "0x0000000000000000000000000000000000000033")
	createVerification(t, db, contribution.Id, author.Id, verifier.Id)

	_, err := adminLogic.MintForContribution(context.Background(), ownerWallet, contribution.Id)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, minter.mintCalls)
}

func TestMintForContributionRewardFailureKeepsRecords(t *testing.T) {
	adminLogic, oracle, minter, _, db := newAdminFixture(t)
	oracle.claimErr = errChainDown

	author := createUser(t, db, "0x0000000000000000000000000000000000000034")
	contribution := createContribution(t, db, author.Id, "DAO X", "r")
	for i := 0; i < 3; i++ {
		verifier := createUser(t, db, fmt.Sprintf("0x%040x", 0x340+i))
		createVerification(t, db, contribution.Id, author.Id, verifier.Id)
	}

	// 奖励发放失败: 铸造与本地记录保留，错误上抛
	_, err := adminLogic.MintForContribution(context.Background(), ownerWallet, contribution.Id)
	assert.ErrorIs(t, err, ErrRemoteCall)
	assert.Len(t, minter.mintCalls, 1)

	var updated model.ContributionModel
	require.NoError(t, db.First(&updated, "id = ?", contribution.Id).Error)
	assert.Equal(t, model.ContributionStatusApproved, updated.Status)
}

func TestMintVerifierBadge(t *testing.T) {
	adminLogic, _, minter, _, db := newAdminFixture(t)

	verifier := createUser(t, db, "0x0000000000000000000000000000000000000035")
	for i := 0; i < 5; i++ {
		author := createUser(t, db, fmt.Sprintf("0x%040x", 0x350+i))
		contribution := createContribution(t, db, author.Id, "DAO X", "r")
		createVerification(t, db, contribution.Id, author.Id, verifier.Id)
	}

	record, err := adminLogic.MintVerifierBadge(context.Background(), ownerWallet, verifier.Wallet)
	require.NoError(t, err)
	assert.Equal(t, "Verifier SBT", record.Dao)
	assert.Nil(t, record.ContributionId)
	require.Len(t, minter.mintCalls, 1)

	// 已持有徽章后不可重复铸造
	_, err = adminLogic.MintVerifierBadge(context.Background(), ownerWallet, verifier.Wallet)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMintVerifierBadgeBelowThreshold(t *testing.T) {
	adminLogic, _, minter, _, db := newAdminFixture(t)

	verifier := createUser(t, db, "0x0000000000000000000000000000000000000036")
	for i := 0; i < 4; i++ {
		author := createUser(t, db, fmt.Sprintf("0x%040x", 0x360+i))
		contribution := createContribution(t, db, author.Id, "DAO X", "r")
		createVerification(t, db, contribution.Id, author.Id, verifier.Id)
	}

	_, err := adminLogic.MintVerifierBadge(context.Background(), ownerWallet, verifier.Wallet)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, minter.mintCalls)
}

func TestListEligibleVerifiers(t *testing.T) {
	adminLogic, _, _, _, db := newAdminFixture(t)

	eligible := createUser(t, db, "0x0000000000000000000000000000000000000037")
	below := createUser(t, db, "0x0000000000000000000000000000000000000038")

	for i := 0; i < 5; i++ {
		author := createUser(t, db, fmt.Sprintf("0x%040x", 0x370+i))
		contribution := createContribution(t, db, author.Id, "DAO X", "r")
		createVerification(t, db, contribution.Id, author.Id, eligible.Id)
		if i < 2 {
			createVerification(t, db, contribution.Id, author.Id, below.Id)
		}
	}

	verifiers, err := adminLogic.ListEligibleVerifiers()
	require.NoError(t, err)
	require.Len(t, verifiers, 1)
	assert.Equal(t, eligible.Id, verifiers[0].Id)
	assert.Equal(t, int64(5), verifiers[0].VerificationsGiven)
}

func TestSlash(t *testing.T) {
	adminLogic, oracle, _, _, db := newAdminFixture(t)

	verifier := createUser(t, db, "0x0000000000000000000000000000000000000039")
	verifierAddr := common.HexToAddress(verifier.Wallet)
	oracle.stakes[stakeKey("contrib-1", verifierAddr)] = big.NewInt(10000000000000000)

	txHash, err := adminLogic.Slash(context.Background(), ownerWallet, "contrib-1", verifier.Wallet)
	require.NoError(t, err)
	assert.Equal(t, "0xslashtx", txHash)
	require.Len(t, oracle.slashCalls, 1)
	assert.Equal(t, "contrib-1", oracle.slashCalls[0].ContributionId)

	// 无质押不可罚没
	_, err = adminLogic.Slash(context.Background(), ownerWallet, "contrib-2", verifier.Wallet)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, oracle.slashCalls, 1)
}

// TestFeeSplit 奖励拆分: fee=floor(B*F/10000)
func TestFeeSplit(t *testing.T) {
	balance, _ := new(big.Int).SetString("1000000000000000000", 10)
	fee, payout := FeeSplit(balance, big.NewInt(500))
	assert.Equal(t, "50000000000000000", fee.String())
	assert.Equal(t, "950000000000000000", payout.String())

	// 向下取整
	fee, payout = FeeSplit(big.NewInt(9999), big.NewInt(1))
	assert.Equal(t, "0", fee.String())
	assert.Equal(t, "9999", payout.String())

	// 空输入按0处理
	fee, payout = FeeSplit(nil, nil)
	assert.Equal(t, "0", fee.String())
	assert.Equal(t, "0", payout.String())
}

func TestListPendingContributions(t *testing.T) {
	adminLogic, oracle, _, _, db := newAdminFixture(t)

	author := createUser(t, db, "0x000000000000000000000000000000000000003a")
	contribution := createContribution(t, db, author.Id, "DAO X", "r")
	verifier := createUser(t, db, "0x000000000000000000000000000000000000003b")
	createVerification(t, db, contribution.Id, author.Id, verifier.Id)

	balance, _ := new(big.Int).SetString("1000000000000000000", 10)
	oracle.balances[contribution.Id] = balance
	oracle.stakes[stakeKey(contribution.Id, common.HexToAddress(verifier.Wallet))] = big.NewInt(10000000000000000)

	pending, err := adminLogic.ListPendingContributions(context.Background(), ownerWallet)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	entry := pending[0]
	assert.Equal(t, int64(1), entry.VerificationCount)
	assert.False(t, entry.ReadyToMint)
	require.Len(t, entry.Stakes, 1)
	assert.Equal(t, "10000000000000000", entry.Stakes[0].Stake.String())
	assert.Equal(t, "50000000000000000", entry.DaoFee.String())
	assert.Equal(t, "950000000000000000", entry.Payout.String())

	// 非owner无法读取管理视图
	_, err = adminLogic.ListPendingContributions(context.Background(), "0x0000000000000000000000000000000000000099")
	assert.ErrorIs(t, err, ErrForbidden)
}
