package logic

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/metrics"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// AdminLogic 管理员铸造与奖励分发业务逻辑
// 所有操作先做owner校验，未通过不发起任何链上调用
type AdminLogic struct {
	db     *gorm.DB
	oracle contract.Oracle
	minter contract.SoulboundMinter
	signer Signer
	dao    config.DaoConfig
}

// NewAdminLogic 创建管理员业务逻辑
func NewAdminLogic(db *gorm.DB, oracle contract.Oracle, minter contract.SoulboundMinter, signer Signer, dao config.DaoConfig) *AdminLogic {
	return &AdminLogic{db: db, oracle: oracle, minter: minter, signer: signer, dao: dao}
}

// requireOwner 管理员权限校验
func (a *AdminLogic) requireOwner(wallet string) error {
	if !a.dao.IsOwner(wallet) {
		return fmt.Errorf("%w: 仅合约owner可执行此操作", ErrForbidden)
	}
	return nil
}

// MintForContribution 为达到验证门槛的贡献铸造SBT并发放奖励
// 顺序: 铸造 -> 管理员签名(尽力而为) -> 状态approved -> SBT记录 -> 奖励发放
// 各步骤之间不具备原子性，奖励发放失败时本地状态保留并返回错误
func (a *AdminLogic) MintForContribution(ctx context.Context, adminWallet, contributionId string) (*model.SoulboundModel, error) {
	if err := a.requireOwner(adminWallet); err != nil {
		return nil, err
	}

	var contribution model.ContributionModel
	err := a.db.Preload("User").First(&contribution, "id = ?", contributionId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 贡献不存在", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询贡献失败: %w", err)
	}
	if contribution.Status != model.ContributionStatusPending {
		return nil, fmt.Errorf("%w: 贡献已铸造", ErrValidation)
	}
	if contribution.User == nil || contribution.User.Wallet == "" {
		return nil, fmt.Errorf("%w: 贡献作者无钱包地址", ErrNotFound)
	}

	var count int64
	if err := a.db.Model(&model.VerificationModel{}).
		Where("contribution_id = ?", contribution.Id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("统计验证数失败: %w", err)
	}
	if count < a.dao.MinVerificationsToMint {
		return nil, fmt.Errorf("%w: 验证数不足，当前%d，需要%d", ErrValidation, count, a.dao.MinVerificationsToMint)
	}

	reason := contribution.Reason
	if reason == "" {
		reason = "DAO Contribution"
	}

	wallet := common.HexToAddress(contribution.User.Wallet)
	txHash, err := a.minter.Mint(ctx, wallet, contribution.Dao, reason, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	metrics.SbtMints.WithLabelValues("contribution").Inc()

	// 管理员签名尽力而为，失败不阻断流程
	message := fmt.Sprintf("Minted SBT for %s in %s for: %s", contribution.User.Wallet, contribution.Dao, contribution.Reason)
	signature, err := a.signer.SignMessage(message)
	if err != nil {
		logger.Warn("Admin signature failed for contribution %s: %v", contribution.Id, err)
		signature = ""
	}

	if err := a.db.Model(&contribution).
		Update("status", model.ContributionStatusApproved).Error; err != nil {
		return nil, fmt.Errorf("更新贡献状态失败: %w", err)
	}

	record := model.SoulboundModel{
		UserId:         contribution.UserId,
		Dao:            contribution.Dao,
		Reason:         contribution.Reason,
		SbtTxHash:      txHash,
		Signature:      signature,
		ContributionId: &contribution.Id,
	}
	if err := a.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("保存SBT记录失败: %w", err)
	}

	// 奖励发放: 质押余额扣除DAO手续费后归贡献者
	if _, err := a.oracle.ClaimReward(ctx, contribution.Id, wallet); err != nil {
		logger.Error("Reward claim failed after mint, contribution=%s: %v", contribution.Id, err)
		return &record, fmt.Errorf("%w: SBT已铸造但奖励发放失败: %w", ErrRemoteCall, err)
	}
	metrics.RewardClaims.Inc()

	return &record, nil
}

// MintVerifierBadge 为活跃验证者铸造徽章SBT
func (a *AdminLogic) MintVerifierBadge(ctx context.Context, adminWallet, verifierWallet string) (*model.SoulboundModel, error) {
	if err := a.requireOwner(adminWallet); err != nil {
		return nil, err
	}

	verifier, err := NewUserLogic(a.db).GetByWallet(verifierWallet)
	if err != nil {
		return nil, err
	}

	count, err := NewVerificationLogic(a.db, a.oracle, a.signer, a.dao).CountGiven(verifier.Id)
	if err != nil {
		return nil, err
	}
	if count < a.dao.VerifierBadgeThreshold {
		return nil, fmt.Errorf("%w: 验证数不足，当前%d，需要%d", ErrValidation, count, a.dao.VerifierBadgeThreshold)
	}

	hasBadge, err := a.hasVerifierBadge(verifier.Id)
	if err != nil {
		return nil, err
	}
	if hasBadge {
		return nil, fmt.Errorf("%w: 已持有验证者徽章", ErrDuplicate)
	}

	reason := fmt.Sprintf("Verifier SBT: Awarded for %d+ verifications", a.dao.VerifierBadgeThreshold)
	txHash, err := a.minter.Mint(ctx, common.HexToAddress(verifier.Wallet), "Verifier SBT", reason, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	metrics.SbtMints.WithLabelValues("verifier").Inc()

	record := model.SoulboundModel{
		UserId:    verifier.Id,
		Dao:       "Verifier SBT",
		Reason:    reason,
		SbtTxHash: txHash,
	}
	if err := a.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("保存SBT记录失败: %w", err)
	}

	return &record, nil
}

// EligibleVerifier 可获徽章的验证者
type EligibleVerifier struct {
	model.UserModel
	VerificationsGiven int64 `json:"verifications_given"`
}

// ListEligibleVerifiers 验证数达标且未持有徽章的用户
func (a *AdminLogic) ListEligibleVerifiers() ([]EligibleVerifier, error) {
	var users []model.UserModel
	if err := a.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	counts, err := verificationsGivenCounts(a.db)
	if err != nil {
		return nil, err
	}

	eligible := make([]EligibleVerifier, 0)
	for _, user := range users {
		count := counts[user.Id]
		if count < a.dao.VerifierBadgeThreshold {
			continue
		}
		hasBadge, err := a.hasVerifierBadge(user.Id)
		if err != nil {
			return nil, err
		}
		if hasBadge {
			continue
		}
		eligible = append(eligible, EligibleVerifier{UserModel: user, VerificationsGiven: count})
	}
	return eligible, nil
}

// Slash 罚没验证者质押，纯链上操作，不写本地账本
func (a *AdminLogic) Slash(ctx context.Context, adminWallet, contributionId, verifierWallet string) (string, error) {
	if err := a.requireOwner(adminWallet); err != nil {
		return "", err
	}

	verifier := common.HexToAddress(verifierWallet)
	stake, err := a.oracle.GetVerifierStake(ctx, contributionId, verifier)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	if stake == nil || stake.Sign() == 0 {
		return "", fmt.Errorf("%w: 该验证者无质押可罚没", ErrValidation)
	}

	txHash, err := a.oracle.SlashVerifier(ctx, contributionId, verifier)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	metrics.VerifierSlashes.Inc()

	return txHash, nil
}

// VerifierStake 贡献上某验证者的质押
type VerifierStake struct {
	VerifierId string   `json:"verifier_id"`
	Wallet     string   `json:"wallet"`
	Stake      *big.Int `json:"stake"`
}

// PendingContribution 管理面板的待铸造贡献视图
type PendingContribution struct {
	ContributionMeta
	Stakes  []VerifierStake `json:"stakes"`
	Balance *big.Int        `json:"balance"`
	DaoFee  *big.Int        `json:"dao_fee"`
	Payout  *big.Int        `json:"payout"`
}

// ListPendingContributions 待铸造贡献及质押、奖励预览
func (a *AdminLogic) ListPendingContributions(ctx context.Context, adminWallet string) ([]PendingContribution, error) {
	if err := a.requireOwner(adminWallet); err != nil {
		return nil, err
	}

	pending, err := NewContributionLogic(a.db, a.dao).List(string(model.ContributionStatusPending))
	if err != nil {
		return nil, err
	}

	feeBps, err := a.oracle.GetDaoFeeBps(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}

	result := make([]PendingContribution, 0, len(pending))
	for _, meta := range pending {
		var verifications []model.VerificationModel
		if err := a.db.Preload("Verifier").
			Where("contribution_id = ?", meta.Id).Find(&verifications).Error; err != nil {
			return nil, fmt.Errorf("查询验证记录失败: %w", err)
		}

		stakes := make([]VerifierStake, 0, len(verifications))
		for _, verification := range verifications {
			if verification.Verifier == nil {
				continue
			}
			stake, err := a.oracle.GetVerifierStake(ctx, meta.Id, common.HexToAddress(verification.Verifier.Wallet))
			if err != nil {
				logger.Warn("Failed to read stake for contribution %s verifier %s: %v",
					meta.Id, verification.Verifier.Wallet, err)
				continue
			}
			stakes = append(stakes, VerifierStake{
				VerifierId: verification.VerifierId,
				Wallet:     verification.Verifier.Wallet,
				Stake:      stake,
			})
		}

		balance, err := a.oracle.GetContributionBalance(ctx, meta.Id)
		if err != nil {
			logger.Warn("Failed to read balance for contribution %s: %v", meta.Id, err)
			balance = big.NewInt(0)
		}
		fee, payout := FeeSplit(balance, feeBps)

		result = append(result, PendingContribution{
			ContributionMeta: meta,
			Stakes:           stakes,
			Balance:          balance,
			DaoFee:           fee,
			Payout:           payout,
		})
	}
	return result, nil
}

// hasVerifierBadge 是否已持有验证者徽章SBT
func (a *AdminLogic) hasVerifierBadge(userId string) (bool, error) {
	var count int64
	err := a.db.Model(&model.SoulboundModel{}).
		Where("user_id = ? AND LOWER(reason) LIKE ?", userId, "%verifier%").
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询SBT记录失败: %w", err)
	}
	return count > 0, nil
}

// verificationsGivenCounts 按验证者统计给出的验证数
func verificationsGivenCounts(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		VerifierId string
		Count      int64
	}
	err := db.Model(&model.VerificationModel{}).
		Select("verifier_id, COUNT(*) as count").
		Group("verifier_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("统计验证数失败: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.VerifierId] = row.Count
	}
	return counts, nil
}

// FeeSplit 奖励拆分: 手续费=floor(余额*费率/10000)，余下归贡献者
func FeeSplit(balance, feeBps *big.Int) (fee, payout *big.Int) {
	if balance == nil {
		balance = big.NewInt(0)
	}
	if feeBps == nil {
		feeBps = big.NewInt(0)
	}
	fee = new(big.Int).Mul(balance, feeBps)
	fee.Div(fee, big.NewInt(10000))
	payout = new(big.Int).Sub(balance, fee)
	return fee, payout
}
