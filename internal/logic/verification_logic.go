package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/metrics"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// VerificationLogic 同行验证业务逻辑
// 流程: 校验 -> 链上质押 -> 落库(staked) -> 链下签名 -> 更新(signed)
// 链上质押是质押存在性的唯一权威，质押失败不写任何本地记录
type VerificationLogic struct {
	db     *gorm.DB
	oracle contract.Oracle
	signer Signer
	dao    config.DaoConfig
}

// NewVerificationLogic 创建验证业务逻辑
func NewVerificationLogic(db *gorm.DB, oracle contract.Oracle, signer Signer, dao config.DaoConfig) *VerificationLogic {
	return &VerificationLogic{db: db, oracle: oracle, signer: signer, dao: dao}
}

// Submit 对贡献提交同行验证
func (v *VerificationLogic) Submit(ctx context.Context, contributionId, verifierWallet string) (*model.VerificationModel, error) {
	var contribution model.ContributionModel
	err := v.db.Preload("User").First(&contribution, "id = ?", contributionId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 贡献不存在", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询贡献失败: %w", err)
	}
	if contribution.User == nil {
		return nil, fmt.Errorf("%w: 贡献作者不存在", ErrNotFound)
	}

	verifier, err := NewUserLogic(v.db).GetByWallet(verifierWallet)
	if err != nil {
		return nil, err
	}

	// 禁止自我验证，任何链上调用之前拒绝
	if verifier.Id == contribution.UserId {
		return nil, fmt.Errorf("%w: 不能验证自己的贡献", ErrValidation)
	}

	// 同一贡献每人只能验证一次，唯一索引兜底并发竞争
	var existing int64
	if err := v.db.Model(&model.VerificationModel{}).
		Where("contribution_id = ? AND verifier_id = ?", contribution.Id, verifier.Id).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("查询验证记录失败: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: 已验证过该贡献", ErrDuplicate)
	}

	reason := contribution.Reason
	if reason == "" {
		reason = contribution.Proof
	}
	if reason == "" {
		reason = "DAO contribution"
	}

	// 链上质押，失败则快速退出
	subject := common.HexToAddress(contribution.User.Wallet)
	stakeTxHash, err := v.oracle.SubmitVerification(ctx, subject, reason, contribution.Id, v.dao.StakeAmount())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}
	metrics.VerificationsStaked.Inc()

	verification := model.VerificationModel{
		ContributionId: contribution.Id,
		UserId:         contribution.UserId,
		VerifierId:     verifier.Id,
		Dao:            contribution.Dao,
		Reason:         reason,
		StakeTxHash:    stakeTxHash,
		Step:           model.VerificationStepStaked,
	}
	if err := v.db.Create(&verification).Error; err != nil {
		// 质押已上链但落库失败，只能留给对账任务处理
		logger.Error("Verification staked on-chain but insert failed, contribution=%s verifier=%s tx=%s: %v",
			contribution.Id, verifier.Wallet, stakeTxHash, err)
		// 唯一索引冲突说明并发提交撞上了重复验证，其余是存储故障
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: 已验证过该贡献", ErrDuplicate)
		}
		return nil, fmt.Errorf("保存验证记录失败: %w", err)
	}

	// 链下签名，失败不回滚质押，记录停留在staked等待补签
	message := AttestationMessage(contribution.Dao, reason, contribution.User.Wallet)
	signature, err := v.signer.SignMessage(message)
	if err != nil {
		logger.Warn("Attestation signing failed for verification %s, left in staked state: %v", verification.Id, err)
		return &verification, nil
	}

	if err := v.db.Model(&verification).Updates(map[string]interface{}{
		"signature": signature,
		"step":      model.VerificationStepSigned,
	}).Error; err != nil {
		logger.Error("Failed to persist signature for verification %s: %v", verification.Id, err)
		return &verification, nil
	}
	verification.Signature = signature
	verification.Step = model.VerificationStepSigned
	metrics.VerificationsSigned.Inc()

	return &verification, nil
}

// AttachSignature 为停留在staked的记录补签名
func (v *VerificationLogic) AttachSignature(id, signature string) (*model.VerificationModel, error) {
	if signature == "" {
		return nil, fmt.Errorf("%w: 签名不能为空", ErrValidation)
	}

	var verification model.VerificationModel
	err := v.db.First(&verification, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 验证记录不存在", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询验证记录失败: %w", err)
	}
	if verification.Step == model.VerificationStepSigned {
		return nil, fmt.Errorf("%w: 该记录已签名", ErrDuplicate)
	}

	if err := v.db.Model(&verification).Updates(map[string]interface{}{
		"signature": signature,
		"step":      model.VerificationStepSigned,
	}).Error; err != nil {
		return nil, fmt.Errorf("更新签名失败: %w", err)
	}
	verification.Signature = signature
	verification.Step = model.VerificationStepSigned
	metrics.VerificationsSigned.Inc()

	return &verification, nil
}

// ListPending 获取未完成签名的验证记录
func (v *VerificationLogic) ListPending() ([]model.VerificationModel, error) {
	var pending []model.VerificationModel
	err := v.db.Where("step <> ?", model.VerificationStepSigned).
		Order("date DESC").Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("查询待签名验证失败: %w", err)
	}
	return pending, nil
}

// CountGiven 统计用户给出的验证数
func (v *VerificationLogic) CountGiven(verifierId string) (int64, error) {
	var count int64
	err := v.db.Model(&model.VerificationModel{}).
		Where("verifier_id = ?", verifierId).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计验证数失败: %w", err)
	}
	return count, nil
}

// AttestationMessage 人类可读的验证声明，验证者对其签名
func AttestationMessage(dao, reason, subjectWallet string) string {
	return fmt.Sprintf("I verify the contribution for DAO: %s\nReason: %s\nBy: %s", dao, reason, subjectWallet)
}
