package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationModel 同行验证记录模型
// (contribution_id, verifier_id) 唯一索引保证同一贡献每人只能验证一次
type VerificationModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ContributionId string `json:"contribution_id" gorm:"type:uuid;not null;uniqueIndex:idx_contribution_verifier"`
	UserId         string `json:"user_id" gorm:"type:uuid;index;not null"` // 被验证者
	VerifierId     string `json:"verifier_id" gorm:"type:uuid;not null;uniqueIndex:idx_contribution_verifier"`

	Dao    string    `json:"dao"`
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`

	// 链上质押交易哈希，质押成功后写入
	StakeTxHash string `json:"stake_tx_hash"`

	// 链下签名，签名完成前为空
	Signature string `json:"signature"`

	// 步骤状态: staked -> signed；质押后长期未签名由后台任务置为 needs_review
	Step VerificationStep `json:"step" gorm:"default:'staked'"`

	// 关联
	Verifier *UserModel `json:"verifier,omitempty" gorm:"foreignKey:VerifierId"`
}

// VerificationStep 验证流程步骤
type VerificationStep string

const (
	VerificationStepStaked      VerificationStep = "staked"       // 已质押未签名
	VerificationStepSigned      VerificationStep = "signed"       // 已签名
	VerificationStepNeedsReview VerificationStep = "needs_review" // 质押超时待管理员处理
)

// TableName 自定义表名
func (VerificationModel) TableName() string {
	return "verifications"
}

// BeforeCreate 生成主键
func (v *VerificationModel) BeforeCreate(tx *gorm.DB) error {
	if v.Id == "" {
		v.Id = uuid.NewString()
	}
	if v.Date.IsZero() {
		v.Date = time.Now()
	}
	return nil
}
