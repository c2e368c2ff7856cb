package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContributionModel 贡献记录模型
type ContributionModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 作者
	UserId string `json:"user_id" gorm:"type:uuid;index;not null"`

	// 贡献内容
	Dao    string `json:"dao" gorm:"not null" binding:"required"`
	Reason string `json:"reason" gorm:"size:256"`
	Proof  string `json:"proof"`

	// 状态: pending -> approved，仅管理员铸造时变更一次
	Status ContributionStatus `json:"status" gorm:"default:'pending'"`

	// 关联
	User          *UserModel          `json:"user,omitempty" gorm:"foreignKey:UserId"`
	Verifications []VerificationModel `json:"verifications,omitempty" gorm:"foreignKey:ContributionId"`
}

// ContributionStatus 贡献状态
type ContributionStatus string

const (
	ContributionStatusPending  ContributionStatus = "pending"  // 待审核
	ContributionStatusApproved ContributionStatus = "approved" // 已铸造SBT
)

// TableName 自定义表名
func (ContributionModel) TableName() string {
	return "contributions"
}

// BeforeCreate 生成主键
func (c *ContributionModel) BeforeCreate(tx *gorm.DB) error {
	if c.Id == "" {
		c.Id = uuid.NewString()
	}
	return nil
}
