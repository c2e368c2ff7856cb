package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SoulboundModel 灵魂绑定代币记录，铸造后不可变更
type SoulboundModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId string `json:"user_id" gorm:"type:uuid;index;not null"`

	Dao      string    `json:"dao"`
	Reason   string    `json:"reason"`
	MintedOn time.Time `json:"minted_on"`

	// 链上铸造交易哈希
	SbtTxHash string `json:"sbt_tx_hash"`

	// 管理员签名（尽力而为，可为空）
	Signature string `json:"signature"`

	// 验证者徽章的记录此字段为空
	ContributionId *string `json:"contribution_id" gorm:"type:uuid;index"`
}

// TableName 自定义表名
func (SoulboundModel) TableName() string {
	return "soulbounds"
}

// BeforeCreate 生成主键
func (s *SoulboundModel) BeforeCreate(tx *gorm.DB) error {
	if s.Id == "" {
		s.Id = uuid.NewString()
	}
	if s.MintedOn.IsZero() {
		s.MintedOn = time.Now()
	}
	return nil
}
