package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentModel 内容发布记录，对应ContentNFT的一次铸造
type ContentModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId string `json:"user_id" gorm:"type:uuid;index;not null"`

	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`

	// 元数据URI（ipfs://形式，展示时重写为网关地址）
	TokenURI string `json:"token_uri"`

	// 链上铸造交易哈希
	TxHash string `json:"tx_hash"`

	// 发布时间，个人主页按此倒序展示
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// TableName 自定义表名
func (ContentModel) TableName() string {
	return "content"
}

// BeforeCreate 生成主键
func (c *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if c.Id == "" {
		c.Id = uuid.NewString()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return nil
}
