package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel 用户模型，按钱包地址索引
type UserModel struct {
	Id        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 钱包地址（小写十六进制，唯一）
	Wallet string `json:"wallet" gorm:"uniqueIndex;not null" binding:"required"`

	// 个人资料
	DisplayName string `json:"display_name"`
	Ens         string `json:"ens"`
	Bio         string `json:"bio" gorm:"type:text"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate 生成主键并归一化钱包地址
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Id == "" {
		u.Id = uuid.NewString()
	}
	u.Wallet = strings.ToLower(u.Wallet)
	return nil
}
