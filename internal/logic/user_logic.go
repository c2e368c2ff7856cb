package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MERAJ-droid/SoLverse/internal/model"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// SyncUser 按钱包地址幂等更新用户，首次连接钱包时创建
func (u *UserLogic) SyncUser(wallet, displayName, ens string) (*model.UserModel, error) {
	if wallet == "" {
		return nil, fmt.Errorf("%w: 钱包地址不能为空", ErrValidation)
	}
	wallet = strings.ToLower(wallet)

	var user model.UserModel
	err := u.db.Where("wallet = ?", wallet).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.UserModel{
			Wallet:      wallet,
			DisplayName: displayName,
			Ens:         ens,
		}
		if err := u.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("创建用户失败: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	// 只覆盖调用方提供的字段
	updates := make(map[string]interface{})
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if ens != "" {
		updates["ens"] = ens
	}
	if len(updates) > 0 {
		if err := u.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("更新用户失败: %w", err)
		}
	}

	return &user, nil
}

// GetByWallet 按钱包地址查询用户
func (u *UserLogic) GetByWallet(wallet string) (*model.UserModel, error) {
	var user model.UserModel
	err := u.db.Where("wallet = ?", strings.ToLower(wallet)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// UpdateProfile 编辑个人资料
func (u *UserLogic) UpdateProfile(wallet string, displayName, ens, bio *string) (*model.UserModel, error) {
	user, err := u.GetByWallet(wallet)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if displayName != nil {
		updates["display_name"] = *displayName
	}
	if ens != nil {
		updates["ens"] = *ens
	}
	if bio != nil {
		updates["bio"] = *bio
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: 没有要更新的字段", ErrValidation)
	}

	if err := u.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新资料失败: %w", err)
	}
	return user, nil
}

// Profile 个人主页聚合视图
type Profile struct {
	User          *model.UserModel          `json:"user"`
	Verifications []model.VerificationModel `json:"verifications"`
	Soulbounds    []model.SoulboundModel    `json:"soulbounds"`
	Content       []model.ContentModel      `json:"content"`
	Contributions []model.ContributionModel `json:"contributions"`
}

// GetProfile 获取用户资料及其验证、SBT、内容发布和贡献历史
func (u *UserLogic) GetProfile(wallet string) (*Profile, error) {
	user, err := u.GetByWallet(wallet)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}

	if err := u.db.Where("verifier_id = ?", user.Id).
		Order("date DESC").Find(&profile.Verifications).Error; err != nil {
		return nil, fmt.Errorf("查询验证历史失败: %w", err)
	}

	if err := u.db.Where("user_id = ?", user.Id).
		Order("minted_on DESC").Find(&profile.Soulbounds).Error; err != nil {
		return nil, fmt.Errorf("查询SBT记录失败: %w", err)
	}

	if err := u.db.Where("user_id = ?", user.Id).
		Order("timestamp DESC").Find(&profile.Content).Error; err != nil {
		return nil, fmt.Errorf("查询内容发布失败: %w", err)
	}

	if err := u.db.Where("user_id = ?", user.Id).
		Order("created_at DESC").Find(&profile.Contributions).Error; err != nil {
		return nil, fmt.Errorf("查询贡献历史失败: %w", err)
	}

	return profile, nil
}
