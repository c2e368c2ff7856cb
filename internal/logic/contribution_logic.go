package logic

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"gorm.io/gorm"
)

// ContributionLogic 贡献业务逻辑
type ContributionLogic struct {
	db  *gorm.DB
	dao config.DaoConfig
}

// NewContributionLogic 创建贡献业务逻辑
func NewContributionLogic(db *gorm.DB, dao config.DaoConfig) *ContributionLogic {
	return &ContributionLogic{db: db, dao: dao}
}

// ContributionMeta 贡献及其派生字段
type ContributionMeta struct {
	model.ContributionModel
	VerificationCount int64 `json:"verification_count"`
	ReadyToMint       bool  `json:"ready_to_mint"`
}

// Submit 提交贡献，作者钱包必须已注册
func (c *ContributionLogic) Submit(wallet, dao, reason, proof string) (*model.ContributionModel, error) {
	if dao == "" {
		return nil, fmt.Errorf("%w: DAO名称不能为空", ErrValidation)
	}
	if proof == "" {
		return nil, fmt.Errorf("%w: 证明链接不能为空", ErrValidation)
	}
	if utf8.RuneCountInString(reason) > 256 {
		return nil, fmt.Errorf("%w: 描述不能超过256字符", ErrValidation)
	}

	user, err := NewUserLogic(c.db).GetByWallet(wallet)
	if err != nil {
		return nil, err
	}

	contribution := model.ContributionModel{
		UserId: user.Id,
		Dao:    dao,
		Reason: reason,
		Proof:  proof,
		Status: model.ContributionStatusPending,
	}
	if err := c.db.Create(&contribution).Error; err != nil {
		return nil, fmt.Errorf("创建贡献失败: %w", err)
	}

	return &contribution, nil
}

// Get 获取贡献详情及验证记录
func (c *ContributionLogic) Get(id string) (*ContributionMeta, error) {
	var contribution model.ContributionModel
	err := c.db.Preload("User").Preload("Verifications").Preload("Verifications.Verifier").
		First(&contribution, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 贡献不存在", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询贡献失败: %w", err)
	}

	count := int64(len(contribution.Verifications))
	return &ContributionMeta{
		ContributionModel: contribution,
		VerificationCount: count,
		ReadyToMint:       c.ReadyToMint(count),
	}, nil
}

// List 获取贡献列表，可按状态过滤
func (c *ContributionLogic) List(status string) ([]ContributionMeta, error) {
	query := c.db.Preload("User").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var contributions []model.ContributionModel
	if err := query.Find(&contributions).Error; err != nil {
		return nil, fmt.Errorf("查询贡献列表失败: %w", err)
	}

	counts, err := c.verificationCounts()
	if err != nil {
		return nil, err
	}

	result := make([]ContributionMeta, 0, len(contributions))
	for _, contribution := range contributions {
		count := counts[contribution.Id]
		result = append(result, ContributionMeta{
			ContributionModel: contribution,
			VerificationCount: count,
			ReadyToMint:       c.ReadyToMint(count),
		})
	}
	return result, nil
}

// ReadyToMint 验证数达到铸造门槛
// 派生标记，贡献状态仍由管理员铸造时变更
func (c *ContributionLogic) ReadyToMint(verificationCount int64) bool {
	return verificationCount >= c.dao.MinVerificationsToMint
}

// verificationCounts 按贡献统计验证数
func (c *ContributionLogic) verificationCounts() (map[string]int64, error) {
	var rows []struct {
		ContributionId string
		Count          int64
	}
	err := c.db.Model(&model.VerificationModel{}).
		Select("contribution_id, COUNT(*) as count").
		Group("contribution_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("统计验证数失败: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ContributionId] = row.Count
	}
	return counts, nil
}
