package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/metrics"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

// 徽章等级
const (
	BadgeNone        = "None"
	BadgeRisingPeer  = "Rising Peer"
	BadgeActivePeer  = "Active Peer"
	BadgeTopVerifier = "Top Verifier"
)

// LeaderboardLogic 信任分排行业务逻辑
type LeaderboardLogic struct {
	db     *gorm.DB
	oracle contract.Oracle
	dao    config.DaoConfig
}

// NewLeaderboardLogic 创建排行业务逻辑
func NewLeaderboardLogic(db *gorm.DB, oracle contract.Oracle, dao config.DaoConfig) *LeaderboardLogic {
	return &LeaderboardLogic{db: db, oracle: oracle, dao: dao}
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	model.UserModel
	RawScore           int64   `json:"raw_score"`
	TrustScore         float64 `json:"trust_score"` // 展示值 = 原始值/10
	VerificationsGiven int64   `json:"verifications_given"`
	Badge              string  `json:"badge"`
}

// Leaderboard 按信任分降序的全量排行
// 优先读后台任务维护的快照表，快照为空时逐个回源预言机
func (l *LeaderboardLogic) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var users []model.UserModel
	if err := l.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	counts, err := verificationsGivenCounts(l.db)
	if err != nil {
		return nil, err
	}

	scores, err := l.snapshotScores()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		raw, ok := scores[user.Id]
		if !ok {
			raw = l.liveScore(ctx, user.Wallet)
		}
		given := counts[user.Id]
		entries = append(entries, LeaderboardEntry{
			UserModel:          user,
			RawScore:           raw,
			TrustScore:         float64(raw) / 10,
			VerificationsGiven: given,
			Badge:              l.BadgeTier(given),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RawScore > entries[j].RawScore
	})
	return entries, nil
}

// GetScore 单个钱包的实时信任分，带读取超时
func (l *LeaderboardLogic) GetScore(ctx context.Context, wallet string) (raw int64, display float64, err error) {
	timeout := time.Duration(l.dao.ScoreReadTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	score, err := l.oracle.GetTrustScore(ctx, common.HexToAddress(wallet))
	if err != nil {
		metrics.OracleReadErrors.Inc()
		return 0, 0, fmt.Errorf("%w: %w", ErrRemoteCall, err)
	}

	raw = score.Int64()
	return raw, float64(raw) / 10, nil
}

// BadgeTier 按给出的验证数计算徽章等级
func (l *LeaderboardLogic) BadgeTier(verificationsGiven int64) string {
	tiers := l.dao.BadgeTiers
	if len(tiers) != 3 {
		tiers = []int64{5, 20, 50}
	}
	switch {
	case verificationsGiven >= tiers[2]:
		return BadgeTopVerifier
	case verificationsGiven >= tiers[1]:
		return BadgeActivePeer
	case verificationsGiven >= tiers[0]:
		return BadgeRisingPeer
	default:
		return BadgeNone
	}
}

// snapshotScores 读取信任分快照
func (l *LeaderboardLogic) snapshotScores() (map[string]int64, error) {
	var snapshots []model.ScoreSnapshotModel
	if err := l.db.Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("查询信任分快照失败: %w", err)
	}

	scores := make(map[string]int64, len(snapshots))
	for _, snapshot := range snapshots {
		scores[snapshot.UserId] = snapshot.RawScore
	}
	return scores, nil
}

// liveScore 实时回源预言机，失败按0分处理
func (l *LeaderboardLogic) liveScore(ctx context.Context, wallet string) int64 {
	raw, _, err := l.GetScore(ctx, wallet)
	if err != nil {
		logger.Warn("Failed to fetch trust score for %s: %v", wallet, err)
		return 0
	}
	return raw
}
