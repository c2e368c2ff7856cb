package task

import (
	"context"
	"sync"
	"time"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/contract"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/metrics"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreRefreshJob 信任分快照刷新任务
// 并发拉取全部用户的链上信任分写入快照表，RPC读取做限速
type ScoreRefreshJob struct {
	db      *gorm.DB
	oracle  contract.Oracle
	config  *config.Config
	limiter *rate.Limiter
}

// NewScoreRefreshJob 创建信任分刷新任务
func NewScoreRefreshJob(db *gorm.DB, oracle contract.Oracle, cfg *config.Config) *ScoreRefreshJob {
	perSec := cfg.Task.OracleRatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	return &ScoreRefreshJob{
		db:      db,
		oracle:  oracle,
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(perSec), perSec),
	}
}

// GetName 获取任务名称
func (j *ScoreRefreshJob) GetName() string {
	return "score_refresh"
}

// GetSchedule 获取调度配置
func (j *ScoreRefreshJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.ScoreRefreshInterval) * time.Second)
}

// Execute 执行任务
func (j *ScoreRefreshJob) Execute() {
	logger.Info("Starting trust score refresh task")

	var users []model.UserModel
	if err := j.db.Find(&users).Error; err != nil {
		logger.Error("Failed to fetch users for score refresh: %v", err)
		metrics.JobRuns.WithLabelValues(j.GetName(), "error").Inc()
		return
	}
	if len(users) == 0 {
		metrics.JobRuns.WithLabelValues(j.GetName(), "ok").Inc()
		return
	}

	poolSize := j.config.Task.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create worker pool: %v", err)
		metrics.JobRuns.WithLabelValues(j.GetName(), "error").Inc()
		return
	}
	defer pool.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var wg sync.WaitGroup
	refreshed := 0
	var mu sync.Mutex

	for _, user := range users {
		user := user
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := j.refreshOne(ctx, user); err != nil {
				logger.Warn("Failed to refresh score for %s: %v", user.Wallet, err)
				metrics.OracleReadErrors.Inc()
				return
			}
			mu.Lock()
			refreshed++
			mu.Unlock()
		}); err != nil {
			wg.Done()
			logger.Warn("Failed to submit score refresh for %s: %v", user.Wallet, err)
		}
	}
	wg.Wait()

	logger.Info("Trust score refresh completed, refreshed %d/%d users", refreshed, len(users))
	metrics.JobRuns.WithLabelValues(j.GetName(), "ok").Inc()
}

// refreshOne 刷新单个用户的信任分快照
func (j *ScoreRefreshJob) refreshOne(ctx context.Context, user model.UserModel) error {
	if err := j.limiter.Wait(ctx); err != nil {
		return err
	}

	score, err := j.oracle.GetTrustScore(ctx, common.HexToAddress(user.Wallet))
	if err != nil {
		return err
	}

	snapshot := model.ScoreSnapshotModel{
		UserId:    user.Id,
		Wallet:    user.Wallet,
		RawScore:  score.Int64(),
		UpdatedAt: time.Now(),
	}
	return j.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&snapshot).Error
}
