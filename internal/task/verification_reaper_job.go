package task

import (
	"time"

	"github.com/MERAJ-droid/SoLverse/internal/config"
	"github.com/MERAJ-droid/SoLverse/internal/logger"
	"github.com/MERAJ-droid/SoLverse/internal/metrics"
	"github.com/MERAJ-droid/SoLverse/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// VerificationReaperJob 质押超时清理任务
// 质押成功但长期未完成签名的记录置为needs_review，留给管理员罚没或等待补签
// 链上质押本身不动，本服务不代为决定没收或退还
type VerificationReaperJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewVerificationReaperJob 创建质押超时清理任务
func NewVerificationReaperJob(db *gorm.DB, cfg *config.Config) *VerificationReaperJob {
	return &VerificationReaperJob{db: db, config: cfg}
}

// GetName 获取任务名称
func (j *VerificationReaperJob) GetName() string {
	return "verification_reaper"
}

// GetSchedule 获取调度配置
func (j *VerificationReaperJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.ReaperInterval) * time.Second)
}

// Execute 执行任务
func (j *VerificationReaperJob) Execute() {
	deadline := time.Now().Add(-time.Duration(j.config.Dao.StakeDeadlineMinutes) * time.Minute)

	result := j.db.Model(&model.VerificationModel{}).
		Where("step = ? AND created_at < ?", model.VerificationStepStaked, deadline).
		Update("step", model.VerificationStepNeedsReview)
	if result.Error != nil {
		logger.Error("Verification reaper failed: %v", result.Error)
		metrics.JobRuns.WithLabelValues(j.GetName(), "error").Inc()
		return
	}

	if result.RowsAffected > 0 {
		logger.Warn("Marked %d staked verifications as needs_review", result.RowsAffected)
	}
	metrics.JobRuns.WithLabelValues(j.GetName(), "ok").Inc()
}
