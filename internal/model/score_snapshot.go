package model

import "time"

// ScoreSnapshotModel 信任分快照
// 后台任务批量从预言机刷新，排行榜直接读表，避免逐用户串行RPC
type ScoreSnapshotModel struct {
	UserId    string    `json:"user_id" gorm:"type:uuid;primaryKey"`
	Wallet    string    `json:"wallet" gorm:"index"`
	RawScore  int64     `json:"raw_score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 自定义表名
func (ScoreSnapshotModel) TableName() string {
	return "score_snapshots"
}
