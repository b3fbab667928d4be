package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// AnalysisLog journals one successful AI analysis.
type AnalysisLog struct {
	ID          string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobSeekerID string         `gorm:"column:job_seeker_id;type:text;index" json:"job_seeker_id"`
	Feature     string         `gorm:"column:feature;type:text" json:"feature"` // resume|jobmatch
	JobID       string         `gorm:"column:job_id;type:text" json:"job_id,omitempty"`
	Score       int            `gorm:"column:score;type:integer" json:"score"`
	Skills      pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Result      datatypes.JSON `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (AnalysisLog) TableName() string { return "ai_analysis_logs" }
