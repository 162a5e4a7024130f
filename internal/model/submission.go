package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AnswerRecord 评分时产生的逐题快照，提交后不再跟随内容变更
type AnswerRecord struct {
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

type AnswerList []AnswerRecord

// swagger:model Submission
type Submission struct {
	UUIDBase
	StudentID uint   `gorm:"index:idx_student_content;type:bigint unsigned" json:"studentId"`
	ContentID string `gorm:"index:idx_student_content;type:varchar(36)" json:"contentId"`
	// 学生与内容的冗余快照：用户或内容被删除后，历史成绩仍可展示
	StudentName  string `gorm:"size:100" json:"studentName"`
	StudentEmail string `gorm:"size:100" json:"studentEmail"`
	MainTopic    string `gorm:"size:255" json:"mainTopic"`
	Subject      string `gorm:"size:100" json:"subject"`
	// 旧数据把主题存在 topic 字段里，迁移期间保留，读取时统一到 mainTopic
	Topic       string     `gorm:"size:255" json:"topic,omitempty"`
	Answers     AnswerList `gorm:"type:json" json:"answers"`
	Score       int        `gorm:"default:0" json:"score"`
	Total       int        `gorm:"default:0" json:"total"`
	SubmittedAt time.Time  `json:"submittedAt"`

	IsManuallyReviewed bool   `gorm:"default:false" json:"isManuallyReviewed"`
	AdminFeedback      string `gorm:"type:text" json:"adminFeedback"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *AnswerList) Scan(value interface{}) error {
	return scanJSON(value, a)
}
