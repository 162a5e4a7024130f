package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// 题目类型
const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionTrueFalse      = "true/false"
	QuestionShortAnswer    = "short-answer"
)

type Question struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer,omitempty"`
}

type WordDefinition struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

type SubTopic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type QuestionList []Question

type DefinitionList []WordDefinition

type SubTopicList []SubTopic

// Content 一份按年级组织的学习内容，内嵌子主题、词汇与测验题目
// swagger:model Content
type Content struct {
	UUIDBase
	Grade       string `gorm:"size:50;index" json:"grade"`
	Subject     string `gorm:"size:100;index" json:"subject"`
	Term        string `gorm:"size:50" json:"term"`
	MainTopic   string `gorm:"size:255;not null" json:"mainTopic"`
	Description string `gorm:"type:text" json:"description"`
	// 旧数据只有单个 subTopic 字符串；新数据使用 subTopics 列表。
	// 两列都保留，读取时由 NormalizeContent 统一成列表形态。
	SubTopic    string         `gorm:"size:255" json:"subTopic"`
	SubTopics   SubTopicList   `gorm:"type:json" json:"subTopics"`
	Definitions DefinitionList `gorm:"type:json" json:"definitions"`
	Questions   QuestionList   `gorm:"type:json" json:"questions"`
}

func (Content) TableName() string {
	return "contents"
}

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	b, err := json.Marshal(q)
	return string(b), err
}

func (q *QuestionList) Scan(value interface{}) error {
	return scanJSON(value, q)
}

func (d DefinitionList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *DefinitionList) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (s SubTopicList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *SubTopicList) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func scanJSON(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported json column type")
	}
}
