package service

import (
	"strings"

	"reading_learning_backend/internal/model"
)

// 旧记录的 subTopic 为空字符串时使用的占位名称
const defaultSubTopicName = "General"

// NormalizeContent 把旧版单一 subTopic 字符串的内容记录归一成
// 当前的 subTopics 列表形态。只在读取时执行，不回写存储；
// 所有兼容逻辑集中在这里，消费方不做形态判断。
func NormalizeContent(c *model.Content) *model.Content {
	if c == nil {
		return nil
	}
	if len(c.SubTopics) > 0 {
		return c
	}

	name := c.SubTopic
	if strings.TrimSpace(name) == "" {
		name = defaultSubTopicName
	}
	c.SubTopics = model.SubTopicList{{Name: name, Description: ""}}
	return c
}

// RedactAnswers 去掉题目中的标准答案，学生端读取内容时调用。
// 只动返回给调用方的副本持有的切片，评分仍走存储里的原始记录。
func RedactAnswers(c *model.Content) *model.Content {
	if c == nil || len(c.Questions) == 0 {
		return c
	}
	redacted := make(model.QuestionList, len(c.Questions))
	for i, q := range c.Questions {
		q.Answer = ""
		redacted[i] = q
	}
	c.Questions = redacted
	return c
}

// NormalizeSubmission 旧版提交把内容主题存在 topic 字段，统一到 mainTopic
func NormalizeSubmission(s *model.Submission) *model.Submission {
	if s == nil {
		return nil
	}
	if s.MainTopic == "" && s.Topic != "" {
		s.MainTopic = s.Topic
	}
	return s
}
