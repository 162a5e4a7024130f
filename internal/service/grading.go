package service

import (
	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/util"
)

// GradedResult 一次提交的自动评分结果
type GradedResult struct {
	Score  int              `json:"score"`
	Total  int              `json:"total"`
	Review model.AnswerList `json:"review"`
}

// CompareAnswer 判断单题对错。
// 刻意使用精确比较（区分大小写、不去空格）：选择题与判断题的候选项
// 由管理员给定，提交值取自固定集合；简答题的自动评分只做精确匹配，
// 模糊情况交给管理员人工复核修正。
func CompareAnswer(q model.Question, submitted string) bool {
	if submitted == "" {
		return false
	}
	return submitted == q.Answer
}

// GradeContent 对整份答卷评分，返回总分与逐题评分轨迹。
// 评分只依赖传入的内容和答案，轨迹中快照题面与标准答案，
// 内容之后被修改也不影响已评出的结果。
func GradeContent(content *model.Content, answers []string) (*GradedResult, error) {
	if len(answers) != len(content.Questions) {
		return nil, util.ErrInvalidSubmissionShape
	}

	result := &GradedResult{
		Total:  len(content.Questions),
		Review: make(model.AnswerList, 0, len(content.Questions)),
	}

	for i, q := range content.Questions {
		correct := CompareAnswer(q, answers[i])
		if correct {
			result.Score++
		}
		result.Review = append(result.Review, model.AnswerRecord{
			Question:      q.Question,
			Selected:      answers[i],
			CorrectAnswer: q.Answer,
			Correct:       correct,
		})
	}

	return result, nil
}
