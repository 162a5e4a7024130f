package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	contentCacheKeyAll   = "content:all"
	contentCacheKeyGrade = "content:grade:"
	contentCacheTTL      = 10 * time.Minute
)

// ContentRepo 内容记录的持久化契约
type ContentRepo interface {
	Create(content *model.Content) error
	FindByID(id string) (*model.Content, error)
	FindAll() ([]model.Content, error)
	FindByGrade(grade string) ([]model.Content, error)
	Update(content *model.Content) error
	Delete(id string) error
}

// submissionCounter 内容侧只需要知道是否已有提交引用某条内容
type submissionCounter interface {
	CountByContent(contentID string) (int64, error)
}

type ContentService struct {
	Repo        ContentRepo
	Submissions submissionCounter
	Redis       *redis.Client
}

func NewContentService(repo ContentRepo, submissions submissionCounter, rdb *redis.Client) *ContentService {
	return &ContentService{
		Repo:        repo,
		Submissions: submissions,
		Redis:       rdb,
	}
}

// ContentReq 内容创建/编辑的显式补丁契约：只枚举允许修改的字段，
// nil 表示不修改，避免把整个请求体摊到记录上
type ContentReq struct {
	Grade       *string                 `json:"grade"`
	Subject     *string                 `json:"subject"`
	Term        *string                 `json:"term"`
	MainTopic   *string                 `json:"mainTopic"`
	Description *string                 `json:"description"`
	SubTopics   *[]model.SubTopic       `json:"subTopics"`
	Definitions *[]model.WordDefinition `json:"definitions"`
	Questions   *[]model.Question       `json:"questions"`
}

// ListByGrade 按年级读取内容列表，经过 Redis 读穿缓存，
// 返回前统一做旧形态归一
func (s *ContentService) ListByGrade(ctx context.Context, grade string) ([]model.Content, error) {
	key := contentCacheKeyAll
	if grade != "" {
		key = contentCacheKeyGrade + grade
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var contents []model.Content
			if err := json.Unmarshal([]byte(cached), &contents); err == nil {
				return contents, nil
			}
		}
	}

	var contents []model.Content
	var err error
	if grade != "" {
		contents, err = s.Repo.FindByGrade(grade)
	} else {
		contents, err = s.Repo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	for i := range contents {
		NormalizeContent(&contents[i])
	}

	if s.Redis != nil {
		if buf, err := json.Marshal(contents); err == nil {
			s.Redis.Set(ctx, key, buf, contentCacheTTL)
		}
	}

	return contents, nil
}

func (s *ContentService) GetByID(id string) (*model.Content, error) {
	content, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	return NormalizeContent(content), nil
}

func (s *ContentService) Create(ctx context.Context, req ContentReq) (*model.Content, error) {
	if req.MainTopic == nil || *req.MainTopic == "" {
		return nil, errors.New("mainTopic is required")
	}
	if req.Questions == nil || len(*req.Questions) == 0 {
		return nil, errors.New("at least one question is required")
	}

	questions, err := sanitizeQuestions(*req.Questions)
	if err != nil {
		return nil, err
	}

	content := &model.Content{
		MainTopic: *req.MainTopic,
		Questions: questions,
	}
	if req.Grade != nil {
		content.Grade = *req.Grade
	}
	if req.Subject != nil {
		content.Subject = *req.Subject
	}
	if req.Term != nil {
		content.Term = *req.Term
	}
	if req.Description != nil {
		content.Description = *req.Description
	}
	if req.SubTopics != nil {
		content.SubTopics = model.SubTopicList(*req.SubTopics)
	}
	if req.Definitions != nil {
		content.Definitions = model.DefinitionList(*req.Definitions)
	}

	if err := s.Repo.Create(content); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, content.Grade)
	return NormalizeContent(content), nil
}

// Update 元数据随时可改；题目列表一旦被任何提交引用即锁定，
// 改动会让历史提交的逐题对应关系失真
func (s *ContentService) Update(ctx context.Context, id string, req ContentReq) (*model.Content, error) {
	content, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	if req.Questions != nil {
		referenced, err := s.Submissions.CountByContent(id)
		if err != nil {
			return nil, err
		}
		if referenced > 0 {
			return nil, util.ErrContentInUse
		}
		questions, err := sanitizeQuestions(*req.Questions)
		if err != nil {
			return nil, err
		}
		content.Questions = questions
	}

	oldGrade := content.Grade
	if req.Grade != nil {
		content.Grade = *req.Grade
	}
	if req.Subject != nil {
		content.Subject = *req.Subject
	}
	if req.Term != nil {
		content.Term = *req.Term
	}
	if req.MainTopic != nil {
		content.MainTopic = *req.MainTopic
	}
	if req.Description != nil {
		content.Description = *req.Description
	}
	if req.SubTopics != nil {
		content.SubTopics = model.SubTopicList(*req.SubTopics)
	}
	if req.Definitions != nil {
		content.Definitions = model.DefinitionList(*req.Definitions)
	}

	if err := s.Repo.Update(content); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, content.Grade)
	if oldGrade != content.Grade {
		s.invalidateCache(ctx, oldGrade)
	}
	return NormalizeContent(content), nil
}

// Delete 被提交引用的内容拒绝删除，保证历史成绩可追溯
func (s *ContentService) Delete(ctx context.Context, id string) error {
	content, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrContentNotFound
		}
		return err
	}

	referenced, err := s.Submissions.CountByContent(id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return util.ErrContentInUse
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.invalidateCache(ctx, content.Grade)
	return nil
}

func (s *ContentService) invalidateCache(ctx context.Context, grade string) {
	if s.Redis == nil {
		return
	}
	keys := []string{contentCacheKeyAll}
	if grade != "" {
		keys = append(keys, contentCacheKeyGrade+grade)
	}
	s.Redis.Del(ctx, keys...)
}

// sanitizeQuestions 按题型校验并收敛选项集合
func sanitizeQuestions(questions []model.Question) (model.QuestionList, error) {
	out := make(model.QuestionList, 0, len(questions))
	for i, q := range questions {
		if q.Question == "" {
			return nil, fmt.Errorf("question %d: text is required", i+1)
		}
		if q.Answer == "" {
			return nil, fmt.Errorf("question %d: answer is required", i+1)
		}
		switch q.Type {
		case model.QuestionMultipleChoice:
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("question %d: options are required for multiple-choice", i+1)
			}
		case model.QuestionTrueFalse:
			q.Options = []string{"True", "False"}
		case model.QuestionShortAnswer:
			q.Options = nil
		default:
			return nil, fmt.Errorf("question %d: unknown type %q", i+1, q.Type)
		}
		out = append(out, q)
	}
	return out, nil
}
