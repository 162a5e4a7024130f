package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/util"

	"gorm.io/gorm"
)

type fakeContentRepo struct {
	contents map[string]model.Content
	nextID   int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: make(map[string]model.Content)}
}

func (f *fakeContentRepo) Create(c *model.Content) error {
	if c.ID == "" {
		f.nextID++
		c.ID = fmt.Sprintf("content-%d", f.nextID)
	}
	f.contents[c.ID] = *c
	return nil
}

func (f *fakeContentRepo) FindByID(id string) (*model.Content, error) {
	c, ok := f.contents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeContentRepo) FindAll() ([]model.Content, error) {
	var out []model.Content
	for _, c := range f.contents {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContentRepo) FindByGrade(grade string) ([]model.Content, error) {
	var out []model.Content
	for _, c := range f.contents {
		if c.Grade == grade {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) Update(c *model.Content) error {
	if _, ok := f.contents[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.contents[c.ID] = *c
	return nil
}

func (f *fakeContentRepo) Delete(id string) error {
	delete(f.contents, id)
	return nil
}

// fixedCounter 固定返回同一个引用计数
type fixedCounter int64

func (f fixedCounter) CountByContent(string) (int64, error) { return int64(f), nil }

func strPtr(s string) *string { return &s }

func validQuestions() *[]model.Question {
	qs := []model.Question{
		{Type: model.QuestionMultipleChoice, Question: "Q1", Options: []string{"A", "B"}, Answer: "A"},
	}
	return &qs
}

func seedContent(t *testing.T, repo *fakeContentRepo) string {
	t.Helper()
	c := model.Content{
		UUIDBase:  model.UUIDBase{ID: "content-1"},
		Grade:     "Grade 4",
		MainTopic: "Reading",
		Questions: model.QuestionList(*validQuestions()),
	}
	repo.contents[c.ID] = c
	return c.ID
}

func TestContentCreateValidation(t *testing.T) {
	svc := NewContentService(newFakeContentRepo(), fixedCounter(0), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ContentReq{Questions: validQuestions()}); err == nil {
		t.Errorf("missing mainTopic must be rejected")
	}
	if _, err := svc.Create(ctx, ContentReq{MainTopic: strPtr("Reading")}); err == nil {
		t.Errorf("missing questions must be rejected")
	}

	created, err := svc.Create(ctx, ContentReq{MainTopic: strPtr("Reading"), Questions: validQuestions()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Errorf("created content has no id")
	}
	// 新内容无旧 subTopic，读出时补 General 占位
	if len(created.SubTopics) != 1 || created.SubTopics[0].Name != "General" {
		t.Errorf("subTopics = %+v", created.SubTopics)
	}
}

func TestContentUpdateQuestionsLockedWhenReferenced(t *testing.T) {
	repo := newFakeContentRepo()
	id := seedContent(t, repo)
	svc := NewContentService(repo, fixedCounter(2), nil)

	_, err := svc.Update(context.Background(), id, ContentReq{Questions: validQuestions()})
	if !errors.Is(err, util.ErrContentInUse) {
		t.Fatalf("got %v, want ErrContentInUse", err)
	}

	// 元数据不受锁定影响
	updated, err := svc.Update(context.Background(), id, ContentReq{Description: strPtr("updated")})
	if err != nil {
		t.Fatalf("metadata update: %v", err)
	}
	if updated.Description != "updated" {
		t.Errorf("description = %q", updated.Description)
	}
}

func TestContentUpdateQuestionsAllowedWhenUnreferenced(t *testing.T) {
	repo := newFakeContentRepo()
	id := seedContent(t, repo)
	svc := NewContentService(repo, fixedCounter(0), nil)

	qs := []model.Question{
		{Type: model.QuestionTrueFalse, Question: "Is reading fun?", Answer: "True"},
	}
	updated, err := svc.Update(context.Background(), id, ContentReq{Questions: &qs})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Questions) != 1 || updated.Questions[0].Type != model.QuestionTrueFalse {
		t.Fatalf("questions not replaced: %+v", updated.Questions)
	}
	// 判断题选项收敛为固定集合
	if len(updated.Questions[0].Options) != 2 || updated.Questions[0].Options[0] != "True" {
		t.Errorf("true/false options = %v", updated.Questions[0].Options)
	}
}

func TestContentDeleteRejectedWhenReferenced(t *testing.T) {
	repo := newFakeContentRepo()
	id := seedContent(t, repo)

	svc := NewContentService(repo, fixedCounter(1), nil)
	if err := svc.Delete(context.Background(), id); !errors.Is(err, util.ErrContentInUse) {
		t.Fatalf("got %v, want ErrContentInUse", err)
	}
	if _, err := repo.FindByID(id); err != nil {
		t.Fatalf("rejected delete must keep the row: %v", err)
	}

	free := NewContentService(repo, fixedCounter(0), nil)
	if err := free.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(id); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("content still present after delete")
	}
}

func TestContentGetByIDNotFound(t *testing.T) {
	svc := NewContentService(newFakeContentRepo(), fixedCounter(0), nil)
	if _, err := svc.GetByID("missing"); !errors.Is(err, util.ErrContentNotFound) {
		t.Fatalf("got %v, want ErrContentNotFound", err)
	}
}

func TestSanitizeQuestions(t *testing.T) {
	tests := []struct {
		name    string
		in      model.Question
		wantErr string
	}{
		{"missing text", model.Question{Type: model.QuestionShortAnswer, Answer: "x"}, "text is required"},
		{"missing answer", model.Question{Type: model.QuestionShortAnswer, Question: "q"}, "answer is required"},
		{"choice without options", model.Question{Type: model.QuestionMultipleChoice, Question: "q", Answer: "x"}, "options are required"},
		{"unknown type", model.Question{Type: "essay", Question: "q", Answer: "x"}, "unknown type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sanitizeQuestions([]model.Question{tc.in})
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tc.wantErr)
			}
		})
	}

	out, err := sanitizeQuestions([]model.Question{
		{Type: model.QuestionShortAnswer, Question: "q", Options: []string{"stale"}, Answer: "x"},
	})
	if err != nil {
		t.Fatalf("sanitizeQuestions: %v", err)
	}
	if out[0].Options != nil {
		t.Errorf("short-answer options must be dropped, got %v", out[0].Options)
	}
}
