package service

import (
	"testing"

	"reading_learning_backend/internal/model"
)

func TestNormalizeContentLegacySubTopic(t *testing.T) {
	c := &model.Content{MainTopic: "Self-awareness", SubTopic: "Self-awareness"}

	got := NormalizeContent(c)

	if len(got.SubTopics) != 1 {
		t.Fatalf("got %d subTopics, want 1", len(got.SubTopics))
	}
	if got.SubTopics[0].Name != "Self-awareness" {
		t.Errorf("subTopic name = %q, want %q", got.SubTopics[0].Name, "Self-awareness")
	}
	if got.SubTopics[0].Description != "" {
		t.Errorf("legacy subTopic should have empty description, got %q", got.SubTopics[0].Description)
	}
	// 只在读取时归一，原字段保留
	if got.SubTopic != "Self-awareness" {
		t.Errorf("legacy column should be untouched, got %q", got.SubTopic)
	}
}

func TestNormalizeContentEmptyLegacy(t *testing.T) {
	for _, legacy := range []string{"", "   "} {
		c := NormalizeContent(&model.Content{SubTopic: legacy})
		if len(c.SubTopics) != 1 || c.SubTopics[0].Name != "General" {
			t.Fatalf("subTopic=%q: got %+v, want single General placeholder", legacy, c.SubTopics)
		}
	}
}

func TestNormalizeContentModernPassthrough(t *testing.T) {
	orig := model.SubTopicList{
		{Name: "Emotions", Description: "Recognising feelings"},
		{Name: "Goals", Description: ""},
	}
	c := NormalizeContent(&model.Content{SubTopic: "ignored", SubTopics: orig})

	if len(c.SubTopics) != 2 {
		t.Fatalf("modern record must pass through unchanged, got %+v", c.SubTopics)
	}
	if c.SubTopics[0] != orig[0] || c.SubTopics[1] != orig[1] {
		t.Errorf("subTopics mutated: %+v", c.SubTopics)
	}
}

func TestNormalizeContentNil(t *testing.T) {
	if got := NormalizeContent(nil); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestRedactAnswers(t *testing.T) {
	c := twoQuestionContent()

	got := RedactAnswers(c)

	for i, q := range got.Questions {
		if q.Answer != "" {
			t.Errorf("question %d still carries the answer key %q", i, q.Answer)
		}
		if q.Question == "" || len(q.Options) == 0 {
			t.Errorf("question %d lost its text or options: %+v", i, q)
		}
	}

	if got := RedactAnswers(nil); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestNormalizeSubmission(t *testing.T) {
	tests := []struct {
		name      string
		in        model.Submission
		wantTopic string
	}{
		{"legacy topic fills mainTopic", model.Submission{Topic: "Reading"}, "Reading"},
		{"mainTopic wins over legacy", model.Submission{MainTopic: "New", Topic: "Old"}, "New"},
		{"both empty stays empty", model.Submission{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeSubmission(&tc.in)
			if got.MainTopic != tc.wantTopic {
				t.Fatalf("mainTopic=%q, want %q", got.MainTopic, tc.wantTopic)
			}
		})
	}
}
