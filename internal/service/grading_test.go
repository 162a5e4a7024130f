package service

import (
	"reflect"
	"testing"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/util"
)

func TestCompareAnswer(t *testing.T) {
	tests := []struct {
		name      string
		question  model.Question
		submitted string
		want      bool
	}{
		{
			name:      "multiple choice exact match",
			question:  model.Question{Type: model.QuestionMultipleChoice, Answer: "Happiness", Options: []string{"Happiness", "Sadness"}},
			submitted: "Happiness",
			want:      true,
		},
		{
			name:      "multiple choice wrong option",
			question:  model.Question{Type: model.QuestionMultipleChoice, Answer: "Happiness", Options: []string{"Happiness", "Sadness"}},
			submitted: "Sadness",
			want:      false,
		},
		{
			name:      "case sensitive by design",
			question:  model.Question{Type: model.QuestionShortAnswer, Answer: "Happiness"},
			submitted: "happiness",
			want:      false,
		},
		{
			name:      "whitespace sensitive by design",
			question:  model.Question{Type: model.QuestionShortAnswer, Answer: "Happiness"},
			submitted: " Happiness",
			want:      false,
		},
		{
			name:      "true false match",
			question:  model.Question{Type: model.QuestionTrueFalse, Answer: "True", Options: []string{"True", "False"}},
			submitted: "True",
			want:      true,
		},
		{
			name:      "empty submission never correct",
			question:  model.Question{Type: model.QuestionShortAnswer, Answer: "Happiness"},
			submitted: "",
			want:      false,
		},
		{
			name:      "empty submission against empty answer still incorrect",
			question:  model.Question{Type: model.QuestionShortAnswer, Answer: ""},
			submitted: "",
			want:      false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompareAnswer(tc.question, tc.submitted); got != tc.want {
				t.Fatalf("CompareAnswer(%q)=%v, want %v", tc.submitted, got, tc.want)
			}
		})
	}
}

func twoQuestionContent() *model.Content {
	return &model.Content{
		MainTopic: "Life Orientation",
		Questions: model.QuestionList{
			{
				Type:     model.QuestionMultipleChoice,
				Question: "What do people strive for?",
				Options:  []string{"Happiness", "Sadness"},
				Answer:   "Happiness",
			},
			{
				Type:     model.QuestionMultipleChoice,
				Question: "What is self-awareness?",
				Options:  []string{"Knowing yourself", "Knowing animals"},
				Answer:   "Knowing yourself",
			},
		},
	}
}

func TestGradeContent(t *testing.T) {
	content := twoQuestionContent()

	result, err := GradeContent(content, []string{"Happiness", "Knowing animals"})
	if err != nil {
		t.Fatalf("GradeContent: %v", err)
	}

	if result.Score != 1 || result.Total != 2 {
		t.Fatalf("got score=%d total=%d, want 1/2", result.Score, result.Total)
	}
	if !result.Review[0].Correct {
		t.Errorf("question 1 should be marked correct")
	}
	if result.Review[1].Correct {
		t.Errorf("question 2 should be marked incorrect")
	}
	if result.Review[1].CorrectAnswer != "Knowing yourself" {
		t.Errorf("review should snapshot the correct answer, got %q", result.Review[1].CorrectAnswer)
	}
	if result.Review[1].Selected != "Knowing animals" {
		t.Errorf("review should snapshot the submitted value, got %q", result.Review[1].Selected)
	}
}

func TestGradeContentShapeMismatch(t *testing.T) {
	content := twoQuestionContent()

	for _, answers := range [][]string{nil, {"Happiness"}, {"a", "b", "c"}} {
		if _, err := GradeContent(content, answers); err != util.ErrInvalidSubmissionShape {
			t.Fatalf("GradeContent with %d answers: got %v, want ErrInvalidSubmissionShape", len(answers), err)
		}
	}
}

func TestGradeContentScoreBounds(t *testing.T) {
	content := twoQuestionContent()

	cases := [][]string{
		{"Happiness", "Knowing yourself"},
		{"Happiness", "Knowing animals"},
		{"Sadness", "Knowing animals"},
		{"", ""},
	}
	for _, answers := range cases {
		result, err := GradeContent(content, answers)
		if err != nil {
			t.Fatalf("GradeContent(%v): %v", answers, err)
		}
		if result.Total != len(content.Questions) {
			t.Fatalf("total=%d, want %d", result.Total, len(content.Questions))
		}
		if result.Score < 0 || result.Score > result.Total {
			t.Fatalf("score %d out of [0,%d]", result.Score, result.Total)
		}
	}
}

func TestGradeContentDeterministic(t *testing.T) {
	content := twoQuestionContent()
	answers := []string{"Happiness", "Knowing animals"}

	first, err := GradeContent(content, answers)
	if err != nil {
		t.Fatalf("GradeContent: %v", err)
	}
	second, err := GradeContent(content, answers)
	if err != nil {
		t.Fatalf("GradeContent: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grading is not deterministic: %+v vs %+v", first, second)
	}
}

func TestGradeContentTrailMatchesComparator(t *testing.T) {
	content := twoQuestionContent()
	answers := []string{"Sadness", "Knowing yourself"}

	result, err := GradeContent(content, answers)
	if err != nil {
		t.Fatalf("GradeContent: %v", err)
	}

	for i := range content.Questions {
		want := CompareAnswer(content.Questions[i], answers[i])
		if result.Review[i].Correct != want {
			t.Errorf("review[%d].Correct=%v, comparator says %v", i, result.Review[i].Correct, want)
		}
	}
}
