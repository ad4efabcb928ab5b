package service

import (
	"academia_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBank() []model.QuizQuestion {
	return []model.QuizQuestion{
		{ID: "q1", Question: "Q1?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, Explanation: "because a"},
		{ID: "q2", Question: "Q2?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{ID: "q3", Question: "Q3?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
		{ID: "q4", Question: "Q4?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 3},
	}
}

func TestGradeAnswers(t *testing.T) {
	bank := sampleBank()

	answers := []AnswerSubmission{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q2", SelectedIndex: 0},
		{QuestionID: "q3", SelectedIndex: 2},
		{QuestionID: "q4", SelectedIndex: 0},
	}

	correct, details := GradeAnswers(bank, answers)

	assert.Equal(t, 2, correct)
	require.Len(t, details, 4)
	assert.True(t, details[0].IsCorrect)
	assert.False(t, details[1].IsCorrect)
	assert.True(t, details[2].IsCorrect)
	assert.False(t, details[3].IsCorrect)
	assert.Equal(t, 1, details[1].CorrectIndex)
	assert.Equal(t, "because a", details[0].Explanation)
}

func TestGradeAnswersUnknownQuestion(t *testing.T) {
	bank := sampleBank()

	correct, details := GradeAnswers(bank, []AnswerSubmission{
		{QuestionID: "nope", SelectedIndex: 0},
		{QuestionID: "q1", SelectedIndex: 0},
	})

	assert.Equal(t, 1, correct)
	require.Len(t, details, 2)
	assert.False(t, details[0].IsCorrect)
	assert.Equal(t, -1, details[0].CorrectIndex)
	assert.Equal(t, "Question not found", details[0].Explanation)
}

func TestGradeAnswersPassingRun(t *testing.T) {
	bank := []model.QuizQuestion{
		{ID: "q1", Question: "Q1?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{ID: "q2", Question: "Q2?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
		{ID: "q3", Question: "Q3?", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
	}

	correct, _ := GradeAnswers(bank, []AnswerSubmission{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q2", SelectedIndex: 0},
		{QuestionID: "q3", SelectedIndex: 1},
	})

	score := ComputeScore(correct, 3)
	assert.Equal(t, 67, score)
	assert.True(t, score >= model.PassScore)
	assert.Equal(t, 30, ComputeXP(score))
}

func TestGradeAnswersTimeout(t *testing.T) {
	bank := sampleBank()

	correct, details := GradeAnswers(bank, []AnswerSubmission{
		{QuestionID: "q1", SelectedIndex: -1},
	})

	assert.Equal(t, 0, correct)
	require.Len(t, details, 1)
	assert.False(t, details[0].IsCorrect)
	assert.Equal(t, -1, details[0].SelectedIndex)
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{name: "half", correct: 2, total: 4, want: 50},
		{name: "two thirds rounds up", correct: 2, total: 3, want: 67},
		{name: "one third rounds down", correct: 1, total: 3, want: 33},
		{name: "all correct", correct: 5, total: 5, want: 100},
		{name: "none correct", correct: 0, total: 5, want: 0},
		{name: "empty submission", correct: 0, total: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(tt.correct, tt.total))
		})
	}
}

func TestComputeXP(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{name: "fail earns nothing", score: 50, want: 0},
		{name: "just below pass", score: 59, want: 0},
		{name: "pass threshold", score: 60, want: 30},
		{name: "partial ten discarded", score: 67, want: 30},
		{name: "eighty", score: 80, want: 40},
		{name: "perfect", score: 100, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeXP(tt.score))
		})
	}
}

func TestSampleQuestions(t *testing.T) {
	bank := make([]model.QuizQuestion, 12)
	for i := range bank {
		bank[i] = model.QuizQuestion{ID: string(rune('a' + i))}
	}

	sampled := SampleQuestions(bank, model.PlaySessionSize)
	require.Len(t, sampled, model.PlaySessionSize)

	seen := make(map[string]bool)
	for _, q := range sampled {
		assert.False(t, seen[q.ID], "question %s sampled twice", q.ID)
		seen[q.ID] = true
	}

	// The source bank must stay in its original order.
	assert.Equal(t, "a", bank[0].ID)
	assert.Equal(t, string(rune('a'+11)), bank[11].ID)
}

func TestSampleQuestionsSmallBank(t *testing.T) {
	bank := sampleBank()
	sampled := SampleQuestions(bank, 10)
	assert.Len(t, sampled, len(bank))
}

func TestValidateBank(t *testing.T) {
	valid := make([]model.QuizQuestion, model.MinBankSize)
	for i := range valid {
		valid[i] = model.QuizQuestion{
			ID:           "q",
			Question:     "Q?",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % model.OptionCount,
		}
	}

	t.Run("valid bank", func(t *testing.T) {
		assert.Empty(t, ValidateBank(valid))
	})

	t.Run("too small", func(t *testing.T) {
		errs := ValidateBank(valid[:model.MinBankSize-1])
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "at least 10 questions")
	})

	t.Run("empty question text", func(t *testing.T) {
		bank := append([]model.QuizQuestion{}, valid...)
		bank[3].Question = "   "
		errs := ValidateBank(bank)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "question 4")
	})

	t.Run("wrong option count", func(t *testing.T) {
		bank := append([]model.QuizQuestion{}, valid...)
		bank[0].Options = []string{"a", "b"}
		errs := ValidateBank(bank)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "exactly 4 options")
	})

	t.Run("correct index out of range", func(t *testing.T) {
		bank := append([]model.QuizQuestion{}, valid...)
		bank[0].CorrectIndex = 4
		errs := ValidateBank(bank)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "correctIndex")
	})

	t.Run("multiple violations reported together", func(t *testing.T) {
		bank := append([]model.QuizQuestion{}, valid...)
		bank[0].Question = ""
		bank[1].CorrectIndex = -1
		assert.Len(t, ValidateBank(bank), 2)
	})
}
