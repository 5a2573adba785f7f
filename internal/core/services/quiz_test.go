package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

func newQuiz() *QuizEngine {
	return NewQuizEngine(domain.QuizQuestions(), domain.DefaultRiskPolicy())
}

func TestQuizEngine_InitialState(t *testing.T) {
	q := newQuiz()

	assert.Equal(t, 0, q.Index())
	assert.Equal(t, 0, q.Score())
	assert.Equal(t, []int{-1, -1, -1, -1}, q.Answers())
	assert.False(t, q.Done())

	_, err := q.Result()
	assert.ErrorIs(t, err, domain.ErrQuizIncomplete)
}

func TestQuizEngine_ReAnswerIsIdempotent(t *testing.T) {
	q := newQuiz()

	// Question 1: option 1 is worth 20.
	done, err := q.Answer(1)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 20, q.Score())

	require.NoError(t, q.Back())
	assert.Equal(t, 0, q.Index())

	// Change to option 0, worth 5.
	_, err = q.Answer(0)
	require.NoError(t, err)
	assert.Equal(t, 5, q.Score())
	assert.Equal(t, 0, q.Answers()[0])

	// Re-answering with the same option leaves the score unchanged.
	require.NoError(t, q.Back())
	_, err = q.Answer(0)
	require.NoError(t, err)
	assert.Equal(t, 5, q.Score())
}

func TestQuizEngine_Completion(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		score   int
		risk    domain.RiskLevel
	}{
		{"low", []int{3, 0, 0, 0}, 0, domain.RiskLevelLow},
		{"medium", []int{1, 1, 0, 0}, 35, domain.RiskLevelMedium},
		{"fifty stays medium", []int{2, 2, 0, 0}, 50, domain.RiskLevelMedium},
		{"high", []int{2, 2, 0, 1}, 65, domain.RiskLevelHigh},
		{"critical", []int{2, 3, 1, 3}, 125, domain.RiskLevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newQuiz()
			var done bool
			for i, option := range tt.answers {
				var err error
				done, err = q.Answer(option)
				require.NoError(t, err)
				assert.Equal(t, i == len(tt.answers)-1, done)
			}

			result, err := q.Result()
			require.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.risk, result.Risk)
			assert.Equal(t, domain.QuizMessage(tt.risk), result.Message)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestQuizEngine_NotReusable(t *testing.T) {
	q := newQuiz()
	for _, option := range []int{0, 0, 0, 0} {
		_, err := q.Answer(option)
		require.NoError(t, err)
	}
	require.True(t, q.Done())

	_, err := q.Answer(1)
	assert.ErrorIs(t, err, domain.ErrQuizComplete)
	assert.ErrorIs(t, q.Back(), domain.ErrQuizComplete)

	result, err := q.Result()
	require.NoError(t, err)
	assert.Equal(t, 5, result.Score)
}

func TestQuizEngine_InvalidInput(t *testing.T) {
	q := newQuiz()

	_, err := q.Answer(4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = q.Answer(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, q.Back(), domain.ErrInvalidInput)
	assert.Equal(t, 0, q.Score())

	empty := NewQuizEngine(nil, domain.DefaultRiskPolicy())
	_, err = empty.Answer(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuizService_NewQuizIsFresh(t *testing.T) {
	svc := NewQuizService(domain.DefaultRiskPolicy())
	first := svc.NewQuiz()
	_, err := first.Answer(2)
	require.NoError(t, err)

	second := svc.NewQuiz()
	assert.Equal(t, 0, second.Score())
	assert.Equal(t, 0, second.Index())
}

func TestQuizService_ScoreQuiz(t *testing.T) {
	svc := NewQuizService(domain.DefaultRiskPolicy())

	result, err := svc.ScoreQuiz([]int{1, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 80, result.Score)
	assert.Equal(t, domain.RiskLevelHigh, result.Risk)

	_, err = svc.ScoreQuiz([]int{1})
	assert.ErrorIs(t, err, domain.ErrQuizIncomplete)

	_, err = svc.ScoreQuiz([]int{9, 0, 0, 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
