package services

import (
	"fmt"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ensure QuizEngine implements the interfaces.
var (
	_ driving.Quiz        = (*QuizEngine)(nil)
	_ driving.QuizFactory = (*QuizService)(nil)
)

const unanswered = -1

// QuizService starts quiz runs over a fixed question set.
type QuizService struct {
	questions []domain.QuizQuestion
	policy    domain.RiskPolicy
}

// NewQuizService creates a quiz factory over the legal health check questions.
func NewQuizService(policy domain.RiskPolicy) *QuizService {
	return &QuizService{
		questions: domain.QuizQuestions(),
		policy:    policy,
	}
}

// NewQuiz returns a fresh run.
func (s *QuizService) NewQuiz() driving.Quiz {
	return NewQuizEngine(s.questions, s.policy)
}

// QuizEngine is the scoring state machine of one quiz run. It is not
// persisted and cannot be restarted once complete.
type QuizEngine struct {
	questions []domain.QuizQuestion
	policy    domain.RiskPolicy
	index     int
	score     int
	answers   []int
	result    *domain.QuizResult
}

// NewQuizEngine creates a run at question 0 with no answers.
func NewQuizEngine(questions []domain.QuizQuestion, policy domain.RiskPolicy) *QuizEngine {
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}
	return &QuizEngine{
		questions: questions,
		policy:    policy,
		answers:   answers,
	}
}

// Questions returns the questions in order.
func (q *QuizEngine) Questions() []domain.QuizQuestion {
	return q.questions
}

// Index returns the current question.
func (q *QuizEngine) Index() int {
	return q.index
}

// Score returns the cumulative score.
func (q *QuizEngine) Score() int {
	return q.score
}

// Answers returns a copy of the chosen options, -1 when unanswered.
func (q *QuizEngine) Answers() []int {
	out := make([]int, len(q.answers))
	copy(out, q.answers)
	return out
}

// Done returns true once the result has been emitted.
func (q *QuizEngine) Done() bool {
	return q.result != nil
}

// Answer records option for the current question. A previous answer to the
// same question has its contribution removed first, so changing an answer
// never double counts.
func (q *QuizEngine) Answer(option int) (bool, error) {
	if q.Done() {
		return true, domain.ErrQuizComplete
	}
	if len(q.questions) == 0 {
		return false, fmt.Errorf("%w: quiz has no questions", domain.ErrInvalidInput)
	}
	question := q.questions[q.index]
	if option < 0 || option >= len(question.Scores) {
		return false, fmt.Errorf("%w: question %d has no option %d", domain.ErrInvalidInput, question.ID, option)
	}

	if prev := q.answers[q.index]; prev != unanswered {
		q.score -= question.Scores[prev]
	}
	q.answers[q.index] = option
	q.score += question.Scores[option]

	if q.index < len(q.questions)-1 {
		q.index++
		return false, nil
	}

	level := q.policy.Classify(q.score)
	q.result = &domain.QuizResult{
		Score:   q.score,
		Risk:    level,
		Message: domain.QuizMessage(level),
	}
	return true, nil
}

// Back returns to the previous question.
func (q *QuizEngine) Back() error {
	if q.Done() {
		return domain.ErrQuizComplete
	}
	if q.index == 0 {
		return fmt.Errorf("%w: already at the first question", domain.ErrInvalidInput)
	}
	q.index--
	return nil
}

// Result returns the classification once the quiz is complete.
func (q *QuizEngine) Result() (domain.QuizResult, error) {
	if q.result == nil {
		return domain.QuizResult{}, domain.ErrQuizIncomplete
	}
	return *q.result, nil
}

// ScoreQuiz runs a fresh quiz over answers given in question order.
func (s *QuizService) ScoreQuiz(answers []int) (domain.QuizResult, error) {
	if len(answers) != len(s.questions) {
		return domain.QuizResult{}, fmt.Errorf("%w: expected %d answers, got %d",
			domain.ErrQuizIncomplete, len(s.questions), len(answers))
	}
	quiz := s.NewQuiz()
	for _, option := range answers {
		if _, err := quiz.Answer(option); err != nil {
			return domain.QuizResult{}, err
		}
	}
	return quiz.Result()
}
