package driving

import "github.com/custodia-labs/lexdraft-cli/internal/core/domain"

// Quiz is a one-shot legal health check run. A completed quiz cannot be
// reused; create a new one to run again.
type Quiz interface {
	// Questions returns the questions in order.
	Questions() []domain.QuizQuestion

	// Index returns the 0-based current question.
	Index() int

	// Score returns the cumulative score of the recorded answers.
	Score() int

	// Answers returns the chosen option per question, -1 when unanswered.
	Answers() []int

	// Answer records option for the current question and advances. Answering
	// the last question completes the quiz and returns true.
	Answer(option int) (bool, error)

	// Back moves to the previous question so it can be re-answered.
	Back() error

	// Done returns true once the result has been emitted.
	Done() bool

	// Result returns the classification, or domain.ErrQuizIncomplete.
	Result() (domain.QuizResult, error)
}

// QuizFactory starts fresh quiz runs.
type QuizFactory interface {
	NewQuiz() Quiz

	// ScoreQuiz answers a fresh run with options given in question order.
	ScoreQuiz(answers []int) (domain.QuizResult, error)
}
