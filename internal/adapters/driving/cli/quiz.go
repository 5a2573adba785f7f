package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
)

var quizPlain bool

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the legal health check",
	Long: `Runs the four-question legal health check and classifies your business
risk. In a terminal the interactive UI is used; with --plain, or when input is
piped, questions are asked line by line. Answer with the option number, or
"b" to go back.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

// stdinIsTerminal reports whether the interactive UI can be used.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	quizCmd.Flags().BoolVar(&quizPlain, "plain", false, "ask questions line by line")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	if quizFactory == nil {
		return errQuizNotConfigured
	}
	if !quizPlain && stdinIsTerminal() {
		return runTUI(cmd, true)
	}
	return runPlainQuiz(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func runPlainQuiz(cmd *cobra.Command, reader *bufio.Reader) error {
	quiz := quizFactory.NewQuiz()
	questions := quiz.Questions()

	cmd.Println("Legal health check")
	cmd.Println("==================")

	for !quiz.Done() {
		q := questions[quiz.Index()]
		cmd.Printf("\nQuestion %d of %d\n%s\n", quiz.Index()+1, len(questions), q.Question)
		for i, opt := range q.Options {
			cmd.Printf("  %d. %s\n", i+1, opt)
		}
		cmd.Print("Answer: ")

		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if err != nil && input == "" {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: input ended before the last question", domain.ErrQuizIncomplete)
			}
			return err
		}

		if strings.EqualFold(input, "b") {
			if err := quiz.Back(); err != nil {
				cmd.Println("Already at the first question.")
			}
			continue
		}
		choice := parseChoice(input, len(q.Options), 0)
		if choice == 0 {
			cmd.Printf("Please enter a number from 1 to %d.\n", len(q.Options))
			continue
		}
		if _, err := quiz.Answer(choice - 1); err != nil {
			return err
		}
	}

	result, err := quiz.Result()
	if err != nil {
		return err
	}
	cmd.Println()
	cmd.Printf("Your risk level: %s (score %d)\n", result.Risk, result.Score)
	cmd.Println(result.Message)
	if result.Risk != domain.RiskLevelLow {
		cmd.Println("\nSee 'lexdraft templates' for documents that close these gaps.")
	}
	return nil
}
