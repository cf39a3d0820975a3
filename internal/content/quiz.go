package content

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"
)

// ErrQuizNotFound is returned for unknown quiz ids.
var ErrQuizNotFound = errors.New("quiz not found")

func validOption(o string) bool {
	switch o {
	case "a", "b", "c", "d":
		return true
	}
	return false
}

// PublicQuestion is a quiz question without its answer.
type PublicQuestion struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Options  Options `json:"options"`
}

// PublicQuiz is a quiz as shown to users.
type PublicQuiz struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Questions []PublicQuestion `json:"questions"`
}

// Public strips the correct answers.
func (q Quiz) Public() PublicQuiz {
	return PublicQuiz{
		ID:    q.ID,
		Title: q.Title,
		Questions: lo.Map(q.Questions, func(question QuizQuestion, _ int) PublicQuestion {
			return PublicQuestion{
				ID:       question.ID,
				Question: question.Question,
				Options:  question.Options,
			}
		}),
	}
}

// PublicQuizzes returns every quiz without answers.
func (c *Catalog) PublicQuizzes() []PublicQuiz {
	return lo.Map(c.Quizzes, func(q Quiz, _ int) PublicQuiz { return q.Public() })
}

// QuizResult is the outcome of a graded attempt.
type QuizResult struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	QuizID         string    `json:"quizId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Date           time.Time `json:"date"`
}

// Grade scores answers (question id to option letter) for the quiz.
// Unanswered questions count as wrong.
func (c *Catalog) Grade(quizID, userID string, answers map[string]string, now time.Time) (QuizResult, error) {
	quiz, ok := c.Quiz(quizID)
	if !ok {
		return QuizResult{}, fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}

	score := lo.CountBy(quiz.Questions, func(q QuizQuestion) bool {
		return answers[q.ID] == q.CorrectOption
	})

	return QuizResult{
		ID:             ulid.Make().String(),
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		Date:           now,
	}, nil
}
