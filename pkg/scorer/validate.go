package scorer

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed questionnaire input. It is only produced by the
// strict validation helpers; Calculate never fails.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

// Add records a problem.
func (e *ValidationError) Add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Err returns e when problems were recorded and nil otherwise.
func (e *ValidationError) Err() (err error) {
	if len(e.Problems) > 0 {
		err = e
	}
	return err
}

// ValidateAnswers checks that every answer to a yes/no question carries a boolean value.
func ValidateAnswers(questions []Question, answers []Answer) (err error) {
	yesNo := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.Type() == TypeYesNo {
			yesNo[q.QuestionID()] = true
		}
	}

	verr := &ValidationError{}
	for _, a := range answers {
		if !yesNo[a.QuestionID] {
			continue
		}
		if _, ok := a.Value.(bool); !ok {
			verr.Add("answer to %s must be true or false, got %v", a.QuestionID, a.Value)
		}
	}

	err = verr.Err()
	return err
}
