package questionnaire

import (
	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/nikogura/checkin-scorer/pkg/source"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a questionnaire from a YAML or JSON file, URL or stdin.
func Load(path string) (set Set, err error) {
	var data []byte
	data, err = source.Fetch(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read questionnaire: %s", path)
		return set, err
	}

	set, err = Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "invalid questionnaire: %s", path)
		return set, err
	}

	return set, err
}

// Parse decodes and validates a questionnaire document. JSON is accepted as a subset of YAML.
func Parse(data []byte) (set Set, err error) {
	err = yaml.Unmarshal(data, &set)
	if err != nil {
		err = errors.Wrap(err, "failed to parse questionnaire")
		return set, err
	}

	err = set.Validate()
	if err != nil {
		err = errors.Wrap(err, "questionnaire validation failed")
		return set, err
	}

	return set, err
}

// LoadAnswers reads an answer set from a YAML or JSON file, URL or stdin.
func LoadAnswers(path string) (answers AnswerSet, err error) {
	var data []byte
	data, err = source.Fetch(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read answers: %s", path)
		return answers, err
	}

	answers, err = ParseAnswers(data)
	if err != nil {
		err = errors.Wrapf(err, "invalid answers: %s", path)
		return answers, err
	}

	return answers, err
}

// ParseAnswers decodes an answer set document.
func ParseAnswers(data []byte) (answers AnswerSet, err error) {
	err = yaml.Unmarshal(data, &answers)
	if err != nil {
		err = errors.Wrap(err, "failed to parse answers")
		return answers, err
	}

	for i, a := range answers.Answers {
		if a.QuestionID == "" {
			err = errors.Errorf("answer at index %d missing questionId", i)
			return answers, err
		}
	}

	return answers, err
}

// Validate checks that the questionnaire is well-formed.
func (s *Set) Validate() (err error) {
	verr := &scorer.ValidationError{}

	if len(s.Questions) == 0 {
		verr.Add("no questions found in questionnaire")
	}

	seen := make(map[string]bool, len(s.Questions))
	for i, q := range s.Questions {
		if q.ID == "" {
			verr.Add("question at index %d missing id", i)
			continue
		}
		if seen[q.ID] {
			verr.Add("duplicate question id %s", q.ID)
		}
		seen[q.ID] = true

		if !q.Type.Valid() {
			verr.Add("question %s has unknown type %q", q.ID, q.Type)
		}

		if q.Type == scorer.TypeMultipleChoice && len(q.Options) == 0 {
			verr.Add("question %s has no options", q.ID)
		}

		if q.Type == scorer.TypeScale && q.Max <= q.Min {
			verr.Add("question %s has an empty scale range", q.ID)
		}
	}

	err = verr.Err()
	return err
}

// ScorerQuestions converts the definitions into scorer questions. A yes/no question becomes
// scorable only when it declares a weight. YesIsPositive defaults to true when omitted.
func (s *Set) ScorerQuestions() (questions []scorer.Question) {
	questions = make([]scorer.Question, 0, len(s.Questions))

	for _, d := range s.Questions {
		switch d.Type {
		case scorer.TypeYesNo:
			if d.Weight == nil {
				questions = append(questions, scorer.YesNo{ID: d.ID})
				continue
			}
			yesIsPositive := true
			if d.YesIsPositive != nil {
				yesIsPositive = *d.YesIsPositive
			}
			questions = append(questions, scorer.WeightedYesNo{
				ID:            d.ID,
				Weight:        *d.Weight,
				YesIsPositive: yesIsPositive,
			})
		case scorer.TypeScale:
			questions = append(questions, scorer.Scale{ID: d.ID, Min: d.Min, Max: d.Max})
		case scorer.TypeNumber:
			questions = append(questions, scorer.Number{ID: d.ID})
		case scorer.TypeText:
			questions = append(questions, scorer.Text{ID: d.ID})
		case scorer.TypeMultipleChoice:
			questions = append(questions, scorer.MultipleChoice{ID: d.ID, Options: d.Options})
		}
	}

	return questions
}

// Find returns the definition with the given id.
func (s *Set) Find(id string) (definition Definition, found bool) {
	for _, d := range s.Questions {
		if d.ID == id {
			definition = d
			found = true
			return definition, found
		}
	}
	return definition, found
}
