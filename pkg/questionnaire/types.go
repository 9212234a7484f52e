package questionnaire

import "github.com/nikogura/checkin-scorer/pkg/scorer"

// Set is a questionnaire as authored by a coach.
type Set struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Definition `json:"questions" yaml:"questions"`
}

// Definition is a single question as it appears in a questionnaire file.
// Weight and YesIsPositive are pointers so that an omitted value can be told apart from zero.
type Definition struct {
	ID            string              `json:"id" yaml:"id"`
	Type          scorer.QuestionType `json:"type" yaml:"type"`
	Text          string              `json:"text,omitempty" yaml:"text,omitempty"`
	Weight        *float64            `json:"weight,omitempty" yaml:"weight,omitempty"`
	YesIsPositive *bool               `json:"yesIsPositive,omitempty" yaml:"yesIsPositive,omitempty"`
	Options       []string            `json:"options,omitempty" yaml:"options,omitempty"`
	Min           float64             `json:"min,omitempty" yaml:"min,omitempty"`
	Max           float64             `json:"max,omitempty" yaml:"max,omitempty"`
}

// AnswerSet is a client's submitted answers.
type AnswerSet struct {
	QuestionnaireID string          `json:"questionnaireId,omitempty" yaml:"questionnaireId,omitempty"`
	ClientID        string          `json:"clientId,omitempty" yaml:"clientId,omitempty"`
	Answers         []scorer.Answer `json:"answers" yaml:"answers"`
}
