package scorer

// QuestionType names the kind of a question as it appears in questionnaire definitions.
type QuestionType string

// Question types understood by the form builder.
const (
	TypeYesNo          QuestionType = "yesNo"
	TypeScale          QuestionType = "scale"
	TypeNumber         QuestionType = "number"
	TypeText           QuestionType = "text"
	TypeMultipleChoice QuestionType = "multipleChoice"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() (valid bool) {
	switch t {
	case TypeYesNo, TypeScale, TypeNumber, TypeText, TypeMultipleChoice:
		valid = true
	}
	return valid
}

// Question is a closed set of question kinds. Only WeightedYesNo carries a weight
// and therefore only WeightedYesNo contributes to a score.
type Question interface {
	QuestionID() string
	Type() QuestionType
	isQuestion()
}

// WeightedYesNo is a yes/no question with a numeric weight. It is the only scorable kind.
type WeightedYesNo struct {
	ID            string
	Weight        float64
	YesIsPositive bool
}

// YesNo is a yes/no question without a weight.
type YesNo struct {
	ID string
}

// Scale is a bounded numeric rating question.
type Scale struct {
	ID  string
	Min float64
	Max float64
}

// Number is a free numeric entry question.
type Number struct {
	ID string
}

// Text is a free text question.
type Text struct {
	ID string
}

// MultipleChoice is a question answered by picking one of Options.
type MultipleChoice struct {
	ID      string
	Options []string
}

func (q WeightedYesNo) QuestionID() string  { return q.ID }
func (q YesNo) QuestionID() string          { return q.ID }
func (q Scale) QuestionID() string          { return q.ID }
func (q Number) QuestionID() string         { return q.ID }
func (q Text) QuestionID() string           { return q.ID }
func (q MultipleChoice) QuestionID() string { return q.ID }

func (WeightedYesNo) Type() QuestionType  { return TypeYesNo }
func (YesNo) Type() QuestionType          { return TypeYesNo }
func (Scale) Type() QuestionType          { return TypeScale }
func (Number) Type() QuestionType         { return TypeNumber }
func (Text) Type() QuestionType           { return TypeText }
func (MultipleChoice) Type() QuestionType { return TypeMultipleChoice }

func (WeightedYesNo) isQuestion()  {}
func (YesNo) isQuestion()          {}
func (Scale) isQuestion()          {}
func (Number) isQuestion()         {}
func (Text) isQuestion()           {}
func (MultipleChoice) isQuestion() {}

// Answer is a client's response to a single question.
// Value is a bool for yes/no questions; other kinds carry whatever the form produced.
type Answer struct {
	QuestionID string `json:"questionId" yaml:"questionId"`
	Value      any    `json:"value" yaml:"value"`
}
