package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/nikogura/checkin-scorer/pkg/questionnaire"
	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/pkg/errors"
)

// promptField holds the value a form field writes into for one question.
type promptField struct {
	definition questionnaire.Definition
	confirm    bool
	text       string
	choice     string
}

// buildAnswerForm builds one form group per question, in questionnaire order.
func buildAnswerForm(set questionnaire.Set) (form *huh.Form, fields []*promptField) {
	groups := make([]*huh.Group, 0, len(set.Questions))
	fields = make([]*promptField, 0, len(set.Questions))

	for _, d := range set.Questions {
		field := &promptField{definition: d}
		fields = append(fields, field)

		title := d.Text
		if title == "" {
			title = d.ID
		}

		switch d.Type {
		case scorer.TypeYesNo:
			groups = append(groups, huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Affirmative("Yes").
					Negative("No").
					Value(&field.confirm),
			))
		case scorer.TypeMultipleChoice:
			options := huh.NewOptions(d.Options...)
			groups = append(groups, huh.NewGroup(
				huh.NewSelect[string]().
					Title(title).
					Options(options...).
					Value(&field.choice),
			))
		case scorer.TypeScale:
			groups = append(groups, huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("%s (%g-%g)", title, d.Min, d.Max)).
					Placeholder("blank to skip").
					Value(&field.text).
					Validate(scaleValidator(d.Min, d.Max)),
			))
		case scorer.TypeNumber:
			groups = append(groups, huh.NewGroup(
				huh.NewInput().
					Title(title).
					Placeholder("blank to skip").
					Value(&field.text).
					Validate(validateOptionalNumber),
			))
		default:
			groups = append(groups, huh.NewGroup(
				huh.NewInput().
					Title(title).
					Placeholder("optional").
					Value(&field.text),
			))
		}
	}

	form = huh.NewForm(groups...).WithShowHelp(false)
	return form, fields
}

// promptAnswers runs the interactive form and returns the collected answers.
func promptAnswers(set questionnaire.Set) (answers []scorer.Answer, err error) {
	form, fields := buildAnswerForm(set)

	err = form.Run()
	if err != nil {
		err = errors.Wrap(err, "interactive check-in aborted")
		return answers, err
	}

	answers = collectAnswers(fields)
	return answers, err
}

// collectAnswers turns filled-in fields into answers. Blank optional fields stay unanswered;
// a yes/no confirm always records its value, so an untouched one answers No.
func collectAnswers(fields []*promptField) (answers []scorer.Answer) {
	answers = make([]scorer.Answer, 0, len(fields))

	for _, f := range fields {
		id := f.definition.ID

		switch f.definition.Type {
		case scorer.TypeYesNo:
			answers = append(answers, scorer.Answer{QuestionID: id, Value: f.confirm})
		case scorer.TypeMultipleChoice:
			if f.choice != "" {
				answers = append(answers, scorer.Answer{QuestionID: id, Value: f.choice})
			}
		case scorer.TypeScale, scorer.TypeNumber:
			n, err := strconv.ParseFloat(strings.TrimSpace(f.text), 64)
			if err == nil {
				answers = append(answers, scorer.Answer{QuestionID: id, Value: n})
			}
		default:
			text := strings.TrimSpace(f.text)
			if text != "" {
				answers = append(answers, scorer.Answer{QuestionID: id, Value: text})
			}
		}
	}

	return answers
}

func validateOptionalNumber(s string) (err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return err
	}
	_, err = strconv.ParseFloat(s, 64)
	if err != nil {
		err = errors.New("must be a number")
		return err
	}
	return err
}

func scaleValidator(lo, hi float64) (validate func(string) error) {
	validate = func(s string) (err error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return err
		}
		var n float64
		n, err = strconv.ParseFloat(s, 64)
		if err != nil || n < lo || n > hi {
			err = errors.Errorf("must be a number from %g to %g", lo, hi)
			return err
		}
		return err
	}
	return validate
}
