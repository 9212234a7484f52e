package cmd

import (
	"github.com/nikogura/checkin-scorer/pkg/config"
	"github.com/nikogura/checkin-scorer/pkg/logging"
	"github.com/nikogura/checkin-scorer/pkg/questionnaire"
	"github.com/nikogura/checkin-scorer/pkg/renderer"
	"github.com/nikogura/checkin-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scoreQuestions string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreAnswers string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreTier string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var scoreInteractive bool

//nolint:gochecknoglobals // Cobra boilerplate
var scoreStrict bool

//nolint:gochecknoglobals // Cobra boilerplate
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a questionnaire against a tier",
	Long: `Score a client's answers to a weighted yes/no questionnaire.

Only yes/no questions that declare a weight contribute to the score. The
percentage is classified red, orange or green using the tier's thresholds.

Questionnaires and answers are YAML or JSON and may be read from a file, a URL
or stdin ("-"). Use --interactive to fill in the answers at the terminal.
Interactive yes/no questions are always answered: a confirm left untouched
counts as No, so an interactive score never has unanswered weight.

Example:
  checkin-scorer score --questions weekly.yaml --answers answers.json
  checkin-scorer score --questions weekly.yaml --interactive --tier advanced
  cat answers.json | checkin-scorer score --questions weekly.yaml --answers - --format json`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVarP(&scoreQuestions, "questions", "q", "", "Questionnaire file, URL or - for stdin (required)")
	scoreCmd.Flags().StringVarP(&scoreAnswers, "answers", "a", "", "Answers file, URL or - for stdin")
	scoreCmd.Flags().StringVarP(&scoreTier, "tier", "t", "", "Tier id (default from config)")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "", "Output format: console, markdown or json (default from config)")
	scoreCmd.Flags().BoolVarP(&scoreInteractive, "interactive", "i", false, "Prompt for answers instead of reading a file")
	scoreCmd.Flags().BoolVar(&scoreStrict, "strict", false, "Reject answers whose values do not match the question type")
	_ = scoreCmd.MarkFlagRequired("questions")
	scoreCmd.MarkFlagsMutuallyExclusive("answers", "interactive")
}

func runScore(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	var logger *logging.Logger
	cfg, logger, err = setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Load questionnaire
	var set questionnaire.Set
	set, err = questionnaire.Load(scoreQuestions)
	if err != nil {
		err = errors.Wrap(err, "failed to load questionnaire")
		return err
	}
	logger.Debug("questionnaire loaded", "questionnaire", set.ID, "questions", len(set.Questions))

	// Collect answers
	var answers []scorer.Answer
	answers, err = collectScoreAnswers(set, logger)
	if err != nil {
		return err
	}

	questions := set.ScorerQuestions()

	if scoreStrict {
		err = scorer.ValidateAnswers(questions, answers)
		if err != nil {
			err = errors.Wrap(err, "answers rejected")
			return err
		}
	}

	tier := resolveTier(scoreTier, cfg, logger)

	s := scorer.NewScorerWithThresholds(tier.Thresholds)
	result := s.Calculate(questions, answers)
	logger.Debug("check-in scored",
		"tier", tier.ID,
		"red", s.Thresholds().Red,
		"orange", s.Thresholds().Orange,
		"score", result.Score,
		"max", result.MaxPossibleScore,
		"status", result.Status,
	)

	err = renderer.RenderScore(cmd.OutOrStdout(), result, tier, getFormat(scoreFormat, cfg.Format))
	return err
}

func collectScoreAnswers(set questionnaire.Set, logger *logging.Logger) (answers []scorer.Answer, err error) {
	if scoreInteractive {
		answers, err = promptAnswers(set)
		return answers, err
	}

	if scoreAnswers == "" {
		err = errors.New("either --answers or --interactive is required")
		return answers, err
	}

	var answerSet questionnaire.AnswerSet
	answerSet, err = questionnaire.LoadAnswers(scoreAnswers)
	if err != nil {
		err = errors.Wrap(err, "failed to load answers")
		return answers, err
	}

	if answerSet.QuestionnaireID != "" && set.ID != "" && answerSet.QuestionnaireID != set.ID {
		logger.Warn("answers were written for a different questionnaire",
			"questionnaire", set.ID,
			"answers_for", answerSet.QuestionnaireID,
		)
	}

	for _, id := range unknownAnswers(set, answerSet.Answers) {
		logger.Warn("answer does not match any question, ignoring", "question_id", id)
	}

	logger.Debug("answers loaded", "client_id", answerSet.ClientID, "answers", len(answerSet.Answers))

	answers = answerSet.Answers
	return answers, err
}

// unknownAnswers returns the question ids answered but not asked by set, in answer order.
func unknownAnswers(set questionnaire.Set, answers []scorer.Answer) (ids []string) {
	for _, a := range answers {
		if _, found := set.Find(a.QuestionID); !found {
			ids = append(ids, a.QuestionID)
		}
	}
	return ids
}
