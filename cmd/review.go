package cmd

import (
	"context"
	"time"

	"github.com/nikogura/checkin-scorer/pkg/config"
	"github.com/nikogura/checkin-scorer/pkg/history"
	"github.com/nikogura/checkin-scorer/pkg/logging"
	"github.com/nikogura/checkin-scorer/pkg/renderer"
	"github.com/nikogura/checkin-scorer/pkg/review"
	"github.com/nikogura/checkin-scorer/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var reviewClient string

//nolint:gochecknoglobals // Cobra boilerplate
var reviewTier string

//nolint:gochecknoglobals // Cobra boilerplate
var reviewFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var reviewSave bool

//nolint:gochecknoglobals // Cobra boilerplate
var reviewLast bool

//nolint:gochecknoglobals // Cobra boilerplate
var reviewCmd = &cobra.Command{
	Use:   "review [check-in files...]",
	Short: "Build a training, nutrition and mindset review",
	Long: `Build a coach review from a client's most recent check-in.

Check-ins are read from the files given as arguments (newest first), or from
the history database when --client is set and no files are given. Only the
latest check-in is assessed.

Example:
  checkin-scorer review latest.json
  checkin-scorer review --client c-42 --tier advanced --save
  checkin-scorer review --client c-42 --last`,
	RunE: runReview,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().StringVarP(&reviewClient, "client", "c", "", "Client id to read history for")
	reviewCmd.Flags().StringVarP(&reviewTier, "tier", "t", "", "Tier id (default from config)")
	reviewCmd.Flags().StringVar(&reviewFormat, "format", "", "Output format: console, markdown or json (default from config)")
	reviewCmd.Flags().BoolVar(&reviewSave, "save", false, "Store the review in the history database (requires --client)")
	reviewCmd.Flags().BoolVar(&reviewLast, "last", false, "Show the last saved review instead of computing a new one")
}

func runReview(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var cfg config.Config
	var logger *logging.Logger
	cfg, logger, err = setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	err = validateReviewFlags(args)
	if err != nil {
		return err
	}

	format := getFormat(reviewFormat, cfg.Format)

	// Stored history is only needed when reading or writing by client.
	var store *history.Store
	if reviewClient != "" && (len(args) == 0 || reviewSave || reviewLast) {
		store, err = openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if reviewLast {
		var stored history.StoredReview
		stored, err = store.LatestReview(ctx, reviewClient)
		if err != nil {
			return err
		}
		err = renderer.RenderReview(cmd.OutOrStdout(), stored.Review, cfg.Tier(stored.TierID), format)
		return err
	}

	// Gather check-ins, newest first
	var checkIns []review.CheckIn
	if len(args) > 0 {
		checkIns, err = readCheckInFiles(args)
	} else {
		checkIns, err = readStoredCheckIns(ctx, store, reviewClient, cfg.HistoryLimit)
	}
	if err != nil {
		return err
	}

	log := logger.With("client_id", reviewClient)
	if len(checkIns) == 0 {
		log.Warn("no check-ins found, review will be empty")
	}

	tier := resolveTier(reviewTier, cfg, log)
	coachReview := review.NewReviewer().ReviewWithThresholds(checkIns, tier.Thresholds)
	log.Debug("review built",
		"tier", tier.ID,
		"check_ins", len(checkIns),
		"training", coachReview.Training.Score,
		"nutrition", coachReview.Nutrition.Score,
		"mindset", coachReview.Mindset.Score,
	)

	if reviewSave {
		var id string
		id, err = store.SaveReview(ctx, reviewClient, tier.ID, coachReview)
		if err != nil {
			return err
		}
		log.Info("review saved", "review_id", id)
	}

	err = renderer.RenderReview(cmd.OutOrStdout(), coachReview, tier, format)
	return err
}

func validateReviewFlags(args []string) (err error) {
	if reviewClient == "" {
		switch {
		case reviewSave:
			err = errors.New("--save requires --client")
		case reviewLast:
			err = errors.New("--last requires --client")
		case len(args) == 0:
			err = errors.New("pass check-in files or --client")
		}
		return err
	}

	if reviewLast && (reviewSave || len(args) > 0) {
		err = errors.New("--last cannot be combined with --save or check-in files")
		return err
	}

	return err
}

func readCheckInFiles(paths []string) (checkIns []review.CheckIn, err error) {
	checkIns = make([]review.CheckIn, 0, len(paths))

	for _, path := range paths {
		var data []byte
		data, err = source.Fetch(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read check-in: %s", path)
			return checkIns, err
		}

		var checkIn review.CheckIn
		checkIn, err = review.ParseCheckIn(data)
		if err != nil {
			err = errors.Wrapf(err, "invalid check-in: %s", path)
			return checkIns, err
		}

		checkIns = append(checkIns, checkIn)
	}

	return checkIns, err
}

func readStoredCheckIns(ctx context.Context, store *history.Store, clientID string, limit int) (checkIns []review.CheckIn, err error) {
	var records []history.Record
	records, err = store.ListCheckIns(ctx, clientID, limit)
	if err != nil {
		err = errors.Wrap(err, "failed to read check-in history")
		return checkIns, err
	}

	checkIns = history.CheckIns(records)
	return checkIns, err
}
