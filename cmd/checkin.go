package cmd

import (
	"context"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nikogura/checkin-scorer/pkg/config"
	"github.com/nikogura/checkin-scorer/pkg/history"
	"github.com/nikogura/checkin-scorer/pkg/logging"
	"github.com/nikogura/checkin-scorer/pkg/renderer"
	"github.com/nikogura/checkin-scorer/pkg/review"
	"github.com/nikogura/checkin-scorer/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

//nolint:gochecknoglobals // Cobra boilerplate
var checkinClient string

//nolint:gochecknoglobals // Cobra boilerplate
var checkinFile string

//nolint:gochecknoglobals // Cobra boilerplate
var checkinSet []string

//nolint:gochecknoglobals // Cobra boilerplate
var checkinAt string

//nolint:gochecknoglobals // Cobra boilerplate
var checkinLimit int

//nolint:gochecknoglobals // Cobra boilerplate
var checkinFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record and list client check-ins",
	Long: `Record client check-ins in the history database and list them.

Reviews built with --client read the most recent stored check-in.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var checkinAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a check-in",
	Long: `Record a check-in from a JSON document, from field=value pairs, or both.
Pairs given with --set override fields from --file.

Values "true" and "false" become booleans and numeric values become numbers;
anything else is stored as text.

Example:
  checkin-scorer checkin add --client c-42 --file week-12.json
  checkin-scorer checkin add --client c-42 --set training-form-quality=4 --set training-warmup=true`,
	Args: cobra.NoArgs,
	RunE: runCheckinAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var checkinListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a client's check-ins, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCheckinList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var checkinImportCmd = &cobra.Command{
	Use:   "import <pattern>...",
	Short: "Import check-in files matching glob patterns",
	Long: `Import every JSON check-in matching the given patterns. Patterns support ** to
match across directories.

The submission time is read from a top-level "submittedAt" field (RFC 3339)
when present, otherwise the file's modification time is used.

Example:
  checkin-scorer checkin import --client c-42 'exports/c-42/**/*.json'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckinImport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(checkinCmd)
	checkinCmd.AddCommand(checkinAddCmd, checkinListCmd, checkinImportCmd)

	checkinCmd.PersistentFlags().StringVarP(&checkinClient, "client", "c", "", "Client id (required)")
	_ = checkinCmd.MarkPersistentFlagRequired("client")

	checkinAddCmd.Flags().StringVarP(&checkinFile, "file", "f", "", "Check-in JSON file, URL or - for stdin")
	checkinAddCmd.Flags().StringArrayVar(&checkinSet, "set", nil, "Field value as field=value (repeatable)")
	checkinAddCmd.Flags().StringVar(&checkinAt, "at", "", "Submission time in RFC 3339 (default now)")

	checkinListCmd.Flags().IntVar(&checkinLimit, "limit", 0, "Maximum check-ins to list (default from config)")
	checkinListCmd.Flags().StringVar(&checkinFormat, "format", "", "Output format: console, markdown or json (default from config)")
}

func runCheckinAdd(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if checkinFile == "" && len(checkinSet) == 0 {
		err = errors.New("either --file or --set is required")
		return err
	}

	var cfg config.Config
	var logger *logging.Logger
	cfg, logger, err = setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	submittedAt := time.Now()
	if checkinAt != "" {
		submittedAt, err = time.Parse(time.RFC3339, checkinAt)
		if err != nil {
			err = errors.Wrapf(err, "invalid --at time: %s", checkinAt)
			return err
		}
	}

	// Start from the file, if any
	doc := []byte("{}")
	if checkinFile != "" {
		doc, err = source.Fetch(checkinFile)
		if err != nil {
			err = errors.Wrapf(err, "failed to read check-in: %s", checkinFile)
			return err
		}
	}

	doc, err = applySetFlags(doc, checkinSet)
	if err != nil {
		return err
	}

	var checkIn review.CheckIn
	checkIn, err = review.ParseCheckIn(doc)
	if err != nil {
		err = errors.Wrap(err, "invalid check-in")
		return err
	}

	var store *history.Store
	store, err = openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var id string
	id, err = store.AddCheckIn(ctx, checkinClient, submittedAt, checkIn)
	if err != nil {
		return err
	}

	logger.Info("check-in recorded", "client_id", checkinClient, "check_in_id", id, "fields", len(checkIn))
	cmd.Printf("Recorded check-in %s\n", id)

	return err
}

// applySetFlags writes each field=value pair into the check-in document as {"field": {"value": v}}.
// A document using the {"responses": {...}} envelope is edited inside the envelope.
func applySetFlags(doc []byte, pairs []string) (out []byte, err error) {
	out = doc

	prefix := ""
	if gjson.GetBytes(doc, "responses").IsObject() {
		prefix = "responses."
	}

	for _, pair := range pairs {
		field, raw, found := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !found || field == "" {
			err = errors.Errorf("invalid --set %q: expected field=value", pair)
			return out, err
		}

		path := prefix + escapePath(field)
		out, err = sjson.SetBytes(out, path, map[string]any{"value": parseSetValue(raw)})
		if err != nil {
			err = errors.Wrapf(err, "failed to set field %s", field)
			return out, err
		}
	}

	return out, err
}

// parseSetValue types a command-line value: booleans, then finite numbers, then text.
func parseSetValue(raw string) (value any) {
	trimmed := strings.TrimSpace(raw)

	switch trimmed {
	case "true":
		value = true
		return value
	case "false":
		value = false
		return value
	}

	n, err := strconv.ParseFloat(trimmed, 64)
	if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		value = n
		return value
	}

	value = raw
	return value
}

// escapePath escapes the characters sjson treats as path syntax.
func escapePath(field string) (escaped string) {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	escaped = replacer.Replace(field)
	return escaped
}

func runCheckinList(cmd *cobra.Command, args []string) (err error) {
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

	limit := checkinLimit
	if limit <= 0 {
		limit = cfg.HistoryLimit
	}

	var store *history.Store
	store, err = openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var records []history.Record
	records, err = store.ListCheckIns(ctx, checkinClient, limit)
	if err != nil {
		return err
	}

	err = renderer.RenderCheckIns(cmd.OutOrStdout(), records, getFormat(checkinFormat, cfg.Format))
	return err
}

func runCheckinImport(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var cfg config.Config
	var logger *logging.Logger
	cfg, logger, err = setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var paths []string
	paths, err = expandPatterns(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		err = errors.Errorf("no files match %v", args)
		return err
	}

	var store *history.Store
	store, err = openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	log := logger.With("client_id", checkinClient)
	for _, path := range paths {
		var id string
		id, err = importCheckInFile(ctx, store, checkinClient, path)
		if err != nil {
			log.Error("check-in import failed", "path", path, "error", err)
			return err
		}
		log.Debug("check-in imported", "path", path, "check_in_id", id)
	}

	log.Info("import complete", "files", len(paths))
	cmd.Printf("Imported %d check-ins\n", len(paths))

	return err
}

// expandPatterns resolves glob patterns into a de-duplicated list of files, in match order.
func expandPatterns(patterns []string) (paths []string, err error) {
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		var matches []string
		matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			err = errors.Wrapf(err, "invalid pattern: %s", pattern)
			return paths, err
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}

	return paths, err
}

func importCheckInFile(ctx context.Context, store *history.Store, clientID, path string) (id string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read check-in: %s", path)
		return id, err
	}

	var checkIn review.CheckIn
	checkIn, err = review.ParseCheckIn(data)
	if err != nil {
		err = errors.Wrapf(err, "invalid check-in: %s", path)
		return id, err
	}

	var submittedAt time.Time
	submittedAt, err = submissionTime(data, path)
	if err != nil {
		return id, err
	}

	id, err = store.AddCheckIn(ctx, clientID, submittedAt, checkIn)
	if err != nil {
		err = errors.Wrapf(err, "failed to store check-in: %s", path)
		return id, err
	}

	return id, err
}

// submissionTime reads "submittedAt" from the document, falling back to the file's modification time.
func submissionTime(data []byte, path string) (submittedAt time.Time, err error) {
	value := gjson.GetBytes(data, "submittedAt")
	if value.Exists() {
		submittedAt, err = time.Parse(time.RFC3339, value.String())
		if err != nil {
			err = errors.Wrapf(err, "invalid submittedAt in %s", path)
			return submittedAt, err
		}
		return submittedAt, err
	}

	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to stat check-in: %s", path)
		return submittedAt, err
	}

	submittedAt = info.ModTime()
	return submittedAt, err
}
