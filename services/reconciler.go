package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/models"
	"github.com/yeremiapane/mealbox-app/normalize"
	"github.com/yeremiapane/mealbox-app/utils"
)

// ImportState is the accumulator folded over the rows of one file.
// CurrentDate carries forward because legacy sheets only stamp the first
// row of each day.
type ImportState struct {
	CurrentDate *time.Time
	RowIndex    int
	Imported    int
	Skipped     int
}

// RowOutcome describes what happened to a single row.
type RowOutcome struct {
	Row     int
	OrderID uint
	Skipped bool
	Reason  string
}

type ImportResult struct {
	RunID    uint   `json:"run_id"`
	RunTag   string `json:"run_tag"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// AdvanceDate is the pure date transition: a parsable date replaces the
// current one, anything else keeps it.
func AdvanceDate(state ImportState, raw normalize.RawRow) ImportState {
	if d, ok := normalize.ParseDate(raw.Date); ok {
		state.CurrentDate = &d
	}
	return state
}

// Reconciler imports historical order rows into customers, menu items and
// delivered orders.
type Reconciler struct {
	repo database.Repository
	now  func() time.Time
}

func NewReconciler(repo database.Repository) *Reconciler {
	return &Reconciler{repo: repo, now: time.Now}
}

// ImportHistoricalOrders processes rows in order. Rows that cannot be
// normalized or stored are counted as skipped; only ctx cancellation or
// an unreadable source stops the run early.
func (rc *Reconciler) ImportHistoricalOrders(ctx context.Context, source string, rows []normalize.RawRow) (ImportResult, error) {
	return rc.Import(ctx, source, NewSliceSource(rows))
}

// ImportCSV reads a legacy CSV export and imports it.
func (rc *Reconciler) ImportCSV(ctx context.Context, source string, r io.Reader) (ImportResult, error) {
	reader, err := NewLegacyReader(r)
	if err != nil {
		return ImportResult{}, utils.WrapKind(utils.KindInvalidOperation, err, "unreadable legacy file")
	}
	return rc.Import(ctx, source, reader)
}

func (rc *Reconciler) Import(ctx context.Context, source string, rows RowSource) (ImportResult, error) {
	run := &models.ImportRun{
		RunTag:    newRunTag(),
		Source:    source,
		Status:    models.ImportStatusRunning,
		StartedAt: rc.now(),
	}
	if err := rc.repo.CreateImportRun(ctx, run); err != nil {
		return ImportResult{}, err
	}

	log := utils.InfoLogger.WithFields(logrus.Fields{"run": run.RunTag, "source": source})
	log.Info("Legacy import started")

	job := &importJob{
		repo:     rc.repo,
		resolver: NewResolver(rc.repo, NewResolverCache()),
		runTag:   run.RunTag,
		log:      log,
	}

	state := ImportState{}
	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		raw, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			state.RowIndex++
			state.Skipped++
			log.WithField("row", state.RowIndex).WithError(err).Warn("Skipping malformed CSV line")
			continue
		}
		if err != nil {
			runErr = err
			break
		}

		var outcome RowOutcome
		state, outcome = job.Step(ctx, state, raw)
		if outcome.Skipped {
			log.WithFields(logrus.Fields{"row": outcome.Row, "reason": outcome.Reason}).Warn("Skipping legacy row")
		}
	}

	finished := rc.now()
	run.Imported = state.Imported
	run.Skipped = state.Skipped
	run.FinishedAt = &finished
	run.Status = models.ImportStatusCompleted
	if runErr != nil {
		run.Status = models.ImportStatusAborted
	}
	// The run record must be written even when ctx was cancelled.
	if err := rc.repo.UpdateImportRun(context.WithoutCancel(ctx), run); err != nil {
		utils.ErrorLogger.WithError(err).WithField("run", run.RunTag).Error("Failed to record import run")
	}

	result := ImportResult{RunID: run.ID, RunTag: run.RunTag, Imported: state.Imported, Skipped: state.Skipped}
	log.WithFields(logrus.Fields{
		"imported":          result.Imported,
		"skipped":           result.Skipped,
		"customers_created": job.resolver.CustomersCreated,
		"items_created":     job.resolver.ItemsCreated,
		"status":            run.Status,
	}).Info("Legacy import finished")
	return result, runErr
}

func (rc *Reconciler) ListRuns(ctx context.Context) ([]models.ImportRun, error) {
	return rc.repo.ListImportRuns(ctx)
}

type importJob struct {
	repo     database.Repository
	resolver *Resolver
	runTag   string
	log      *logrus.Entry
}

// Step folds one row into the state.
func (j *importJob) Step(ctx context.Context, state ImportState, raw normalize.RawRow) (ImportState, RowOutcome) {
	state.RowIndex++
	outcome := RowOutcome{Row: state.RowIndex}
	skip := func(reason string) (ImportState, RowOutcome) {
		state.Skipped++
		outcome.Skipped = true
		outcome.Reason = reason
		return state, outcome
	}

	if raw.IsBlank() {
		return skip("blank row")
	}

	state = AdvanceDate(state, raw)
	if state.CurrentDate == nil {
		return skip("no order date established yet")
	}
	date := *state.CurrentDate

	row, err := normalize.NormalizeRow(raw)
	if err != nil {
		return skip(err.Error())
	}

	customer, err := j.resolver.ResolveCustomer(ctx, row.Phone, row.FirstName, row.LastName, row.Email)
	if err != nil {
		return skip("resolve customer: " + err.Error())
	}
	item, err := j.resolver.ResolveMenuItem(ctx, row.ItemName)
	if err != nil {
		return skip("resolve menu item: " + err.Error())
	}

	order := AssembleLegacyOrder(date, row, state.RowIndex, customer, item, j.runTag)
	if err := j.repo.CreateOrder(ctx, order); err != nil {
		return skip("store order: " + err.Error())
	}

	state.Imported++
	outcome.OrderID = order.ID
	return state, outcome
}

func newRunTag() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
