package migrator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dkazarin/mpdbmigrate/internal/common"
	"github.com/dkazarin/mpdbmigrate/internal/config"
	"github.com/dkazarin/mpdbmigrate/internal/item"
	"github.com/dkazarin/mpdbmigrate/internal/logging"
	"github.com/dkazarin/mpdbmigrate/internal/models"
	"github.com/dkazarin/mpdbmigrate/internal/store"
)

// RecordSource produces the full set of legacy transfer records.
type RecordSource interface {
	ReadAll(ctx context.Context) ([]models.TransferRecord, error)
}

// Failure is one record that could not be converted or persisted.
type Failure struct {
	UserID uuid.UUID
	Name   string
	Err    error
}

// Summary is the result of one migration run.
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	Failures  []Failure
}

// Migrator coordinates the one-shot migration: wipe the destination,
// extract the legacy rows, convert and load each record independently, and
// aggregate the results.
type Migrator struct {
	cfg     *config.Config
	source  RecordSource
	store   store.Store
	legacy  item.LegacyCodec
	dest    item.Codec
	log     logging.Logger
	running atomic.Bool
}

func New(cfg *config.Config, source RecordSource, st store.Store, legacy item.LegacyCodec, dest item.Codec, log logging.Logger) *Migrator {
	return &Migrator{cfg: cfg, source: source, store: st, legacy: legacy, dest: dest, log: log}
}

// Running reports whether a run is in progress. The configuration surface
// uses this to reject parameter changes mid-run.
func (m *Migrator) Running() bool {
	return m.running.Load()
}

// Run executes the full migration and returns its summary.
//
// Protocol: the destructive wipe strictly precedes extraction, extraction
// strictly precedes any write, and per-record conversion+load is fanned out
// with no ordering between records. A wipe or extraction failure aborts the
// run with no writes attempted; once loading begins, per-record failures are
// recorded and never abort the batch.
func (m *Migrator) Run(ctx context.Context) (*Summary, error) {
	if !m.running.CompareAndSwap(false, true) {
		return nil, common.ErrMigrationRunning
	}
	defer m.running.Store(false)

	start := time.Now()
	m.log.Info(ctx, "starting migration from the legacy bridge database")

	m.log.Info(ctx, "preparing profile store (wiping)")
	if err := m.store.Wipe(ctx); err != nil {
		return nil, fmt.Errorf("wiping profile store: %w", err)
	}
	m.log.Info(ctx, "wiped profile store", "took", time.Since(start))

	records, err := m.source.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "converting legacy data to profiles", "entries", len(records))

	var (
		mu       sync.Mutex
		failures []Failure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Workers)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			if err := m.migrateOne(gctx, rec); err != nil {
				m.log.Error(gctx, "failed to migrate player data",
					"player", rec.User.Name, "uuid", rec.User.ID, "err", err)
				mu.Lock()
				failures = append(failures, Failure{UserID: rec.User.ID, Name: rec.User.Name, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers never return errors; Wait is the join point that guarantees
	// every write has finished before the summary is declared.
	_ = g.Wait()

	summary := &Summary{
		Processed: len(records),
		Succeeded: len(records) - len(failures),
		Failed:    len(failures),
		Elapsed:   time.Since(start),
		Failures:  failures,
	}

	m.log.Info(ctx, "migration complete",
		"players", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"took", summary.Elapsed)

	return summary, nil
}

// migrateOne converts and persists a single record.
func (m *Migrator) migrateOne(ctx context.Context, rec models.TransferRecord) error {
	profile, err := Convert(ctx, rec, m.legacy, m.dest)
	if err != nil {
		return err
	}

	if err := m.store.EnsureUser(ctx, rec.User); err != nil {
		return fmt.Errorf("ensuring user %s: %w", rec.User.ID, err)
	}
	if err := m.store.WriteProfile(ctx, rec.User, profile, models.SaveCauseMigration); err != nil {
		return fmt.Errorf("writing profile for %s: %w", rec.User.ID, err)
	}
	return nil
}
