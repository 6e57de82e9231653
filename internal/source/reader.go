// Package source extracts player records from the legacy bridge database.
// The full result set is materialized eagerly before conversion begins:
// data sets are bounded by server population, so memory is traded for a
// simpler pipeline with no live cursor held across conversion.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/dkazarin/mpdbmigrate/internal/common"
	"github.com/dkazarin/mpdbmigrate/internal/config"
	"github.com/dkazarin/mpdbmigrate/internal/logging"
	"github.com/dkazarin/mpdbmigrate/internal/models"
)

// progressEvery is the row interval between download progress messages.
const progressEvery = 25

// openDB is a seam for testing sql.Open.
var openDB = sql.Open

// Reader pulls transfer records out of the legacy source in one pass.
type Reader struct {
	cfg *config.Config
	log logging.Logger
}

func NewReader(cfg *config.Config, log logging.Logger) *Reader {
	return &Reader{cfg: cfg, log: log}
}

// ReadAll connects to the legacy source, runs the three-table join, and
// returns every row as a TransferRecord. Any failure here is fatal to the
// migration run; no partial result is returned.
func (r *Reader) ReadAll(ctx context.Context) ([]models.TransferRecord, error) {
	for _, table := range []string{r.cfg.InventoryTable, r.cfg.EnderChestTable, r.cfg.ExperienceTable} {
		if !config.ValidTableName(table) {
			return nil, fmt.Errorf("%w: %q", common.ErrInvalidTableName, table)
		}
	}

	db, err := openDB("pgx", r.cfg.SourceDSN())
	if err != nil {
		return nil, fmt.Errorf("opening legacy source: %w", err)
	}
	defer db.Close()

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to legacy source: %w (are the source database credentials correct?)", err)
	}

	r.log.Info(ctx, "downloading raw data from the legacy bridge database")

	rows, err := db.QueryContext(ctx, buildQuery(r.cfg.InventoryTable, r.cfg.EnderChestTable, r.cfg.ExperienceTable))
	if err != nil {
		return nil, fmt.Errorf("querying legacy source: %w", err)
	}
	defer rows.Close()

	var records []models.TransferRecord
	for rows.Next() {
		var (
			rawID string
			rec   models.TransferRecord
		)
		err := rows.Scan(&rawID, &rec.User.Name,
			&rec.SerializedInventory, &rec.SerializedArmor, &rec.SerializedEnderChest,
			&rec.ExpLevel, &rec.ExpProgress, &rec.TotalExp)
		if err != nil {
			return nil, fmt.Errorf("scanning legacy row: %w", err)
		}

		rec.User.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parsing player uuid %q: %w", rawID, err)
		}

		records = append(records, rec)
		if len(records)%progressEvery == 0 {
			r.log.Debug(ctx, "downloaded legacy data", "players", len(records))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading legacy rows: %w", err)
	}

	r.log.Info(ctx, "completed legacy data download", "entries", len(records))
	return records, nil
}

// buildQuery interpolates the validated table names into the extraction
// query. Identifiers cannot be bound as parameters, which is why callers
// must have allow-listed them first.
func buildQuery(inventory, enderChest, experience string) string {
	return fmt.Sprintf(
		`SELECT i.player_uuid, i.player_name, i.inventory, i.armor, e.enderchest, x.exp_lvl, x.exp, x.total_exp`+
			` FROM %q i`+
			` INNER JOIN %q e ON i.player_uuid = e.player_uuid`+
			` INNER JOIN %q x ON i.player_uuid = x.player_uuid`,
		inventory, enderChest, experience)
}
