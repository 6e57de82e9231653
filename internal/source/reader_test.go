package source

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkazarin/mpdbmigrate/internal/common"
	"github.com/dkazarin/mpdbmigrate/internal/config"
	"github.com/dkazarin/mpdbmigrate/internal/logging"
)

var recordColumns = []string{
	"player_uuid", "player_name", "inventory", "armor", "enderchest",
	"exp_lvl", "exp", "total_exp",
}

func testReader(t *testing.T) (*Reader, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	orig := openDB
	openDB = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, nil
	}
	t.Cleanup(func() { openDB = orig })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewReader(cfg, log), mock
}

func TestReadAll(t *testing.T) {
	r, mock := testReader(t)

	id1, id2 := uuid.New(), uuid.New()
	rows := sqlmock.NewRows(recordColumns).
		AddRow(id1.String(), "alice", "blob-inv-1", "blob-armor-1", "blob-ec-1", 30, 0.45, 1395).
		AddRow(id2.String(), "bob", "blob-inv-2", "blob-armor-2", "blob-ec-2", 0, 0.0, 0)

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta(buildQuery("mpdb_inventory", "mpdb_enderchest", "mpdb_experience"))).
		WillReturnRows(rows)
	mock.ExpectClose()

	records, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, id1, records[0].User.ID)
	assert.Equal(t, "alice", records[0].User.Name)
	assert.Equal(t, "blob-inv-1", records[0].SerializedInventory)
	assert.Equal(t, "blob-armor-1", records[0].SerializedArmor)
	assert.Equal(t, "blob-ec-1", records[0].SerializedEnderChest)
	assert.Equal(t, 30, records[0].ExpLevel)
	assert.InDelta(t, 0.45, float64(records[0].ExpProgress), 1e-6)
	assert.Equal(t, 1395, records[0].TotalExp)

	assert.Equal(t, id2, records[1].User.ID)
	assert.Equal(t, "bob", records[1].User.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAll_RenamedTables(t *testing.T) {
	r, mock := testReader(t)
	require.NoError(t, config.NewSurface(r.cfg, nil).Set("inventory_table", "old_inventory"))

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta(buildQuery("old_inventory", "mpdb_enderchest", "mpdb_experience"))).
		WillReturnRows(sqlmock.NewRows(recordColumns))
	mock.ExpectClose()

	records, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAll_RejectsUnsafeTableName(t *testing.T) {
	r, _ := testReader(t)
	r.cfg.InventoryTable = `inv"; DROP TABLE users; --`

	_, err := r.ReadAll(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidTableName)
}

func TestReadAll_QueryError(t *testing.T) {
	r, mock := testReader(t)

	mock.ExpectPing()
	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("table does not exist"))
	mock.ExpectClose()

	_, err := r.ReadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying legacy source")
}

func TestReadAll_ScanErrorIsFatal(t *testing.T) {
	r, mock := testReader(t)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("not-a-uuid", "mallory", "b", "b", "b", 1, 0.1, 10)

	mock.ExpectPing()
	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)
	mock.ExpectClose()

	_, err := r.ReadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing player uuid")
}

func TestReadAll_ConnectFailureHintsAtCredentials(t *testing.T) {
	r, mock := testReader(t)

	// The initial attempt plus three retries all fail.
	for i := 0; i < 4; i++ {
		mock.ExpectPing().WillReturnError(errors.New("password authentication failed"))
	}
	mock.ExpectClose()

	_, err := r.ReadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "are the source database credentials correct?")
}

func TestBuildQuery(t *testing.T) {
	q := buildQuery("inv", "chest", "xp")

	assert.Contains(t, q, `FROM "inv" i`)
	assert.Contains(t, q, `INNER JOIN "chest" e ON i.player_uuid = e.player_uuid`)
	assert.Contains(t, q, `INNER JOIN "xp" x ON i.player_uuid = x.player_uuid`)
	assert.Contains(t, q, "i.player_uuid, i.player_name, i.inventory, i.armor, e.enderchest, x.exp_lvl, x.exp, x.total_exp")
}
