package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dkazarin/mpdbmigrate/internal/common"
)

// tableNameRE allow-lists the characters permitted in a legacy table name.
// Table names end up interpolated into the extraction query (drivers do not
// accept identifiers as query parameters), so anything outside this set is
// rejected before it gets near SQL.
var tableNameRE = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// ValidTableName reports whether name is safe to interpolate as a SQL
// identifier.
func ValidTableName(name string) bool {
	return tableNameRE.MatchString(name)
}

// RunGuard reports whether a migration run is active. The surface rejects
// mutations while one is, so a run always sees a stable configuration.
type RunGuard interface {
	Running() bool
}

// Surface is the operator-facing parameter surface: it mutates the session
// Config in response to "set <parameter> <value>" commands and renders the
// wizard status text with secrets masked.
type Surface struct {
	cfg   *Config
	guard RunGuard
}

// NewSurface wraps cfg. guard may be nil when no orchestrator exists yet
// (e.g., in tests that only exercise validation).
func NewSurface(cfg *Config, guard RunGuard) *Surface {
	return &Surface{cfg: cfg, guard: guard}
}

// Set updates one named parameter. Unknown names fail with
// common.ErrUnknownParameter and malformed values with
// common.ErrInvalidParameterValue; in both cases the Config is untouched.
// While a run is active every Set fails with common.ErrMigrationRunning.
func (s *Surface) Set(name, value string) error {
	if s.guard != nil && s.guard.Running() {
		return common.ErrMigrationRunning
	}

	switch strings.ToLower(name) {
	case "host":
		s.cfg.SourceHost = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%w: port %q", common.ErrInvalidParameterValue, value)
		}
		s.cfg.SourcePort = port
	case "username":
		s.cfg.SourceUser = value
	case "password":
		s.cfg.SourcePassword = value
	case "database":
		s.cfg.SourceDatabase = value
	case "inventory_table":
		if !ValidTableName(value) {
			return fmt.Errorf("%w: %q", common.ErrInvalidTableName, value)
		}
		s.cfg.InventoryTable = value
	case "ender_chest_table":
		if !ValidTableName(value) {
			return fmt.Errorf("%w: %q", common.ErrInvalidTableName, value)
		}
		s.cfg.EnderChestTable = value
	case "experience_table":
		if !ValidTableName(value) {
			return fmt.Errorf("%w: %q", common.ErrInvalidTableName, value)
		}
		s.cfg.ExperienceTable = value
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: workers %q", common.ErrInvalidParameterValue, value)
		}
		s.cfg.Workers = n
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownParameter, name)
	}

	return nil
}

// Describe renders the migration wizard status text with the current
// parameter values. Host, username and password are masked: secrets must
// never appear in full in console output.
func (s *Surface) Describe() string {
	return fmt.Sprintf(`=== MySQLPlayerDataBridge Migration Wizard ==========
This will migrate inventories, ender chests and XP
from the legacy bridge database to the profile store.

To prevent excessive migration times, other non-vital
data will not be transferred.

[!] Existing data in the profile store will be wiped. [!]

STEP 1] Please ensure no players are on any servers.

STEP 2] The migrator will connect to the database
holding the legacy bridge data. Please check these
parameters are OK:
- host: %s
- port: %d
- username: %s
- password: %s
- database: %s
- inventory_table: %s
- ender_chest_table: %s
- experience_table: %s
- workers: %d
If any of these are not correct, please correct them
using the command: "set <parameter> <value>"
(e.g.: "set host 1.2.3.4")

STEP 3] To start the migration, please run: "start"
`,
		Obfuscate(s.cfg.SourceHost),
		s.cfg.SourcePort,
		Obfuscate(s.cfg.SourceUser),
		Obfuscate(s.cfg.SourcePassword),
		s.cfg.SourceDatabase,
		s.cfg.InventoryTable,
		s.cfg.EnderChestTable,
		s.cfg.ExperienceTable,
		s.cfg.Workers,
	)
}

// Obfuscate masks a secret-like value for display: first and last character
// visible, the rest replaced. Values of two characters or fewer are fully
// masked.
func Obfuscate(value string) string {
	r := []rune(value)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
