package config

import (
	"flag"
	"os"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-host string              legacy source host
//	-port int                 legacy source port
//	-user string              legacy source username
//	-password string          legacy source password
//	-database string          legacy source database name
//	-inventory-table string   legacy inventory table name
//	-ender-chest-table string legacy ender chest table name
//	-experience-table string  legacy experience table name
//	-dest string              destination store DSN (pgx)
//	-workers int              conversion/load fan-out limit
//
// Args are first filtered to only the flags handled here, so the -c/-config
// flags consumed by the JSON overlay pass never collide.
func parseFlags(config *Config) {
	args := filterArgs(os.Args[1:], []string{
		"-host", "-port", "-user", "-password", "-database",
		"-inventory-table", "-ender-chest-table", "-experience-table",
		"-dest", "-workers",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.SourceHost, "host", config.SourceHost, "legacy source host")
	fs.IntVar(&config.SourcePort, "port", config.SourcePort, "legacy source port")
	fs.StringVar(&config.SourceUser, "user", config.SourceUser, "legacy source username")
	fs.StringVar(&config.SourcePassword, "password", config.SourcePassword, "legacy source password")
	fs.StringVar(&config.SourceDatabase, "database", config.SourceDatabase, "legacy source database name")
	fs.StringVar(&config.InventoryTable, "inventory-table", config.InventoryTable, "legacy inventory table")
	fs.StringVar(&config.EnderChestTable, "ender-chest-table", config.EnderChestTable, "legacy ender chest table")
	fs.StringVar(&config.ExperienceTable, "experience-table", config.ExperienceTable, "legacy experience table")
	fs.StringVar(&config.DestinationDSN, "dest", config.DestinationDSN, "destination store DSN")
	fs.IntVar(&config.Workers, "workers", config.Workers, "conversion/load fan-out limit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
