package config

import (
	"encoding/json"
	"os"
)

// jsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type jsonConfig struct {
	SourceHost      string `json:"source_host"`
	SourcePort      int    `json:"source_port"`
	SourceUser      string `json:"source_user"`
	SourcePassword  string `json:"source_password"`
	SourceDatabase  string `json:"source_database"`
	InventoryTable  string `json:"inventory_table"`
	EnderChestTable string `json:"ender_chest_table"`
	ExperienceTable string `json:"experience_table"`
	DestinationDSN  string `json:"destination_dsn"`
	Workers         int    `json:"workers"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flag, when given. The DTO is pre-filled from the current Config
// so keys missing from the file keep their defaults. A file that cannot be
// read or parsed panics, matching the flag-parsing failure mode.
func parseJSON(config *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	c := &jsonConfig{
		SourceHost:      config.SourceHost,
		SourcePort:      config.SourcePort,
		SourceUser:      config.SourceUser,
		SourcePassword:  config.SourcePassword,
		SourceDatabase:  config.SourceDatabase,
		InventoryTable:  config.InventoryTable,
		EnderChestTable: config.EnderChestTable,
		ExperienceTable: config.ExperienceTable,
		DestinationDSN:  config.DestinationDSN,
		Workers:         config.Workers,
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.SourceHost = c.SourceHost
	config.SourcePort = c.SourcePort
	config.SourceUser = c.SourceUser
	config.SourcePassword = c.SourcePassword
	config.SourceDatabase = c.SourceDatabase
	config.InventoryTable = c.InventoryTable
	config.EnderChestTable = c.EnderChestTable
	config.ExperienceTable = c.ExperienceTable
	config.DestinationDSN = c.DestinationDSN
	config.Workers = c.Workers
}
