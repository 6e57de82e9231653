package models

import "github.com/google/uuid"

// FormatVersion tags every persisted profile with the destination schema
// version so future readers can tell migrated documents apart.
const FormatVersion = "3"

// SaveCause records why a profile row was written.
type SaveCause string

const (
	// SaveCauseMigration marks rows written by the legacy data import.
	SaveCauseMigration SaveCause = "MPDB_MIGRATION"
)

// Status holds the vitals block of a profile. The migration only carries
// experience values over from the legacy schema; the rest are fixed
// survival-mode defaults.
type Status struct {
	Health               float64 `json:"health"`
	MaxHealth            float64 `json:"max_health"`
	HealthScale          float64 `json:"health_scale"`
	Hunger               int     `json:"hunger"`
	Saturation           float64 `json:"saturation"`
	SaturationExhaustion float64 `json:"saturation_exhaustion"`
	SelectedSlot         int     `json:"selected_item_slot"`
	TotalExp             int     `json:"total_experience"`
	ExpLevel             int     `json:"experience_level"`
	ExpProgress          float32 `json:"experience_progress"`
	GameMode             string  `json:"game_mode"`
	Flying               bool    `json:"is_flying"`
}

// Location is a synthetic spawn-world position. Migrated players have no
// tracked location in the legacy schema.
type Location struct {
	WorldName   string    `json:"world_name"`
	WorldID     uuid.UUID `json:"world_uuid"`
	Environment string    `json:"environment"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Z           float64   `json:"z"`
	Yaw         float32   `json:"yaw"`
	Pitch       float32   `json:"pitch"`
}

// Statistics mirrors the destination's four statistic categories.
type Statistics struct {
	Generic  map[string]int            `json:"untyped_statistics"`
	Blocks   map[string]map[string]int `json:"block_statistics"`
	Items    map[string]map[string]int `json:"item_statistics"`
	Entities map[string]map[string]int `json:"entity_statistics"`
}

// Profile is the destination-format document produced for one user.
// Inventory and EnderChest hold destination-encoded item containers.
type Profile struct {
	Status         Status            `json:"status"`
	Inventory      string            `json:"inventory"`
	EnderChest     string            `json:"ender_chest"`
	PotionEffects  string            `json:"potion_effects"`
	Advancements   []Advancement     `json:"advancements"`
	Statistics     Statistics        `json:"statistics"`
	Location       Location          `json:"location"`
	PersistentData map[string]string `json:"persistent_data"`
	FormatVersion  string            `json:"format_version"`
}

// Advancement is a single advancement entry with its completed criteria.
type Advancement struct {
	Key      string            `json:"key"`
	Criteria map[string]string `json:"completed_criteria"`
}

// DefaultProfile returns the neutral profile template: fixed survival-mode
// vitals, empty collections, and a synthetic default-world location. Every
// field the legacy schema does not track is defined here, exactly once.
func DefaultProfile() Profile {
	return Profile{
		Status: Status{
			Health:               20,
			MaxHealth:            20,
			HealthScale:          0,
			Hunger:               20,
			Saturation:           10,
			SaturationExhaustion: 1,
			SelectedSlot:         0,
			GameMode:             "SURVIVAL",
			Flying:               false,
		},
		PotionEffects: "",
		Advancements:  []Advancement{},
		Statistics: Statistics{
			Generic:  map[string]int{},
			Blocks:   map[string]map[string]int{},
			Items:    map[string]map[string]int{},
			Entities: map[string]map[string]int{},
		},
		Location: Location{
			WorldName:   "world",
			WorldID:     uuid.New(),
			Environment: "NORMAL",
		},
		PersistentData: map[string]string{},
		FormatVersion:  FormatVersion,
	}
}
