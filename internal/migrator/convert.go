// Package migrator converts legacy transfer records into destination
// profiles and orchestrates the one-shot migration run.
package migrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkazarin/mpdbmigrate/internal/item"
	"github.com/dkazarin/mpdbmigrate/internal/models"
)

// Player inventory layout: 36 main slots, then 4 armor slots.
const (
	mainSlots    = 36
	armorSlots   = 4
	containerLen = mainSlots + armorSlots
)

// ConversionError reports that a single record could not be converted. The
// record is skipped; the batch continues.
type ConversionError struct {
	UserID uuid.UUID
	Name   string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting data for %s (%s): %v", e.Name, e.UserID, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Convert maps one transfer record into a destination profile. It is a pure
// function of the record and the two codecs: legacy blobs are decoded with
// the legacy codec, the armor items are overlaid onto the last four slots of
// a combined 40-slot container, and both containers are re-encoded with the
// destination codec. Everything the legacy schema does not track comes from
// the default profile template.
func Convert(ctx context.Context, rec models.TransferRecord, legacy item.LegacyCodec, dest item.Codec) (*models.Profile, error) {
	inventory, err := legacy.DecodeItems(ctx, rec.SerializedInventory)
	if err != nil {
		return nil, &ConversionError{UserID: rec.User.ID, Name: rec.User.Name, Err: fmt.Errorf("inventory: %w", err)}
	}
	armor, err := legacy.DecodeItems(ctx, rec.SerializedArmor)
	if err != nil {
		return nil, &ConversionError{UserID: rec.User.ID, Name: rec.User.Name, Err: fmt.Errorf("armor: %w", err)}
	}

	container := make([]item.Stack, containerLen)
	copy(container[:mainSlots], inventory)
	copy(container[mainSlots:], armor)

	enderChest, err := legacy.DecodeItems(ctx, rec.SerializedEnderChest)
	if err != nil {
		return nil, &ConversionError{UserID: rec.User.ID, Name: rec.User.Name, Err: fmt.Errorf("ender chest: %w", err)}
	}

	encodedInventory, err := dest.EncodeItems(ctx, container)
	if err != nil {
		return nil, &ConversionError{UserID: rec.User.ID, Name: rec.User.Name, Err: fmt.Errorf("inventory: %w", err)}
	}
	encodedEnderChest, err := dest.EncodeItems(ctx, enderChest)
	if err != nil {
		return nil, &ConversionError{UserID: rec.User.ID, Name: rec.User.Name, Err: fmt.Errorf("ender chest: %w", err)}
	}

	profile := models.DefaultProfile()
	profile.Status.TotalExp = rec.TotalExp
	profile.Status.ExpLevel = rec.ExpLevel
	profile.Status.ExpProgress = rec.ExpProgress
	profile.Inventory = encodedInventory
	profile.EnderChest = encodedEnderChest

	return &profile, nil
}
