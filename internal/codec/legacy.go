// Package codec provides the default item codec implementations: the legacy
// source stores base64-wrapped JSON item arrays, the destination store takes
// canonical JSON.
package codec

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dkazarin/mpdbmigrate/internal/item"
)

// ErrCorruptBlob indicates a legacy blob that could not be decoded.
var ErrCorruptBlob = errors.New("corrupt legacy blob")

// MPDB decodes item blobs in the legacy bridge's serialized column format:
// a base64 wrapper around a JSON array of item stacks. Empty columns and the
// literal "none" marker decode to an empty list.
type MPDB struct{}

func (MPDB) DecodeItems(_ context.Context, blob string) ([]item.Stack, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" || blob == "none" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	var items []item.Stack
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	return items, nil
}
