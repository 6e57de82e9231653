package codec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkazarin/mpdbmigrate/internal/item"
)

// JSON encodes item containers into the destination store's serialized
// representation. A nil list encodes as an empty array so persisted
// documents never contain JSON null containers.
type JSON struct{}

func (JSON) EncodeItems(_ context.Context, items []item.Stack) (string, error) {
	if items == nil {
		items = []item.Stack{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}
	return string(b), nil
}
